package pagination

// PaginationMeta describes the page returned to the user.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewPaginationMeta derives page metadata from params and the unpaged count.
// Without a page size or limit the whole result is one page.
func NewPaginationMeta(params PaginationParams, totalCount int) PaginationMeta {
	pageSize := params.PageSize
	if pageSize == 0 {
		pageSize = params.Limit
	}
	if pageSize == 0 {
		pageSize = totalCount
	}

	currentPage := params.Page
	if currentPage == 0 && params.Offset > 0 && pageSize > 0 {
		currentPage = params.Offset/pageSize + 1
	}
	if currentPage == 0 {
		currentPage = 1
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	return PaginationMeta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}
