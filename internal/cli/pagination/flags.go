package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Pagination defaults and sort orders.
const (
	DefaultLimit     = 0
	DefaultOffset    = 0
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'beef:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
)

// PaginationParams holds CLI pagination flags.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Limit caps the number of results in offset mode. 0 means no cap.
	Limit int
	// Offset skips results in offset mode.
	Offset int
	// Page is the 1-based page number. 0 disables page mode.
	Page int
	// PageSize is the number of results per page.
	PageSize int

	SortField string
	SortOrder string
}

// NewPaginationParams creates a PaginationParams with default values.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{
		Limit:     DefaultLimit,
		Offset:    DefaultOffset,
		SortField: DefaultSortField,
		SortOrder: DefaultSortOrder,
	}
}

// Validate checks that the parameters are non-negative and that only one
// pagination mode is in use.
func (p PaginationParams) Validate() error {
	if p.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	if p.Offset < 0 {
		return errors.New("offset cannot be negative")
	}
	if p.Page < 0 {
		return errors.New("page cannot be negative")
	}
	if p.PageSize < 0 {
		return errors.New("page-size cannot be negative")
	}

	if p.Page > 0 && p.Offset > 0 {
		return errors.New("page and offset parameters are mutually exclusive")
	}
	if p.Page == 0 && p.PageSize > 0 {
		return errors.New("page must be specified when using page-size")
	}
	if p.PageSize == 0 && p.Page > 0 {
		return errors.New("page-size must be specified when using page")
	}

	return nil
}

const sortPartsMax = 2

// ParseSort parses "field" or "field:order". An empty string yields the
// default field and order.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}

// IsPageBased returns true if page-based pagination is active.
func (p PaginationParams) IsPageBased() bool {
	return p.Page > 0
}

// CalculateOffsetLimit returns the effective offset and limit. A limit of 0
// means "to the end".
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p PaginationParams) CalculateOffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the window of items selected by p. Page numbers beyond the
// end clamp to the last page; offsets beyond the end yield an empty slice.
func Apply[T any](p PaginationParams, items []T) []T {
	if len(items) == 0 {
		return items
	}

	offset, limit := p.CalculateOffsetLimit()

	if p.IsPageBased() && offset >= len(items) {
		offset = ((len(items) - 1) / p.PageSize) * p.PageSize
	}
	if offset >= len(items) {
		return []T{}
	}

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
