package pagination

import "github.com/rshade/meatmonitor/internal/footprint"

// Sorter sorts a slice of T by a named field.
type Sorter[T any] interface {
	Sort(items []T, field, order string) []T
	IsValidField(field string) bool
	GetValidFields() []string
}

var _ Sorter[*footprint.Country] = (*footprint.CountrySorter)(nil)
