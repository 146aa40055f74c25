package footprint

import (
	"fmt"
	"sort"
	"strings"
)

// Country sort fields. The per-animal fields are the lower-case animal type
// names.
const (
	CountrySortName  = "name"
	CountrySortTotal = "total"
)

// Sort orders.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// CountrySorter sorts countries by name, total or a single animal type's
// average weekly consumption.
type CountrySorter struct {
	validFields map[string]bool
}

// NewCountrySorter creates a CountrySorter.
func NewCountrySorter() *CountrySorter {
	fields := map[string]bool{CountrySortName: true, CountrySortTotal: true}
	for _, a := range AnimalTypes() {
		fields[strings.ToLower(a.String())] = true
	}
	return &CountrySorter{validFields: fields}
}

// IsValidField reports whether field can be sorted on.
func (s *CountrySorter) IsValidField(field string) bool {
	return s.validFields[strings.ToLower(field)]
}

// GetValidFields returns the valid fields in alphabetical order.
func (s *CountrySorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// ValidateField returns ErrInvalidSortField with the accepted fields listed.
// An empty field is valid and means input order.
func (s *CountrySorter) ValidateField(field string) error {
	if field == "" || s.IsValidField(field) {
		return nil
	}
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
}

// Sort returns a sorted copy. Ties keep their input order. An unknown field
// returns the input unchanged.
func (s *CountrySorter) Sort(countries []*Country, field, order string) []*Country {
	field = strings.ToLower(field)
	if !s.IsValidField(field) {
		return countries
	}

	sorted := make([]*Country, len(countries))
	copy(sorted, countries)

	key := countrySortKey(field)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortDescending {
			i, j = j, i
		}
		if field == CountrySortName {
			return sorted[i].Name() < sorted[j].Name()
		}
		return key(sorted[i]) < key(sorted[j])
	})

	return sorted
}

func countrySortKey(field string) func(*Country) float64 {
	if field == CountrySortTotal {
		return func(c *Country) float64 {
			var total float64
			for _, a := range AnimalTypes() {
				total += c.AverageGramsPerWeek(a)
			}
			return total
		}
	}

	a, err := ParseAnimalType(field)
	if err != nil {
		return func(*Country) float64 { return 0 }
	}
	return func(c *Country) float64 { return c.AverageGramsPerWeek(a) }
}
