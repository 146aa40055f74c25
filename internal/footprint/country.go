package footprint

import (
	"fmt"
	"sort"
)

// Country is one country's average weekly consumption per animal type.
// It is immutable once constructed and shared by every user in that country.
type Country struct {
	name         string
	gramsPerWeek map[AnimalType]float64
	kgPerYear    map[AnimalType]float64
}

// NewCountry converts annual kg per person into weekly grams per person.
// Animal types absent from annualKg have an average of zero.
func NewCountry(name string, annualKg map[AnimalType]float64) *Country {
	c := &Country{
		name:         name,
		gramsPerWeek: make(map[AnimalType]float64, NumAnimalTypes),
		kgPerYear:    make(map[AnimalType]float64, NumAnimalTypes),
	}
	for _, a := range AnimalTypes() {
		kg := annualKg[a]
		c.kgPerYear[a] = kg
		c.gramsPerWeek[a] = kg * GramsPerKilogram / WeeksPerYear
	}
	return c
}

// Name returns the country name as it appears in the dataset.
func (c *Country) Name() string {
	return c.name
}

// AverageGramsPerWeek returns the average weekly grams of a eaten per person.
func (c *Country) AverageGramsPerWeek(a AnimalType) float64 {
	return c.gramsPerWeek[a]
}

// AverageKgPerYear returns the source annual kg of a per person.
func (c *Country) AverageKgPerYear(a AnimalType) float64 {
	return c.kgPerYear[a]
}

// Registry is the set of all countries built from the reference data.
type Registry struct {
	countries map[string]*Country
	names     []string
}

// BuildAll constructs a Country for every entry of the reference dataset.
func BuildAll(ref *ReferenceData) (*Registry, error) {
	reg := &Registry{
		countries: make(map[string]*Country, ref.CountryCount()),
		names:     make([]string, 0, ref.CountryCount()),
	}
	for name := range ref.countryAnnualKg {
		annual, err := ref.CountryAnnualKg(name)
		if err != nil {
			return nil, err
		}
		reg.countries[name] = NewCountry(name, annual)
		reg.names = append(reg.names, name)
	}
	sort.Strings(reg.names)
	return reg, nil
}

// Lookup returns the named country or ErrUnknownCountry.
func (r *Registry) Lookup(name string) (*Country, error) {
	c, ok := r.countries[name]
	if !ok {
		return nil, unknownCountry(name)
	}
	return c, nil
}

// Names returns the country names in lexical order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Countries returns every country in lexical name order.
func (r *Registry) Countries() []*Country {
	out := make([]*Country, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.countries[name])
	}
	return out
}

// Len returns the number of countries.
func (r *Registry) Len() int {
	return len(r.names)
}

func unknownCountry(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCountry, name)
}
