// Package footprint estimates the weekly CO2 footprint of a household's meat
// consumption and compares it against the per-capita baseline of a country.
//
// The package is organised leaf-first: ReferenceData holds the static factor
// tables and the per-country dataset, Country converts annual consumption to
// weekly grams, Animal computes the statistics of one meat type and User
// aggregates the four animals of one intake form. Animal and User are explicit
// state machines; reading a derived value before the step that computes it
// returns ErrInvalidState.
package footprint

// Unit conversion constants.
const (
	// WeeksPerYear converts annual quantities to weekly ones.
	WeeksPerYear = 52

	// GramsPerKilogram converts kilograms to grams.
	GramsPerKilogram = 1000
)

// emissionFactors is grams of CO2 per gram of protein for each animal type.
//
//nolint:gochecknoglobals // Static lookup table.
var emissionFactors = map[AnimalType]float64{
	Beef:    498.9,
	Poultry: 57.0,
	Pork:    76.1,
	Lamb:    198.5,
}

// servingSizes is grams per serving. An average meal is 3 to 3.5 ounces.
//
//nolint:gochecknoglobals // Static lookup table.
var servingSizes = map[AnimalType]float64{
	Beef:    85,
	Poultry: 85,
	Pork:    100,
	Lamb:    100,
}

// ReferenceData is the process-wide reference tables. It is read-only after
// construction and safe to share between users.
type ReferenceData struct {
	emissionsPerAnimal  map[AnimalType]float64
	servingSizeGrams    map[AnimalType]float64
	emissionsPerServing map[AnimalType]float64
	countryAnnualKg     map[string]map[AnimalType]float64
}

// NewReferenceData builds the reference tables around a per-country dataset of
// annual kg per person. The dataset is copied.
func NewReferenceData(countryAnnualKg map[string]map[AnimalType]float64) *ReferenceData {
	ref := &ReferenceData{
		emissionsPerAnimal:  make(map[AnimalType]float64, NumAnimalTypes),
		servingSizeGrams:    make(map[AnimalType]float64, NumAnimalTypes),
		emissionsPerServing: make(map[AnimalType]float64, NumAnimalTypes),
		countryAnnualKg:     make(map[string]map[AnimalType]float64, len(countryAnnualKg)),
	}

	for _, a := range AnimalTypes() {
		ref.emissionsPerAnimal[a] = emissionFactors[a]
		ref.servingSizeGrams[a] = servingSizes[a]
		ref.emissionsPerServing[a] = emissionFactors[a] * servingSizes[a]
	}

	for name, row := range countryAnnualKg {
		copied := make(map[AnimalType]float64, NumAnimalTypes)
		for a, kg := range row {
			copied[a] = kg
		}
		ref.countryAnnualKg[name] = copied
	}

	return ref
}

// EmissionsPerAnimal returns grams of CO2 per gram of protein for a.
func (r *ReferenceData) EmissionsPerAnimal(a AnimalType) float64 {
	return r.emissionsPerAnimal[a]
}

// ServingSizeGrams returns grams of meat per serving for a.
func (r *ReferenceData) ServingSizeGrams(a AnimalType) float64 {
	return r.servingSizeGrams[a]
}

// EmissionsPerServing returns grams of CO2 per serving for a.
func (r *ReferenceData) EmissionsPerServing(a AnimalType) float64 {
	return r.emissionsPerServing[a]
}

// CountryAnnualKg returns the annual kg per person of each animal type for the
// named country, or ErrUnknownCountry.
func (r *ReferenceData) CountryAnnualKg(name string) (map[AnimalType]float64, error) {
	row, ok := r.countryAnnualKg[name]
	if !ok {
		return nil, unknownCountry(name)
	}
	out := make(map[AnimalType]float64, len(row))
	for a, kg := range row {
		out[a] = kg
	}
	return out, nil
}

// CountryCount returns the number of countries in the dataset.
func (r *ReferenceData) CountryCount() int {
	return len(r.countryAnnualKg)
}
