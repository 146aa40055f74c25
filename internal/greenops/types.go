// Package greenops translates a dietary carbon footprint into everyday
// equivalencies, such as miles driven, using EPA conversion factors.
package greenops

import "fmt"

// EquivalencyType is a category of carbon equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven is miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota
	// EquivalencySmartphonesCharged is full smartphone charges.
	EquivalencySmartphonesCharged
	// EquivalencyTreeSeedlings is tree seedlings grown for 10 years to absorb the CO2.
	EquivalencyTreeSeedlings
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// CarbonInput is an emission amount with its unit (g, kg, t, lb, optionally
// suffixed with CO2e).
type CarbonInput struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds all equivalencies for one footprint.
type EquivalencyOutput struct {
	// InputKg is the footprint in kilograms CO2e.
	InputKg float64 `json:"input_kg"`

	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose form, e.g.
	// "Equivalent to driving ~781 miles or charging ~18,248 smartphones".
	DisplayText string `json:"display_text"`

	// CompactText is the abbreviated form, e.g. "(≈ 781 mi, 18,248 phones, 3 trees)".
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}
