package greenops

import "math"

// unitFactor returns the kilogram conversion factor of a footprint unit.
// Only grams and kilograms occur in the footprint pipeline.
func unitFactor(unit string) (float64, bool) {
	switch unit {
	case "g":
		return GramsToKg, true
	case "kg":
		return KgToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a carbon quantity in g or kg to kilograms.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}
	return value * factor, nil
}

// AnnualKg converts grams of CO2 per week into kilograms per year.
func AnnualKg(gramsPerWeek float64) (float64, error) {
	kg, err := NormalizeToKg(gramsPerWeek, "g")
	if err != nil {
		return 0, err
	}
	return kg * WeeksPerYear, nil
}
