package greenops

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Calculate normalizes input to kilograms and computes the miles driven,
// smartphones charged and tree seedlings equivalencies.
//
// Inputs below MinEquivalencyThresholdKg return an empty output without
// error. Invalid units, negative values and non-finite results are errors.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	trees := kg / EPATreeSeedlingFactor
	for _, v := range []float64{miles, phones, trees} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
	}

	milesText := formatEquivalencyValue(miles)
	phonesText := formatEquivalencyValue(phones)
	treesText := formatEquivalencyValue(trees)

	return EquivalencyOutput{
		InputKg: kg,
		Results: []EquivalencyResult{
			{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: milesText, Label: "miles driven"},
			{Type: EquivalencySmartphonesCharged, Value: phones, FormattedValue: phonesText, Label: "smartphones charged"},
			{Type: EquivalencyTreeSeedlings, Value: trees, FormattedValue: treesText, Label: "tree seedlings grown for 10 years"},
		},
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			milesText, phonesText),
		CompactText: fmt.Sprintf("(≈ %s mi, %s phones, %s trees)", milesText, phonesText, treesText),
	}, nil
}

// CalculateWeekly annualizes a weekly footprint in grams and computes its
// equivalencies. Failures are logged and yield an empty output, so callers
// can always render the result.
func CalculateWeekly(gramsPerWeek float64) EquivalencyOutput {
	annual, err := AnnualKg(gramsPerWeek)
	if err != nil {
		log.Warn().Err(err).Float64("grams_per_week", gramsPerWeek).Msg("cannot annualize footprint")
		return EquivalencyOutput{IsEmpty: true}
	}

	output, err := Calculate(CarbonInput{Value: annual, Unit: "kg"})
	if err != nil {
		log.Warn().Err(err).Float64("annual_kg", annual).Msg("equivalency calculation failed")
		return EquivalencyOutput{IsEmpty: true}
	}
	return output
}

// formatEquivalencyValue rounds small values to integers with separators and
// abbreviates values of a million or more.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
