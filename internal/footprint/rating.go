package footprint

// Band thresholds, in percent.
const (
	// ComparisonLowThreshold is the total emissions percentage at or below
	// which a diet counts as well below the national average.
	ComparisonLowThreshold = -25.0

	// ComparisonHighThreshold is the percentage above which a diet counts as
	// well above the national average.
	ComparisonHighThreshold = 25.0

	// GoalMetThreshold is the reduction percentage above which a goal is met.
	GoalMetThreshold = 25.0

	// GoalPartialThreshold is the reduction percentage above which a goal is
	// partially met.
	GoalPartialThreshold = 12.5
)

// Band classifies a result for display.
type Band string

// Comparison bands.
const (
	BandBelowAverage Band = "below"
	BandNearAverage  Band = "near"
	BandAboveAverage Band = "above"
)

// Goal bands.
const (
	BandGoalMet     Band = "met"
	BandGoalPartial Band = "partial"
	BandGoalShort   Band = "short"
)

// ComparisonBand classifies a total emissions percentage against the
// country average. NaN falls into BandAboveAverage.
func ComparisonBand(totalEmissionsPercent float64) Band {
	switch {
	case totalEmissionsPercent <= ComparisonLowThreshold:
		return BandBelowAverage
	case totalEmissionsPercent <= ComparisonHighThreshold:
		return BandNearAverage
	default:
		return BandAboveAverage
	}
}

// GoalBand classifies a goal's emission reduction percentage.
func GoalBand(emissionReductionPercent float64) Band {
	switch {
	case emissionReductionPercent > GoalMetThreshold:
		return BandGoalMet
	case emissionReductionPercent > GoalPartialThreshold:
		return BandGoalPartial
	default:
		return BandGoalShort
	}
}

// RelativeToAverage expresses total emissions as a percentage of the country
// average, so 100 means exactly average.
func RelativeToAverage(totalEmissionsPercent float64) float64 {
	return 100 + totalEmissionsPercent
}
