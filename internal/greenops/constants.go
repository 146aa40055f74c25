package greenops

// EPA greenhouse gas equivalency factors (2024 edition), in kg CO2e per unit
// of activity. An equivalency is kg_CO2e / factor.
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per full smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPATreeSeedlingFactor is kg CO2e absorbed by one urban tree seedling grown for 10 years.
	EPATreeSeedlingFactor = 60.0
)

// Unit conversion factors to kilograms.
const (
	GramsToKg = 0.001
	KgToKg    = 1.0
)

// WeeksPerYear annualizes weekly emissions.
const WeeksPerYear = 52

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest annual footprint worth
	// translating; below it the equivalencies round to nothing.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches to "~X.X million" notation.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches to "~X.X billion" notation.
	BillionThreshold = 1_000_000_000
)
