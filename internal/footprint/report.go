package footprint

import (
	"encoding/json"
	"math"
)

// Number is a float64 that encodes non-finite values as JSON null.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Finite reports whether n is neither infinite nor NaN.
func (n Number) Finite() bool {
	f := float64(n)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// AnimalBreakdown is the per-animal row used for tables and charts.
// Emissions are kilograms of CO2 per week.
type AnimalBreakdown struct {
	Animal                       AnimalType           `json:"animal"`
	WeeklyServings               Number               `json:"weekly_servings"`
	WeeklyMeatKg                 Number               `json:"weekly_meat_kg"`
	CountryAverageGramsPerWeek   Number               `json:"country_average_g_per_week"`
	WeeklyEmissionsKg            Number               `json:"weekly_emissions_kg"`
	CountryEmissionsKg           Number               `json:"country_emissions_kg"`
	ConsumptionDifference        Number               `json:"consumption_difference"`
	ConsumptionComparisonPercent Number               `json:"consumption_comparison_percent"`
	Goal                         *AnimalGoalBreakdown `json:"goal,omitempty"`
}

// AnimalGoalBreakdown is the goal part of an AnimalBreakdown.
type AnimalGoalBreakdown struct {
	NewServings              Number `json:"new_servings"`
	NewMeatKg                Number `json:"new_meat_kg"`
	NewEmissionsKg           Number `json:"new_emissions_kg"`
	EmissionReductionKg      Number `json:"emission_reduction_kg"`
	EmissionReductionPercent Number `json:"emission_reduction_percent"`
}

// GoalReport is the goal part of a Report.
type GoalReport struct {
	NewTotalEmissions        Number `json:"new_total_emissions_g"`
	EmissionReduction        Number `json:"emission_reduction_g"`
	EmissionReductionPercent Number `json:"emission_reduction_percent"`
	Band                     Band   `json:"band"`
}

// Report is everything a presentation layer reads back after an assessment.
// Totals are grams of CO2 per week; breakdown rows use kilograms.
type Report struct {
	Name                  string            `json:"name"`
	Country               string            `json:"country"`
	TotalEmissions        Number            `json:"total_emissions_g"`
	TotalCountryEmissions Number            `json:"total_country_emissions_g"`
	TotalEmissionsDiff    Number            `json:"total_emissions_comparison_g"`
	TotalEmissionsPercent Number            `json:"total_emissions_percent"`
	RelativeToAverage     Number            `json:"relative_to_average_percent"`
	Band                  Band              `json:"band"`
	Goal                  *GoalReport       `json:"goal,omitempty"`
	Animals               []AnimalBreakdown `json:"animals"`
}

// BuildReport snapshots a user whose stats have been computed. Goal fields
// are included once AggregateGoalStats has run.
func BuildReport(u *User) (Report, error) {
	totals, err := u.Totals()
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Name:                  u.Name(),
		Country:               u.Country().Name(),
		TotalEmissions:        Number(totals.TotalEmissions),
		TotalCountryEmissions: Number(totals.TotalCountryEmissions),
		TotalEmissionsDiff:    Number(totals.TotalEmissionsComparison),
		TotalEmissionsPercent: Number(totals.TotalEmissionsPercent),
		RelativeToAverage:     Number(RelativeToAverage(totals.TotalEmissionsPercent)),
		Band:                  ComparisonBand(totals.TotalEmissionsPercent),
		Animals:               make([]AnimalBreakdown, 0, NumAnimalTypes),
	}

	hasGoal := u.Stage() >= UserGoalStatsComputed
	if hasGoal {
		goalTotals, goalErr := u.GoalTotals()
		if goalErr != nil {
			return Report{}, goalErr
		}
		report.Goal = &GoalReport{
			NewTotalEmissions:        Number(goalTotals.NewTotalEmissions),
			EmissionReduction:        Number(goalTotals.EmissionReduction),
			EmissionReductionPercent: Number(goalTotals.EmissionReductionPercent),
			Band:                     GoalBand(goalTotals.EmissionReductionPercent),
		}
	}

	for _, animal := range u.Animals() {
		row, rowErr := breakdown(animal, hasGoal)
		if rowErr != nil {
			return Report{}, rowErr
		}
		report.Animals = append(report.Animals, row)
	}

	return report, nil
}

func breakdown(animal *Animal, withGoal bool) (AnimalBreakdown, error) {
	stats, err := animal.Stats()
	if err != nil {
		return AnimalBreakdown{}, err
	}

	row := AnimalBreakdown{
		Animal:                       animal.Type(),
		WeeklyServings:               Number(animal.WeeklyServings()),
		WeeklyMeatKg:                 Number(animal.WeeklyKg()),
		CountryAverageGramsPerWeek:   Number(animal.Country().AverageGramsPerWeek(animal.Type())),
		WeeklyEmissionsKg:            Number(stats.WeeklyEmissions / GramsPerKilogram),
		CountryEmissionsKg:           Number(animal.CountryEmissions() / GramsPerKilogram),
		ConsumptionDifference:        Number(stats.ConsumptionDifference),
		ConsumptionComparisonPercent: Number(stats.ConsumptionComparisonPercent),
	}
	if !withGoal {
		return row, nil
	}

	goal, err := animal.Goal()
	if err != nil {
		return AnimalBreakdown{}, err
	}
	goalKg, err := animal.GoalKg()
	if err != nil {
		return AnimalBreakdown{}, err
	}
	row.Goal = &AnimalGoalBreakdown{
		NewServings:              Number(goal.NewServings),
		NewMeatKg:                Number(goalKg),
		NewEmissionsKg:           Number(goal.NewEmissions / GramsPerKilogram),
		EmissionReductionKg:      Number(goal.EmissionReduction / GramsPerKilogram),
		EmissionReductionPercent: Number(goal.EmissionReductionPercent),
	}
	return row, nil
}
