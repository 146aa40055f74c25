package footprint

import (
	"fmt"
)

// AnimalStage is the lifecycle stage of an Animal.
type AnimalStage int

const (
	// AnimalCreated holds inputs and the country baseline only.
	AnimalCreated AnimalStage = iota
	// AnimalStatsComputed adds weekly emissions and the country comparison.
	AnimalStatsComputed
	// AnimalGoalComputed adds the goal emissions and reduction.
	AnimalGoalComputed
)

// String returns a human-readable stage name.
func (s AnimalStage) String() string {
	switch s {
	case AnimalCreated:
		return "created"
	case AnimalStatsComputed:
		return "stats_computed"
	case AnimalGoalComputed:
		return "goal_computed"
	default:
		return fmt.Sprintf("AnimalStage(%d)", int(s))
	}
}

// AnimalStats are the values computed by RecomputeStats. Emissions are grams
// of CO2 per week.
type AnimalStats struct {
	WeeklyEmissions float64

	// ConsumptionDifference subtracts the country's weekly grams from the
	// user's weekly servings. The units do not match; the formula is kept as
	// published so results stay comparable with earlier reports.
	ConsumptionDifference float64

	// ConsumptionComparisonPercent is ConsumptionDifference relative to the
	// country's weekly grams. It is ±Inf or NaN when that average is zero.
	ConsumptionComparisonPercent float64
}

// AnimalGoal are the values computed by SetGoal.
type AnimalGoal struct {
	NewServings              float64
	NewEmissions             float64
	EmissionReduction        float64
	EmissionReductionPercent float64
}

// Animal is one meat type's consumption record for one user.
type Animal struct {
	ref              *ReferenceData
	animalType       AnimalType
	country          *Country
	weeklyServings   float64
	countryEmissions float64

	stage AnimalStage
	stats AnimalStats
	goal  AnimalGoal
}

// NewAnimal creates the record of weeklyServings servings of a per week.
// The country baseline emissions are computed immediately.
func NewAnimal(ref *ReferenceData, a AnimalType, country *Country, weeklyServings float64) (*Animal, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAnimalType, int(a))
	}
	if ref == nil || country == nil {
		return nil, fmt.Errorf("%w: animal %s requires reference data and a country", ErrInvalidState, a)
	}

	return &Animal{
		ref:            ref,
		animalType:     a,
		country:        country,
		weeklyServings: weeklyServings,
		// Factor per gram of protein times grams of meat, as published.
		countryEmissions: ref.EmissionsPerAnimal(a) * country.AverageGramsPerWeek(a),
		stage:            AnimalCreated,
	}, nil
}

// Type returns the meat type.
func (m *Animal) Type() AnimalType { return m.animalType }

// Country returns the shared country record.
func (m *Animal) Country() *Country { return m.country }

// WeeklyServings returns the servings per week entered at intake.
func (m *Animal) WeeklyServings() float64 { return m.weeklyServings }

// CountryEmissions returns the country-average grams of CO2 per week.
func (m *Animal) CountryEmissions() float64 { return m.countryEmissions }

// Stage returns the lifecycle stage.
func (m *Animal) Stage() AnimalStage { return m.stage }

// WeeklyKg returns kilograms of meat eaten per week.
func (m *Animal) WeeklyKg() float64 {
	return m.weeklyServings * m.ref.ServingSizeGrams(m.animalType) / GramsPerKilogram
}

// RecomputeStats computes weekly emissions and the comparison against the
// country average. The comparison is not guarded against a zero average.
// Calling it again yields the same values and never moves the stage back.
func (m *Animal) RecomputeStats() {
	avg := m.country.AverageGramsPerWeek(m.animalType)
	diff := m.weeklyServings - avg

	m.stats = AnimalStats{
		WeeklyEmissions:              m.weeklyServings * m.ref.EmissionsPerServing(m.animalType),
		ConsumptionDifference:        diff,
		ConsumptionComparisonPercent: 100 * diff / avg,
	}
	if m.stage < AnimalStatsComputed {
		m.stage = AnimalStatsComputed
	}
}

// SetGoal computes emissions for newServings servings per week and the
// reduction against current emissions. RecomputeStats must have run.
func (m *Animal) SetGoal(newServings float64) error {
	if m.stage < AnimalStatsComputed {
		return m.stateError("SetGoal", AnimalStatsComputed)
	}

	newEmissions := newServings * m.ref.EmissionsPerServing(m.animalType)
	reduction := m.stats.WeeklyEmissions - newEmissions

	percent := 0.0
	if m.stats.WeeklyEmissions != 0 {
		percent = 100 * reduction / m.stats.WeeklyEmissions
	}

	m.goal = AnimalGoal{
		NewServings:              newServings,
		NewEmissions:             newEmissions,
		EmissionReduction:        reduction,
		EmissionReductionPercent: percent,
	}
	m.stage = AnimalGoalComputed
	return nil
}

// GoalKg returns kilograms of meat per week at the goal consumption.
func (m *Animal) GoalKg() (float64, error) {
	if m.stage < AnimalGoalComputed {
		return 0, m.stateError("GoalKg", AnimalGoalComputed)
	}
	return m.goal.NewServings * m.ref.ServingSizeGrams(m.animalType) / GramsPerKilogram, nil
}

// Stats returns the values computed by RecomputeStats.
func (m *Animal) Stats() (AnimalStats, error) {
	if m.stage < AnimalStatsComputed {
		return AnimalStats{}, m.stateError("Stats", AnimalStatsComputed)
	}
	return m.stats, nil
}

// Goal returns the values computed by SetGoal.
func (m *Animal) Goal() (AnimalGoal, error) {
	if m.stage < AnimalGoalComputed {
		return AnimalGoal{}, m.stateError("Goal", AnimalGoalComputed)
	}
	return m.goal, nil
}

func (m *Animal) stateError(op string, want AnimalStage) error {
	return fmt.Errorf("%w: %s on %s animal requires stage %s, have %s",
		ErrInvalidState, op, m.animalType, want, m.stage)
}
