package footprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCanada() (*ReferenceData, *Country) {
	ref := NewReferenceData(map[string]map[AnimalType]float64{
		"Canada": {Beef: 18, Poultry: 39, Pork: 24, Lamb: 1},
	})
	return ref, NewCountry("Canada", map[AnimalType]float64{Beef: 18, Poultry: 39, Pork: 24, Lamb: 1})
}

func TestNewAnimal(t *testing.T) {
	ref, canada := newCanada()

	beef, err := NewAnimal(ref, Beef, canada, 2)
	require.NoError(t, err)

	assert.Equal(t, Beef, beef.Type())
	assert.Same(t, canada, beef.Country())
	assert.InDelta(t, 2.0, beef.WeeklyServings(), 1e-9)
	assert.Equal(t, AnimalCreated, beef.Stage())
	assert.Equal(t, 498.9*canada.AverageGramsPerWeek(Beef), beef.CountryEmissions())
	assert.InDelta(t, 0.17, beef.WeeklyKg(), 1e-9)
}

func TestNewAnimal_UnknownType(t *testing.T) {
	ref, canada := newCanada()

	animal, err := NewAnimal(ref, AnimalType(7), canada, 1)
	assert.Nil(t, animal)
	assert.ErrorIs(t, err, ErrUnknownAnimalType)
}

func TestNewAnimal_RequiresCountry(t *testing.T) {
	ref, _ := newCanada()

	_, err := NewAnimal(ref, Beef, nil, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAnimal_RecomputeStats(t *testing.T) {
	ref, canada := newCanada()
	beef, err := NewAnimal(ref, Beef, canada, 2)
	require.NoError(t, err)

	_, err = beef.Stats()
	require.ErrorIs(t, err, ErrInvalidState)

	beef.RecomputeStats()
	stats, err := beef.Stats()
	require.NoError(t, err)

	avg := canada.AverageGramsPerWeek(Beef)
	assert.InDelta(t, 84813.0, stats.WeeklyEmissions, 1e-6)
	// Servings minus grams: the mismatched units are intentional.
	assert.Equal(t, 2-avg, stats.ConsumptionDifference)
	assert.Equal(t, 100*(2-avg)/avg, stats.ConsumptionComparisonPercent)
	assert.Equal(t, AnimalStatsComputed, beef.Stage())
}

func TestAnimal_RecomputeStatsIsIdempotent(t *testing.T) {
	ref, canada := newCanada()
	pork, err := NewAnimal(ref, Pork, canada, 5)
	require.NoError(t, err)

	pork.RecomputeStats()
	first, err := pork.Stats()
	require.NoError(t, err)

	pork.RecomputeStats()
	second, err := pork.Stats()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnimal_RecomputeStatsDoesNotRegressStage(t *testing.T) {
	ref, canada := newCanada()
	lamb, err := NewAnimal(ref, Lamb, canada, 3)
	require.NoError(t, err)

	lamb.RecomputeStats()
	require.NoError(t, lamb.SetGoal(1))
	lamb.RecomputeStats()

	assert.Equal(t, AnimalGoalComputed, lamb.Stage())
	_, err = lamb.Goal()
	assert.NoError(t, err)
}

func TestAnimal_ZeroCountryAverage(t *testing.T) {
	ref := NewReferenceData(nil)
	country := NewCountry("Nolamb", map[AnimalType]float64{Beef: 10, Poultry: 10, Pork: 10, Lamb: 0})

	lamb, err := NewAnimal(ref, Lamb, country, 2)
	require.NoError(t, err)
	assert.Zero(t, lamb.CountryEmissions())

	lamb.RecomputeStats()
	stats, err := lamb.Stats()
	require.NoError(t, err)
	assert.True(t, math.IsInf(stats.ConsumptionComparisonPercent, 1))

	none, err := NewAnimal(ref, Lamb, country, 0)
	require.NoError(t, err)
	none.RecomputeStats()
	stats, err = none.Stats()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(stats.ConsumptionComparisonPercent))
}

func TestAnimal_SetGoal(t *testing.T) {
	tests := []struct {
		name          string
		servings      float64
		goal          float64
		wantReduction float64
		wantPercent   float64
	}{
		{
			name:          "halving servings halves emissions",
			servings:      4,
			goal:          2,
			wantReduction: 2 * 76.1 * 100,
			wantPercent:   50,
		},
		{
			name:          "unchanged goal",
			servings:      4,
			goal:          4,
			wantReduction: 0,
			wantPercent:   0,
		},
		{
			name:          "increase is a negative reduction",
			servings:      2,
			goal:          3,
			wantReduction: -76.1 * 100,
			wantPercent:   -50,
		},
		{
			name:          "zero current emissions guard",
			servings:      0,
			goal:          5,
			wantReduction: -5 * 76.1 * 100,
			wantPercent:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, canada := newCanada()
			pork, err := NewAnimal(ref, Pork, canada, tt.servings)
			require.NoError(t, err)
			pork.RecomputeStats()

			require.NoError(t, pork.SetGoal(tt.goal))
			goal, err := pork.Goal()
			require.NoError(t, err)

			assert.InDelta(t, tt.goal, goal.NewServings, 1e-9)
			assert.InDelta(t, tt.goal*76.1*100, goal.NewEmissions, 1e-6)
			assert.InDelta(t, tt.wantReduction, goal.EmissionReduction, 1e-6)
			assert.InDelta(t, tt.wantPercent, goal.EmissionReductionPercent, 1e-9)
			assert.Equal(t, AnimalGoalComputed, pork.Stage())

			goalKg, err := pork.GoalKg()
			require.NoError(t, err)
			assert.InDelta(t, tt.goal*100/1000, goalKg, 1e-9)
		})
	}
}

func TestAnimal_SetGoalBeforeStats(t *testing.T) {
	ref, canada := newCanada()
	beef, err := NewAnimal(ref, Beef, canada, 2)
	require.NoError(t, err)

	err = beef.SetGoal(1)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "SetGoal")
	assert.Equal(t, AnimalCreated, beef.Stage())

	_, err = beef.Goal()
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = beef.GoalKg()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAnimalStage_String(t *testing.T) {
	assert.Equal(t, "created", AnimalCreated.String())
	assert.Equal(t, "stats_computed", AnimalStatsComputed.String())
	assert.Equal(t, "goal_computed", AnimalGoalComputed.String())
	assert.Equal(t, "AnimalStage(9)", AnimalStage(9).String())
}
