package footprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, country string) *User {
	t.Helper()
	ref, reg := loadTestData(t)
	u, err := NewUser(ref, reg, "Jeremy", country)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	u := newTestUser(t, "Canada")

	assert.Equal(t, "Jeremy", u.Name())
	assert.Equal(t, "Canada", u.Country().Name())
	assert.Equal(t, UserCreated, u.Stage())
	assert.Empty(t, u.Animals())
}

func TestNewUser_UnknownCountry(t *testing.T) {
	ref, reg := loadTestData(t)

	u, err := NewUser(ref, reg, "Jeremy", "Atlantis")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, ErrUnknownCountry)
}

func TestUser_EndToEnd(t *testing.T) {
	u := newTestUser(t, "Canada")

	require.NoError(t, u.SetConsumption(Servings{2, 3, 5, 7}))
	assert.Equal(t, UserAnimalsSet, u.Stage())

	require.NoError(t, u.ComputeStats())
	assert.Equal(t, UserStatsComputed, u.Stage())

	beef, err := u.Animal(Beef)
	require.NoError(t, err)
	beefStats, err := beef.Stats()
	require.NoError(t, err)
	assert.InDelta(t, 84813.0, beefStats.WeeklyEmissions, 1e-6)

	totals, err := u.Totals()
	require.NoError(t, err)

	wantTotal := 2*498.9*85 + 3*57.0*85 + 5*76.1*100 + 7*198.5*100
	assert.InDelta(t, wantTotal, totals.TotalEmissions, 1e-6)

	canada := u.Country()
	var wantCountry float64
	for _, a := range AnimalTypes() {
		wantCountry += emissionFactors[a] * canada.AverageGramsPerWeek(a)
	}
	assert.InDelta(t, wantCountry, totals.TotalCountryEmissions, 1e-6)
	assert.InDelta(t, totals.TotalEmissions-totals.TotalCountryEmissions, totals.TotalEmissionsComparison, 1e-9)
	assert.InDelta(t, 100*totals.TotalEmissionsComparison/totals.TotalCountryEmissions,
		totals.TotalEmissionsPercent, 1e-9)
}

func TestUser_TotalEmissionsIsSumOfAnimals(t *testing.T) {
	inputs := []Servings{
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{2, 3, 5, 7},
		{0.5, 14, 0, 2.25},
		{15, 15, 15, 15},
	}

	for _, servings := range inputs {
		u := newTestUser(t, "Mongolia")
		require.NoError(t, u.SetConsumption(servings))
		require.NoError(t, u.ComputeStats())

		var sum float64
		for _, animal := range u.Animals() {
			stats, err := animal.Stats()
			require.NoError(t, err)
			sum += stats.WeeklyEmissions
		}

		totals, err := u.Totals()
		require.NoError(t, err)
		assert.Equal(t, sum, totals.TotalEmissions, "servings %v", servings)
	}
}

func TestUser_AnimalsInFixedOrder(t *testing.T) {
	u := newTestUser(t, "Canada")
	require.NoError(t, u.SetConsumption(Servings{1, 2, 3, 4}))

	animals := u.Animals()
	require.Len(t, animals, NumAnimalTypes)
	for i, a := range AnimalTypes() {
		assert.Equal(t, a, animals[i].Type())
		assert.InDelta(t, float64(i+1), animals[i].WeeklyServings(), 1e-9)
	}
}

func TestUser_GoalsEqualToCurrentYieldNoReduction(t *testing.T) {
	u := newTestUser(t, "Canada")
	current := Servings{2, 3, 5, 7}

	require.NoError(t, u.SetConsumption(current))
	require.NoError(t, u.ComputeStats())
	require.NoError(t, u.SetGoals(current))
	require.NoError(t, u.AggregateGoalStats())

	goal, err := u.GoalTotals()
	require.NoError(t, err)
	assert.Zero(t, goal.EmissionReduction)
	assert.Zero(t, goal.EmissionReductionPercent)
	assert.Equal(t, UserGoalStatsComputed, u.Stage())
}

func TestUser_SetGoals(t *testing.T) {
	u := newTestUser(t, "Canada")

	require.NoError(t, u.SetConsumption(Servings{4, 4, 4, 4}))
	require.NoError(t, u.ComputeStats())
	require.NoError(t, u.SetGoals(Servings{2, 2, 2, 2}))

	totals, err := u.Totals()
	require.NoError(t, err)
	goal, err := u.GoalTotals()
	require.NoError(t, err)

	assert.InDelta(t, totals.TotalEmissions/2, goal.NewTotalEmissions, 1e-6)
	assert.InDelta(t, totals.TotalEmissions/2, goal.EmissionReduction, 1e-6)
	assert.InDelta(t, 50.0, goal.EmissionReductionPercent, 1e-9)
}

func TestUser_ZeroConsumptionGoalGuard(t *testing.T) {
	u := newTestUser(t, "Canada")

	require.NoError(t, u.SetConsumption(Servings{}))
	require.NoError(t, u.ComputeStats())
	require.NoError(t, u.SetGoals(Servings{1, 0, 0, 0}))

	goal, err := u.GoalTotals()
	require.NoError(t, err)
	assert.Zero(t, goal.EmissionReductionPercent)
	assert.Negative(t, goal.EmissionReduction)
}

func TestUser_ZeroCountryBaseline(t *testing.T) {
	u := newTestUser(t, "Vegland")

	require.NoError(t, u.SetConsumption(Servings{1, 1, 1, 1}))
	err := u.ComputeStats()
	require.ErrorIs(t, err, ErrDivisionByZero)
	assert.Contains(t, err.Error(), "Vegland")
	assert.Equal(t, UserAnimalsSet, u.Stage())

	_, err = u.Totals()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUser_ZeroAverageForOneAnimal(t *testing.T) {
	u := newTestUser(t, "Nolamb")

	require.NoError(t, u.SetConsumption(Servings{1, 1, 1, 1}))
	require.NoError(t, u.ComputeStats())

	lamb, err := u.Animal(Lamb)
	require.NoError(t, err)
	lambStats, err := lamb.Stats()
	require.NoError(t, err)
	assert.True(t, math.IsInf(lambStats.ConsumptionComparisonPercent, 1))

	beef, err := u.Animal(Beef)
	require.NoError(t, err)
	beefStats, err := beef.Stats()
	require.NoError(t, err)
	assert.False(t, math.IsInf(beefStats.ConsumptionComparisonPercent, 0))

	totals, err := u.Totals()
	require.NoError(t, err)
	assert.False(t, math.IsNaN(totals.TotalEmissionsPercent))
}

func TestUser_StageOrdering(t *testing.T) {
	tests := []struct {
		name string
		call func(u *User) error
	}{
		{name: "ComputeStats before SetConsumption", call: func(u *User) error { return u.ComputeStats() }},
		{name: "SetGoals before SetConsumption", call: func(u *User) error { return u.SetGoals(Servings{}) }},
		{name: "AggregateGoalStats before SetGoals", call: func(u *User) error { return u.AggregateGoalStats() }},
		{name: "Animal before SetConsumption", call: func(u *User) error {
			_, err := u.Animal(Beef)
			return err
		}},
		{name: "Totals before ComputeStats", call: func(u *User) error {
			_, err := u.Totals()
			return err
		}},
		{name: "GoalTotals before SetGoals", call: func(u *User) error {
			_, err := u.GoalTotals()
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newTestUser(t, "Canada")
			assert.ErrorIs(t, tt.call(u), ErrInvalidState)
			assert.Equal(t, UserCreated, u.Stage())
		})
	}
}

func TestUser_SetGoalsBeforeComputeStats(t *testing.T) {
	u := newTestUser(t, "Canada")
	require.NoError(t, u.SetConsumption(Servings{1, 2, 3, 4}))

	err := u.SetGoals(Servings{1, 1, 1, 1})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, UserAnimalsSet, u.Stage())
}

func TestUser_SetConsumptionResetsDerivedState(t *testing.T) {
	u := newTestUser(t, "Canada")
	require.NoError(t, u.SetConsumption(Servings{2, 3, 5, 7}))
	require.NoError(t, u.ComputeStats())
	require.NoError(t, u.SetGoals(Servings{1, 1, 1, 1}))

	require.NoError(t, u.SetConsumption(Servings{1, 1, 1, 1}))
	assert.Equal(t, UserAnimalsSet, u.Stage())

	_, err := u.GoalTotals()
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = u.Totals()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUser_ComputeStatsAgainKeepsGoals(t *testing.T) {
	tests := []struct {
		name          string
		goals         Servings
		wantReduction float64
	}{
		{name: "goals equal to current", goals: Servings{2, 3, 5, 7}, wantReduction: 0},
		{name: "less beef and lamb", goals: Servings{1, 3, 5, 2}, wantReduction: 42406.5 + 5*19850},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newTestUser(t, "Canada")
			require.NoError(t, u.SetConsumption(Servings{2, 3, 5, 7}))
			require.NoError(t, u.ComputeStats())
			require.NoError(t, u.SetGoals(tt.goals))
			before, err := u.GoalTotals()
			require.NoError(t, err)

			require.NoError(t, u.ComputeStats())
			assert.Equal(t, UserGoalStatsComputed, u.Stage())

			after, err := u.GoalTotals()
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.InDelta(t, tt.wantReduction, after.EmissionReduction, 1e-6)
			require.NoError(t, u.AggregateGoalStats())

			for _, animal := range u.Animals() {
				goal, goalErr := animal.Goal()
				require.NoError(t, goalErr)
				assert.InDelta(t, tt.goals[animal.Type()], goal.NewServings, 0)
			}
		})
	}
}

func TestUser_AnimalUnknownType(t *testing.T) {
	u := newTestUser(t, "Canada")
	require.NoError(t, u.SetConsumption(Servings{}))

	_, err := u.Animal(AnimalType(-1))
	assert.ErrorIs(t, err, ErrUnknownAnimalType)
}

func TestUserStage_String(t *testing.T) {
	assert.Equal(t, "goal_stats_computed", UserGoalStatsComputed.String())
	assert.Equal(t, "UserStage(42)", UserStage(42).String())
}
