package footprint

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// UserStage is the lifecycle stage of a User.
type UserStage int

const (
	// UserCreated has a name and country but no consumption.
	UserCreated UserStage = iota
	// UserAnimalsSet has one Animal per type.
	UserAnimalsSet
	// UserStatsComputed has current and country totals.
	UserStatsComputed
	// UserGoalsSet has a goal on every Animal.
	UserGoalsSet
	// UserGoalStatsComputed has goal totals.
	UserGoalStatsComputed
)

// String returns a human-readable stage name.
func (s UserStage) String() string {
	switch s {
	case UserCreated:
		return "created"
	case UserAnimalsSet:
		return "animals_set"
	case UserStatsComputed:
		return "stats_computed"
	case UserGoalsSet:
		return "goals_set"
	case UserGoalStatsComputed:
		return "goal_stats_computed"
	default:
		return fmt.Sprintf("UserStage(%d)", int(s))
	}
}

// Totals are the aggregates computed by ComputeStats, in grams of CO2 per week.
type Totals struct {
	TotalEmissions           float64
	TotalCountryEmissions    float64
	TotalEmissionsComparison float64
	TotalEmissionsPercent    float64
}

// GoalTotals are the aggregates computed by AggregateGoalStats.
type GoalTotals struct {
	NewTotalEmissions        float64
	EmissionReduction        float64
	EmissionReductionPercent float64
}

// User is one submitted intake form. It owns its Animal records; the Country
// is shared. A fresh User is created for every restart.
type User struct {
	ref     *ReferenceData
	name    string
	country *Country
	animals []*Animal

	stage      UserStage
	totals     Totals
	goalTotals GoalTotals
}

// NewUser creates a user located in the named country of the registry.
func NewUser(ref *ReferenceData, registry *Registry, name, countryName string) (*User, error) {
	if ref == nil || registry == nil {
		return nil, fmt.Errorf("%w: user requires reference data and a country registry", ErrInvalidState)
	}
	country, err := registry.Lookup(countryName)
	if err != nil {
		return nil, err
	}
	return &User{
		ref:     ref,
		name:    name,
		country: country,
		stage:   UserCreated,
	}, nil
}

// Name returns the user's name.
func (u *User) Name() string { return u.name }

// Country returns the user's country.
func (u *User) Country() *Country { return u.country }

// Stage returns the lifecycle stage.
func (u *User) Stage() UserStage { return u.stage }

// Animals returns the animal records in Beef, Poultry, Pork, Lamb order.
func (u *User) Animals() []*Animal {
	out := make([]*Animal, len(u.animals))
	copy(out, u.animals)
	return out
}

// Animal returns the record for one meat type.
func (u *User) Animal(a AnimalType) (*Animal, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAnimalType, int(a))
	}
	if u.stage < UserAnimalsSet {
		return nil, u.stateError("Animal", UserAnimalsSet)
	}
	return u.animals[a], nil
}

// SetConsumption replaces the animal records with the given weekly servings.
// Any computed statistics and goals are discarded.
func (u *User) SetConsumption(servings Servings) error {
	animals := make([]*Animal, 0, NumAnimalTypes)
	for _, a := range AnimalTypes() {
		animal, err := NewAnimal(u.ref, a, u.country, servings[a])
		if err != nil {
			return err
		}
		animals = append(animals, animal)
	}

	u.animals = animals
	u.totals = Totals{}
	u.goalTotals = GoalTotals{}
	u.stage = UserAnimalsSet
	return nil
}

// ComputeStats recomputes every animal and aggregates current and country
// totals. It returns ErrDivisionByZero when the country baseline emissions
// sum to zero; the stage is then left unchanged. Once goals are set they are
// recomputed against the new totals and the stage never moves back.
func (u *User) ComputeStats() error {
	if u.stage < UserAnimalsSet {
		return u.stateError("ComputeStats", UserAnimalsSet)
	}

	var total, country float64
	for _, animal := range u.animals {
		animal.RecomputeStats()
		total += animal.stats.WeeklyEmissions
		country += animal.CountryEmissions()
	}

	if country == 0 {
		return fmt.Errorf("%w: country %q has zero baseline emissions", ErrDivisionByZero, u.country.Name())
	}

	comparison := total - country
	u.totals = Totals{
		TotalEmissions:           total,
		TotalCountryEmissions:    country,
		TotalEmissionsComparison: comparison,
		TotalEmissionsPercent:    100 * comparison / country,
	}
	if u.stage < UserStatsComputed {
		u.stage = UserStatsComputed
	}

	log.Debug().
		Str("component", "footprint").
		Str("country", u.country.Name()).
		Float64("total_g", total).
		Float64("country_g", country).
		Msg("user stats computed")

	if u.stage < UserGoalsSet {
		return nil
	}
	for _, animal := range u.animals {
		if err := animal.SetGoal(animal.goal.NewServings); err != nil {
			return err
		}
	}
	return u.AggregateGoalStats()
}

// SetGoals sets a goal on every animal and aggregates the goal totals.
// ComputeStats must have run.
func (u *User) SetGoals(servings Servings) error {
	if u.stage < UserStatsComputed {
		return u.stateError("SetGoals", UserStatsComputed)
	}

	for _, animal := range u.animals {
		if err := animal.SetGoal(servings[animal.Type()]); err != nil {
			return err
		}
	}
	u.stage = UserGoalsSet

	return u.AggregateGoalStats()
}

// AggregateGoalStats sums the animals' goal emissions and computes the
// reduction against current emissions. The percentage is zero when current
// emissions are zero.
func (u *User) AggregateGoalStats() error {
	if u.stage < UserGoalsSet {
		return u.stateError("AggregateGoalStats", UserGoalsSet)
	}

	var newTotal float64
	for _, animal := range u.animals {
		newTotal += animal.goal.NewEmissions
	}

	reduction := u.totals.TotalEmissions - newTotal
	percent := 0.0
	if u.totals.TotalEmissions != 0 {
		percent = 100 * reduction / u.totals.TotalEmissions
	}

	u.goalTotals = GoalTotals{
		NewTotalEmissions:        newTotal,
		EmissionReduction:        reduction,
		EmissionReductionPercent: percent,
	}
	u.stage = UserGoalStatsComputed
	return nil
}

// Totals returns the aggregates computed by ComputeStats.
func (u *User) Totals() (Totals, error) {
	if u.stage < UserStatsComputed {
		return Totals{}, u.stateError("Totals", UserStatsComputed)
	}
	return u.totals, nil
}

// GoalTotals returns the aggregates computed by AggregateGoalStats.
func (u *User) GoalTotals() (GoalTotals, error) {
	if u.stage < UserGoalStatsComputed {
		return GoalTotals{}, u.stateError("GoalTotals", UserGoalStatsComputed)
	}
	return u.goalTotals, nil
}

func (u *User) stateError(op string, want UserStage) error {
	return fmt.Errorf("%w: %s requires stage %s, have %s", ErrInvalidState, op, want, u.stage)
}
