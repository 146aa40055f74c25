package tui

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/meatmonitor/internal/footprint"
	"github.com/rshade/meatmonitor/internal/greenops"
)

func buildReport(t *testing.T, withGoal bool) footprint.Report {
	t.Helper()
	u := newAssessedUser(t, footprint.Servings{2, 3, 5, 7})
	if withGoal {
		require.NoError(t, u.SetGoals(footprint.Servings{1, 3, 5, 2}))
	}
	report, err := footprint.BuildReport(u)
	require.NoError(t, err)
	return report
}

func TestRenderAssessment(t *testing.T) {
	report := buildReport(t, false)
	eq := greenops.CalculateWeekly(float64(report.TotalEmissions))

	out := RenderAssessment(report, eq, 1)

	assert.Contains(t, out, "MEAT FOOTPRINT: Alex")
	assert.Contains(t, out, "Canada")
	assert.Contains(t, out, "276.3 kg")
	assert.Contains(t, out, "smartphones")
	assert.Contains(t, out, BandMessage(report.Band))
	assert.NotContains(t, out, "GOAL")
}

func TestRenderAssessment_WithGoal(t *testing.T) {
	report := buildReport(t, true)

	out := RenderAssessment(report, greenops.EquivalencyOutput{IsEmpty: true}, 1)

	assert.Contains(t, out, "GOAL")
	assert.NotContains(t, out, "smartphones")
	assert.Contains(t, out, BandMessage(report.Goal.Band))
}

func TestRenderBreakdownTable(t *testing.T) {
	t.Run("without goal", func(t *testing.T) {
		out := RenderBreakdownTable(buildReport(t, false), 1)
		lines := strings.Split(out, "\n")

		require.Len(t, lines, 1+footprint.NumAnimalTypes)
		assert.Contains(t, lines[0], "Country kg")
		assert.NotContains(t, lines[0], "Goal")
		assert.Contains(t, lines[1], "Beef")
		assert.Contains(t, lines[1], "84.8")
	})

	t.Run("with goal", func(t *testing.T) {
		out := RenderBreakdownTable(buildReport(t, true), 1)
		assert.Contains(t, out, "Goal kg")
		assert.Contains(t, out, "Cut %")
	})
}

func TestRenderEmissionChart(t *testing.T) {
	report := buildReport(t, true)

	out := RenderEmissionChart(report, 60)

	assert.Contains(t, out, "Weekly kg of CO2")
	assert.Contains(t, out, "goal")
	for _, a := range footprint.AnimalTypes() {
		assert.Contains(t, out, a.String())
	}
	assert.Contains(t, out, "█")
}

func TestRenderEmissionChart_NonFinite(t *testing.T) {
	report := footprint.Report{
		Animals: []footprint.AnimalBreakdown{
			{Animal: footprint.Lamb, WeeklyEmissionsKg: footprint.Number(math.Inf(1))},
		},
	}

	out := RenderEmissionChart(report, 0)
	assert.Contains(t, out, "n/a")
}

func TestRenderEmissionDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  string
	}{
		{name: "increase", delta: 12.34, want: "+12.3 kg " + IconArrowUp},
		{name: "decrease", delta: -5, want: "-5.0 kg " + IconArrowDown},
		{name: "zero", delta: 0, want: "0.0 kg " + IconArrowRight},
		{name: "nan", delta: math.NaN(), want: "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, RenderEmissionDelta(tt.delta, 1), tt.want)
		})
	}
}

func TestBandStyleAndMessage(t *testing.T) {
	bands := []footprint.Band{
		footprint.BandBelowAverage, footprint.BandNearAverage, footprint.BandAboveAverage,
		footprint.BandGoalMet, footprint.BandGoalPartial, footprint.BandGoalShort,
	}
	for _, b := range bands {
		assert.NotEmpty(t, BandMessage(b), b)
		assert.NotEmpty(t, BandStyle(b).Render("x"))
	}
	assert.Empty(t, BandMessage(footprint.Band("unknown")))
}
