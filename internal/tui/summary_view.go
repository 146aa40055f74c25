package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/meatmonitor/internal/footprint"
	"github.com/rshade/meatmonitor/internal/greenops"
)

// Layout constants.
const (
	animalColWidth  = 9
	numberColWidth  = 12
	chartLabelWidth = 9
	defaultBarWidth = 40
	minBarWidth     = 10
	// deltaEpsilon hides floating-point noise in deltas.
	deltaEpsilon = 1e-9
)

// RenderAssessment renders the boxed headline numbers of a report: weekly
// emissions, the country baseline, the band and, when present, the annual
// equivalencies.
func RenderAssessment(report footprint.Report, eq greenops.EquivalencyOutput, precision int) string {
	var content strings.Builder

	title := "MEAT FOOTPRINT"
	if report.Name != "" {
		title += ": " + report.Name
	}
	content.WriteString(HeaderStyle.Render(title))
	content.WriteString(LabelStyle.Render(" (" + report.Country + ")"))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Your emissions:    "))
	content.WriteString(ValueStyle.Render(kgText(float64(report.TotalEmissions), precision) + " CO2/week"))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Country average:   "))
	content.WriteString(ValueStyle.Render(kgText(float64(report.TotalCountryEmissions), precision) + " CO2/week"))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Relative:          "))
	content.WriteString(BandStyle(report.Band).Render(
		greenops.FormatFloat(float64(report.RelativeToAverage), precision) + "% of average"))
	content.WriteString(" ")
	content.WriteString(RenderEmissionDelta(float64(report.TotalEmissionsDiff)/footprint.GramsPerKilogram, precision))
	content.WriteString("\n")

	content.WriteString(BandStyle(report.Band).Render(BandMessage(report.Band)))

	if !eq.IsEmpty && eq.DisplayText != "" {
		content.WriteString("\n")
		content.WriteString(InfoStyle.Render(fmt.Sprintf("Per year: %s CO2. %s %s",
			greenops.FormatFloat(eq.InputKg, 0)+" kg", eq.DisplayText, eq.CompactText)))
	}

	if report.Goal != nil {
		content.WriteString("\n\n")
		content.WriteString(RenderGoalSummary(*report.Goal, precision))
	}

	return SummaryBoxStyle.Render(content.String())
}

// RenderGoalSummary renders the goal totals and band.
func RenderGoalSummary(goal footprint.GoalReport, precision int) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("GOAL"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("New emissions:     "))
	sb.WriteString(ValueStyle.Render(kgText(float64(goal.NewTotalEmissions), precision) + " CO2/week"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Reduction:         "))
	sb.WriteString(BandStyle(goal.Band).Render(fmt.Sprintf("%s (%s%%)",
		kgText(float64(goal.EmissionReduction), precision),
		greenops.FormatFloat(float64(goal.EmissionReductionPercent), precision))))
	sb.WriteString("\n")
	sb.WriteString(BandStyle(goal.Band).Render(BandMessage(goal.Band)))
	return sb.String()
}

// RenderBreakdownTable renders one row per animal. Goal columns appear only
// when the report carries a goal.
func RenderBreakdownTable(report footprint.Report, precision int) string {
	headers := []string{"Animal", "Servings", "Meat kg", "You kg", "Country kg", "vs avg %"}
	if report.Goal != nil {
		headers = append(headers, "Goal", "Goal kg", "Cut %")
	}

	var sb strings.Builder
	for i, h := range headers {
		width := numberColWidth
		if i == 0 {
			width = animalColWidth
		}
		sb.WriteString(HeaderStyle.Width(width).Render(h))
	}
	sb.WriteString("\n")

	for _, row := range report.Animals {
		cells := []string{
			greenops.FormatFloat(float64(row.WeeklyServings), precision),
			greenops.FormatFloat(float64(row.WeeklyMeatKg), precision),
			greenops.FormatFloat(float64(row.WeeklyEmissionsKg), precision),
			greenops.FormatFloat(float64(row.CountryEmissionsKg), precision),
			greenops.FormatFloat(float64(row.ConsumptionComparisonPercent), precision),
		}
		if report.Goal != nil && row.Goal != nil {
			cells = append(cells,
				greenops.FormatFloat(float64(row.Goal.NewServings), precision),
				greenops.FormatFloat(float64(row.Goal.NewEmissionsKg), precision),
				greenops.FormatFloat(float64(row.Goal.EmissionReductionPercent), precision),
			)
		}

		sb.WriteString(LabelStyle.Width(animalColWidth).Render(row.Animal.String()))
		for _, c := range cells {
			sb.WriteString(ValueStyle.Width(numberColWidth).Render(c))
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// RenderEmissionChart renders horizontal bars of weekly kg CO2 per animal:
// yours, the country average and the goal when set. width is the total
// line width; bars are scaled to the largest value.
func RenderEmissionChart(report footprint.Report, width int) string {
	barWidth := width - chartLabelWidth - numberColWidth - 2
	if width <= 0 {
		barWidth = defaultBarWidth
	}
	barWidth = max(barWidth, minBarWidth)

	maxKg := 0.0
	for _, row := range report.Animals {
		maxKg = math.Max(maxKg, finiteOrZero(row.WeeklyEmissionsKg))
		maxKg = math.Max(maxKg, finiteOrZero(row.CountryEmissionsKg))
		if row.Goal != nil {
			maxKg = math.Max(maxKg, finiteOrZero(row.Goal.NewEmissionsKg))
		}
	}

	youStyle := lipgloss.NewStyle().Foreground(ColorHighlight)
	countryStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	goalStyle := lipgloss.NewStyle().Foreground(ColorOK)

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Weekly kg of CO2 from eating meat"))
	sb.WriteString("\n")
	sb.WriteString(youStyle.Render("█ you") + "  " + countryStyle.Render("█ country"))
	if report.Goal != nil {
		sb.WriteString("  " + goalStyle.Render("█ goal"))
	}
	sb.WriteString("\n")

	for _, row := range report.Animals {
		sb.WriteString(chartLine(row.Animal.String(), row.WeeklyEmissionsKg, maxKg, barWidth, youStyle))
		sb.WriteString(chartLine("", row.CountryEmissionsKg, maxKg, barWidth, countryStyle))
		if row.Goal != nil {
			sb.WriteString(chartLine("", row.Goal.NewEmissionsKg, maxKg, barWidth, goalStyle))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func chartLine(label string, kg footprint.Number, maxKg float64, barWidth int, style lipgloss.Style) string {
	n := 0
	if maxKg > 0 {
		n = int(math.Round(finiteOrZero(kg) / maxKg * float64(barWidth)))
	}
	return fmt.Sprintf("%-*s%s %s\n",
		chartLabelWidth, label,
		style.Render(strings.Repeat("█", n)),
		greenops.FormatFloat(float64(kg), 1))
}

// RenderEmissionDelta renders a kg difference with sign and arrow. More CO2
// is a warning, less is OK.
func RenderEmissionDelta(deltaKg float64, precision int) string {
	var icon, sign string
	var color lipgloss.Color

	switch {
	case math.IsNaN(deltaKg):
		return InfoStyle.Render("n/a")
	case deltaKg > deltaEpsilon:
		icon = IconArrowUp
		sign = "+"
		color = ColorWarning
	case deltaKg < -deltaEpsilon:
		icon = IconArrowDown
		sign = "-"
		color = ColorOK
	default:
		icon = IconArrowRight
		color = ColorMuted
	}

	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	return style.Render(fmt.Sprintf("%s%s kg %s", sign, greenops.FormatFloat(math.Abs(deltaKg), precision), icon))
}

func kgText(grams float64, precision int) string {
	return greenops.FormatFloat(grams/footprint.GramsPerKilogram, precision) + " kg"
}

func finiteOrZero(n footprint.Number) float64 {
	if !n.Finite() {
		return 0
	}
	return float64(n)
}
