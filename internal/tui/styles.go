// Package tui renders meatmonitor results with lipgloss and hosts the Bubble
// Tea screens used in interactive mode.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/meatmonitor/internal/footprint"
)

// Palette.
const (
	ColorHeader    = lipgloss.Color("99")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorMuted     = lipgloss.Color("241")
	ColorBorder    = lipgloss.Color("62")
	ColorHighlight = lipgloss.Color("212")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
)

// Direction icons.
const (
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconArrowRight = "→"
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values
var (
	HeaderStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle      = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle      = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	InfoStyle       = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	OKStyle         = lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
	WarningStyle    = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	CriticalStyle   = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	SelectedStyle   = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	SummaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// BandStyle colours a comparison or goal band: green for good, yellow for
// middling, red for bad.
func BandStyle(b footprint.Band) lipgloss.Style {
	switch b {
	case footprint.BandBelowAverage, footprint.BandGoalMet:
		return OKStyle
	case footprint.BandNearAverage, footprint.BandGoalPartial:
		return WarningStyle
	default:
		return CriticalStyle
	}
}

// BandMessage is the sentence shown under a band.
func BandMessage(b footprint.Band) string {
	switch b {
	case footprint.BandBelowAverage:
		return "Well below your country's average. Keep it up!"
	case footprint.BandNearAverage:
		return "Close to your country's average."
	case footprint.BandAboveAverage:
		return "Well above your country's average. Try setting a goal."
	case footprint.BandGoalMet:
		return "Great goal: more than a quarter less CO2."
	case footprint.BandGoalPartial:
		return "Good start. Push a little further for a 25% cut."
	case footprint.BandGoalShort:
		return "This goal barely moves the needle."
	default:
		return ""
	}
}
