package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/meatmonitor/internal/footprint"
	"github.com/rshade/meatmonitor/internal/greenops"
)

// GoalState represents the current state of the goal screen.
type GoalState int

const (
	// GoalStateAdjusting indicates the user is moving the goal sliders.
	GoalStateAdjusting GoalState = iota
	// GoalStateConfirmed indicates the user accepted the goal.
	GoalStateConfirmed
	// GoalStateQuitting indicates the user left without accepting.
	GoalStateQuitting
	// GoalStateError indicates recomputing the goal failed.
	GoalStateError
)

// Slider bounds, in servings per week.
const (
	MinGoalServings  = 0
	MaxGoalServings  = 15
	goalServingsStep = 1
	sliderWidth      = MaxGoalServings
	goalDefaultWidth = 80
)

type goalKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Increase key.Binding
	Decrease key.Binding
	Reset    key.Binding
	Confirm  key.Binding
	Quit     key.Binding
}

func (k goalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Increase, k.Decrease, k.Reset, k.Confirm, k.Quit}
}

func (k goalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Increase, k.Decrease, k.Reset},
		{k.Confirm, k.Quit},
	}
}

func newGoalKeyMap() goalKeyMap {
	return goalKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Increase: key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→/+", "more")),
		Decrease: key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/-", "less")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// GoalModel is the Bubble Tea model for adjusting weekly goal servings. Every
// change is applied to the user immediately and the report recomputed.
type GoalModel struct {
	user      *footprint.User
	current   footprint.Servings
	goals     footprint.Servings
	report    footprint.Report
	focused   int
	precision int

	keys goalKeyMap
	help help.Model

	state GoalState
	err   error
	width int
}

// NewGoalModel creates a goal screen for a user whose stats are computed.
// Goals start at the current consumption, clamped to the slider range.
func NewGoalModel(user *footprint.User, precision int) (*GoalModel, error) {
	if _, err := user.Totals(); err != nil {
		return nil, err
	}

	m := &GoalModel{
		user:      user,
		precision: precision,
		keys:      newGoalKeyMap(),
		help:      help.New(),
		state:     GoalStateAdjusting,
		width:     goalDefaultWidth,
	}
	for _, animal := range user.Animals() {
		m.current[animal.Type()] = animal.WeeklyServings()
	}
	m.resetGoals()

	if err := m.recompute(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *GoalModel) resetGoals() {
	for i, v := range m.current {
		m.goals[i] = clampServings(v)
	}
}

func clampServings(v float64) float64 {
	return min(max(v, MinGoalServings), MaxGoalServings)
}

func (m *GoalModel) recompute() error {
	if err := m.user.SetGoals(m.goals); err != nil {
		return err
	}
	report, err := footprint.BuildReport(m.user)
	if err != nil {
		return err
	}
	m.report = report
	return nil
}

// Init initializes the model.
func (m *GoalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *GoalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *GoalModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == GoalStateError {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = GoalStateQuitting
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		m.state = GoalStateConfirmed
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.focused > 0 {
			m.focused--
		}

	case key.Matches(msg, m.keys.Down):
		if m.focused < footprint.NumAnimalTypes-1 {
			m.focused++
		}

	case key.Matches(msg, m.keys.Increase):
		m.adjust(goalServingsStep)

	case key.Matches(msg, m.keys.Decrease):
		m.adjust(-goalServingsStep)

	case key.Matches(msg, m.keys.Reset):
		m.resetGoals()
		m.applyGoals()
	}

	return m, nil
}

func (m *GoalModel) adjust(delta float64) {
	next := clampServings(m.goals[m.focused] + delta)
	if next == m.goals[m.focused] {
		return
	}
	m.goals[m.focused] = next
	m.applyGoals()
}

func (m *GoalModel) applyGoals() {
	if err := m.recompute(); err != nil {
		m.err = err
		m.state = GoalStateError
	}
}

// View renders the current view.
func (m *GoalModel) View() string {
	switch m.state {
	case GoalStateQuitting, GoalStateConfirmed:
		return ""
	case GoalStateError:
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	case GoalStateAdjusting:
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Set a weekly goal"))
	sb.WriteString(LabelStyle.Render(fmt.Sprintf("  (%s)", m.report.Country)))
	sb.WriteString("\n\n")

	for i, a := range footprint.AnimalTypes() {
		sb.WriteString(m.renderSlider(i, a))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.report.Goal != nil {
		sb.WriteString(RenderGoalSummary(*m.report.Goal, m.precision))
		sb.WriteString("\n\n")
	}
	sb.WriteString(RenderEmissionChart(m.report, m.width))
	sb.WriteString("\n\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

func (m *GoalModel) renderSlider(i int, a footprint.AnimalType) string {
	cursor := "  "
	labelStyle := LabelStyle
	if i == m.focused {
		cursor = SelectedStyle.Render("> ")
		labelStyle = SelectedStyle
	}

	filled := int(m.goals[i])
	bar := OKStyle.Render(strings.Repeat("■", filled)) +
		InfoStyle.Render(strings.Repeat("·", sliderWidth-filled))

	return fmt.Sprintf("%s%s %s %s %s",
		cursor,
		labelStyle.Width(animalColWidth).Render(a.String()),
		bar,
		ValueStyle.Render(fmt.Sprintf("%2s", greenops.FormatFloat(m.goals[i], 0))),
		InfoStyle.Render("(now "+greenops.FormatFloat(m.current[i], m.precision)+")"),
	)
}

// Confirmed reports whether the user accepted the goal with enter.
func (m *GoalModel) Confirmed() bool {
	return m.state == GoalStateConfirmed
}

// State returns the screen state.
func (m *GoalModel) State() GoalState {
	return m.state
}

// Goals returns the goal servings currently set.
func (m *GoalModel) Goals() footprint.Servings {
	return m.goals
}

// Report returns the report for the goals currently set.
func (m *GoalModel) Report() footprint.Report {
	return m.report
}
