package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/meatmonitor/internal/footprint"
	"github.com/rshade/meatmonitor/internal/greenops"
)

// Key names handled by the country picker.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
)

const (
	countryNameWidth   = 24
	countryValueWidth  = 10
	countryTableHeight = 15
	countryChrome      = 6
	minTableHeight     = 5
)

//nolint:gochecknoglobals // read-only sort cycle
var countrySortCycle = []struct {
	field string
	order string
}{
	{footprint.CountrySortName, footprint.SortAscending},
	{footprint.CountrySortTotal, footprint.SortDescending},
	{"beef", footprint.SortDescending},
	{"poultry", footprint.SortDescending},
	{"pork", footprint.SortDescending},
	{"lamb", footprint.SortDescending},
}

//nolint:gochecknoglobals // lipgloss styles are immutable values
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)
	TableSelectedStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
)

// CountryModel is a filterable, sortable table of countries and their
// average weekly consumption. Enter picks the highlighted country.
type CountryModel struct {
	all      []*footprint.Country
	visible  []*footprint.Country
	sorter   *footprint.CountrySorter
	sortIdx  int
	selected *footprint.Country

	table      table.Model
	textInput  textinput.Model
	showFilter bool

	quitting bool
	height   int
}

// NewCountryModel creates a picker over countries.
func NewCountryModel(countries []*footprint.Country) CountryModel {
	ti := textinput.New()
	ti.Placeholder = "filter countries"
	ti.CharLimit = countryNameWidth

	m := CountryModel{
		all:       countries,
		sorter:    footprint.NewCountrySorter(),
		textInput: ti,
		height:    countryTableHeight + countryChrome,
	}
	m.refreshTable()
	return m
}

// Init initializes the model.
func (m CountryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m CountryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.height = size.Height
		m.refreshTable()
		return m, nil
	}

	if m.showFilter {
		return m.handleFilterUpdate(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m.handleListKeypress(keyMsg)
}

func (m CountryModel) handleFilterUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.table.Focus()
			return m, nil
		case keyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.refreshTable()
	return m, cmd
}

func (m CountryModel) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case keyEnter:
		if c := m.table.Cursor(); c >= 0 && c < len(m.visible) {
			m.selected = m.visible[c]
			return m, tea.Quit
		}
		return m, nil
	case keySlash:
		m.showFilter = true
		m.table.Blur()
		m.textInput.Focus()
		return m, textinput.Blink
	case keyS:
		m.sortIdx = (m.sortIdx + 1) % len(countrySortCycle)
		m.refreshTable()
		return m, nil
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.refreshTable()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

// refreshTable filters, sorts and rebuilds the table.
func (m *CountryModel) refreshTable() {
	filter := strings.ToLower(strings.TrimSpace(m.textInput.Value()))

	visible := make([]*footprint.Country, 0, len(m.all))
	for _, c := range m.all {
		if filter == "" || strings.Contains(strings.ToLower(c.Name()), filter) {
			visible = append(visible, c)
		}
	}

	s := countrySortCycle[m.sortIdx]
	m.visible = m.sorter.Sort(visible, s.field, s.order)
	m.table = m.buildTable()
}

func (m CountryModel) buildTable() table.Model {
	columns := []table.Column{{Title: "Country", Width: countryNameWidth}}
	for _, a := range footprint.AnimalTypes() {
		columns = append(columns, table.Column{Title: a.String() + " g/wk", Width: countryValueWidth + 2})
	}

	rows := make([]table.Row, len(m.visible))
	for i, c := range m.visible {
		row := table.Row{c.Name()}
		for _, a := range footprint.AnimalTypes() {
			row = append(row, greenops.FormatFloat(c.AverageGramsPerWeek(a), 0))
		}
		rows[i] = row
	}

	height := max(m.height-countryChrome, minTableHeight)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(!m.showFilter),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = TableHeaderStyle
	styles.Selected = TableSelectedStyle
	t.SetStyles(styles)
	return t
}

// View renders the current view.
func (m CountryModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	s := countrySortCycle[m.sortIdx]
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Choose your country"))
	sb.WriteString(LabelStyle.Render(fmt.Sprintf("  %d of %d, sorted by %s %s",
		len(m.visible), len(m.all), s.field, s.order)))
	sb.WriteString("\n")
	if m.showFilter || m.textInput.Value() != "" {
		sb.WriteString(m.textInput.View())
		sb.WriteString("\n")
	}
	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	sb.WriteString(InfoStyle.Render("↑/↓ move • / filter • s sort • enter select • q quit"))
	return sb.String()
}

// Selected returns the picked country, or nil when the user quit.
func (m CountryModel) Selected() *footprint.Country {
	return m.selected
}

// Visible returns the countries currently shown, in display order.
func (m CountryModel) Visible() []*footprint.Country {
	return m.visible
}
