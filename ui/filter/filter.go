// Package filter is the country and major-hub filter panel.
package filter

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"airmap/airports"
)

// AllCountries is the label of the unfiltered country choice.
const AllCountries = "All"

var (
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	focusStyle  = boxStyle.BorderForeground(lipgloss.Color("63"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("63"))
	buttonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("48"))
)

// AppliedMsg is sent when the user applies the selected filter.
type AppliedMsg struct {
	Filter airports.Filter
}

// ResetMsg is sent when the user resets the filter to its defaults.
type ResetMsg struct{}

type row int

const (
	rowCountry row = iota
	rowHubs
	rowApply
	rowReset
	rowCount
)

// Model holds the filter controls.
type Model struct {
	countries []string
	country   int // index into countries, 0 is AllCountries
	hubsOnly  bool
	row       row
	focused   bool
	width     int
}

// New creates a filter panel with nothing selected.
func New() Model {
	return Model{
		countries: []string{AllCountries},
		width:     32,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetCountries replaces the country choices. The current choice is kept if
// it is still offered.
func (m *Model) SetCountries(list []string) {
	current := m.countries[m.country]
	m.countries = append([]string{AllCountries}, list...)
	m.country = 0
	for i, c := range m.countries {
		if c == current {
			m.country = i
			break
		}
	}
}

// Filter returns the filter the controls currently describe.
func (m Model) Filter() airports.Filter {
	f := airports.Filter{MajorHubsOnly: m.hubsOnly}
	if m.country > 0 {
		f.Country = m.countries[m.country]
	}
	return f
}

// Reset puts the controls back to their defaults.
func (m *Model) Reset() {
	m.country = 0
	m.hubsOnly = false
}

func (m *Model) Focus() { m.focused = true }

func (m *Model) Blur() { m.focused = false }

func (m Model) Focused() bool { return m.focused }

func (m *Model) SetWidth(w int) { m.width = w }

func (m *Model) cycle(step int) {
	n := len(m.countries)
	m.country = ((m.country+step)%n + n) % n
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch key.String() {
	case "up":
		if m.row > 0 {
			m.row--
		}
	case "down":
		if m.row < rowCount-1 {
			m.row++
		}
	case "left":
		if m.row == rowCountry {
			m.cycle(-1)
		}
	case "right":
		if m.row == rowCountry {
			m.cycle(1)
		}
	case " ":
		if m.row == rowHubs {
			m.hubsOnly = !m.hubsOnly
		}
	case "enter":
		switch m.row {
		case rowCountry:
			m.cycle(1)
		case rowHubs:
			m.hubsOnly = !m.hubsOnly
		case rowApply:
			return m, m.apply()
		case rowReset:
			return m, m.reset()
		}
	case "a":
		return m, m.apply()
	case "R":
		return m, m.reset()
	}
	return m, nil
}

func (m Model) apply() tea.Cmd {
	f := m.Filter()
	return func() tea.Msg { return AppliedMsg{Filter: f} }
}

func (m *Model) reset() tea.Cmd {
	m.Reset()
	return func() tea.Msg { return ResetMsg{} }
}

func (m Model) View() string {
	style := boxStyle
	if m.focused {
		style = focusStyle
	}

	hubs := "[ ]"
	if m.hubsOnly {
		hubs = "[x]"
	}
	rows := map[row]string{
		rowCountry: "Country: ‹ " + m.countries[m.country] + " ›",
		rowHubs:    hubs + " Major hubs only",
		rowApply:   buttonStyle.Render("[ Apply ]"),
		rowReset:   buttonStyle.Render("[ Reset ]"),
	}

	lines := []string{titleStyle.Render("Filter")}
	for r := rowCountry; r < rowCount; r++ {
		line := rows[r]
		if m.focused && r == m.row {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return style.Width(m.width - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}
