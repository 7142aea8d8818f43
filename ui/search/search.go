// Package search is the incremental airport search box. It only looks at
// airports already loaded; it never touches the network.
package search

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"airmap/airports"
	"airmap/sched"
)

const debounceTaskID = "search-debounce"

var (
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	focusStyle   = boxStyle.BorderForeground(lipgloss.Color("63"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	rowStyle     = lipgloss.NewStyle()
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("63"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	detailsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// SelectedMsg is sent when a result is chosen.
type SelectedMsg struct {
	Airport airports.Airport
}

// Model is the search box with its dropdown of results.
type Model struct {
	input    textinput.Model
	debounce sched.Task
	limit    int

	all     []airports.Airport
	results []airports.Airport
	shown   bool
	cursor  int

	width int
}

// New creates a search box that waits delay after the last keystroke and
// shows at most limit results.
func New(delay time.Duration, limit int) Model {
	in := textinput.New()
	in.Placeholder = "Search airports..."
	in.Prompt = "/ "
	in.CharLimit = 64
	in.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		input:    in,
		debounce: sched.New(debounceTaskID, delay),
		limit:    limit,
		width:    32,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetAirports sets the list searched over.
func (m *Model) SetAirports(list []airports.Airport) {
	m.all = list
}

// Focus gives the box keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur drops focus and dismisses the results.
func (m *Model) Blur() {
	m.input.Blur()
	m.Dismiss()
}

// Focused reports whether the box has keyboard focus.
func (m Model) Focused() bool { return m.input.Focused() }

// Dismiss hides the results and drops any pending search.
func (m *Model) Dismiss() {
	m.debounce.Cancel()
	m.shown = false
	m.results = nil
	m.cursor = 0
}

// Query returns the current input text.
func (m Model) Query() string { return m.input.Value() }

// Results returns the visible results, nil when the dropdown is hidden.
func (m Model) Results() []airports.Airport {
	if !m.shown {
		return nil
	}
	return m.results
}

// Shown reports whether the results dropdown is visible.
func (m Model) Shown() bool { return m.shown }

// SetWidth sets the rendered width including the border.
func (m *Model) SetWidth(w int) {
	m.width = w
	m.input.Width = w - boxStyle.GetHorizontalFrameSize() - lipgloss.Width(m.input.Prompt) - 1
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sched.FiredMsg:
		if m.debounce.Fired(msg) {
			m.run()
		}
		return m, nil

	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.Dismiss()
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.shown && m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			return m, m.choose()
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() == before {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.changed())
	}
	return m, nil
}

// changed reacts to an edit: short queries hide results at once, anything
// else restarts the debounce.
func (m *Model) changed() tea.Cmd {
	q := strings.TrimSpace(m.input.Value())
	if utf8.RuneCountInString(q) < airports.MinSearchLen {
		m.Dismiss()
		return nil
	}
	return m.debounce.Schedule()
}

func (m *Model) run() {
	q := strings.TrimSpace(m.input.Value())
	if utf8.RuneCountInString(q) < airports.MinSearchLen {
		m.Dismiss()
		return
	}
	m.results = airports.Search(m.all, q, m.limit)
	m.shown = true
	m.cursor = 0
}

func (m *Model) choose() tea.Cmd {
	if !m.shown || len(m.results) == 0 {
		return nil
	}
	a := m.results[m.cursor]
	m.input.SetValue("")
	m.Dismiss()
	return func() tea.Msg { return SelectedMsg{Airport: a} }
}

func (m Model) View() string {
	style := boxStyle
	if m.input.Focused() {
		style = focusStyle
	}
	inner := m.width - style.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	lines := []string{titleStyle.Render("Search"), m.input.View()}
	if m.shown {
		if len(m.results) == 0 {
			lines = append(lines, emptyStyle.Render("No airports found"))
		}
		for i, a := range m.results {
			line := truncate(fmt.Sprintf("%s %s", a.IATA, a.Name), inner)
			if i == m.cursor {
				lines = append(lines, cursorStyle.Render(line))
			} else {
				lines = append(lines, rowStyle.Render(line))
			}
			if i == m.cursor {
				lines = append(lines, detailsStyle.Render(truncate("  "+a.City+", "+a.Country, inner)))
			}
		}
	}
	return style.Width(m.width - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}
