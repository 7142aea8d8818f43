// Package routelist lists the routes loaded for the selected airport.
package routelist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"airmap/airports"
	"airmap/ui/info"
)

var (
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	focusStyle  = boxStyle.BorderForeground(lipgloss.Color("63"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("63"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// HighlightMsg asks for route Index to be highlighted on the map.
type HighlightMsg struct {
	Index int
}

// Model is a scrolling list of routes.
type Model struct {
	origin    string
	routes    []airports.Route
	truncated bool

	cursor  int
	offset  int
	visible int

	focused bool
	width   int
}

// New creates an empty list showing at most visible rows at once.
func New(visible int) Model {
	if visible < 1 {
		visible = 1
	}
	return Model{visible: visible, width: 32}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetRoutes replaces the listed routes.
func (m *Model) SetRoutes(origin string, routes []airports.Route, truncated bool) {
	m.origin = origin
	m.routes = routes
	m.truncated = truncated
	m.cursor = 0
	m.offset = 0
}

// Clear empties the list.
func (m *Model) Clear() { m.SetRoutes("", nil, false) }

// Len returns the number of listed routes.
func (m Model) Len() int { return len(m.routes) }

// Cursor returns the index of the route under the cursor.
func (m Model) Cursor() int { return m.cursor }

func (m *Model) Focus() { m.focused = true }

func (m *Model) Blur() { m.focused = false }

func (m Model) Focused() bool { return m.focused }

func (m *Model) SetWidth(w int) { m.width = w }

// SetVisible sets how many rows are shown at once.
func (m *Model) SetVisible(n int) {
	if n < 1 {
		n = 1
	}
	m.visible = n
	m.scroll()
}

func (m *Model) move(step int) {
	if len(m.routes) == 0 {
		return
	}
	m.cursor += step
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.routes) {
		m.cursor = len(m.routes) - 1
	}
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.visible {
		m.offset = m.cursor - m.visible + 1
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch key.String() {
	case "up":
		m.move(-1)
	case "down":
		m.move(1)
	case "pgup":
		m.move(-m.visible)
	case "pgdown":
		m.move(m.visible)
	case "home":
		m.move(-len(m.routes))
	case "end":
		m.move(len(m.routes))
	case "enter":
		if len(m.routes) == 0 {
			return m, nil
		}
		i := m.cursor
		return m, func() tea.Msg { return HighlightMsg{Index: i} }
	}
	return m, nil
}

func (m Model) View() string {
	style := boxStyle
	if m.focused {
		style = focusStyle
	}
	inner := m.width - style.GetHorizontalFrameSize()

	title := "Routes"
	if m.origin != "" {
		title = fmt.Sprintf("Routes from %s (%d)", m.origin, len(m.routes))
	}
	lines := []string{titleStyle.Render(title)}

	switch {
	case len(m.routes) > 0:
	case m.origin != "":
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("No routes from %s", m.origin)))
	default:
		lines = append(lines, mutedStyle.Render("Select an airport to view routes"))
	}

	end := m.offset + m.visible
	if end > len(m.routes) {
		end = len(m.routes)
	}
	for i := m.offset; i < end; i++ {
		r := m.routes[i]
		text := fmt.Sprintf("%s → %s %6.0f km", r.Origin, r.Destination, r.DistanceKm)
		if r.Airline != "" {
			text += " " + r.Airline
		}
		if w := inner - 2; w > 0 && len([]rune(text)) > w {
			text = string([]rune(text)[:w-1]) + "…"
		}
		if m.focused && i == m.cursor {
			text = cursorStyle.Render(text)
		}
		lines = append(lines, info.TierSwatch(airports.TierFor(r.DistanceKm))+" "+text)
	}

	if len(m.routes) > m.visible {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(m.routes))))
	}
	if m.truncated {
		lines = append(lines, mutedStyle.Render("(limited)"))
	}
	return style.Width(m.width - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}
