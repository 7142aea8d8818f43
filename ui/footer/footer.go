package footer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the footer's state
type Model struct {
	width     int
	zoomLevel float64
	airports  int
	routes    int
	focus     string
}

// New creates a new footer model
func New() Model {
	return Model{
		width: 80, // Default
		focus: "map",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetZoom allows the parent model to update the zoom level
func (m *Model) SetZoom(z float64) {
	m.zoomLevel = z
}

// SetCounts sets the shown airport and route counts.
func (m *Model) SetCounts(airports, routes int) {
	m.airports = airports
	m.routes = routes
}

// SetFocus names the component that has keyboard focus.
func (m *Model) SetFocus(name string) {
	m.focus = name
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width // Just store the width
	}
	return m, nil
}

// help lists the keys that work in the focused component.
func (m Model) help() string {
	if m.focus == "map" {
		return "Pan: j/k/l/; | Zoom: K/L | Select: enter | Point: p | Nearby: n | Clear: c/x/X | Layers: 1/2 | Panels: tab | Quit: q"
	}
	return "Move: ↑/↓ | Choose: enter | Back: esc | Next: tab"
}

func (m Model) View() string {
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Padding(0, 1)

	footerLeft := footerStyle.Render(fmt.Sprintf(
		"airmap | Zoom: %.1f | Airports: %d | Routes: %d | Focus: %s",
		m.zoomLevel, m.airports, m.routes, m.focus,
	))

	// Use the component's width
	rest := m.width - lipgloss.Width(footerLeft) - 1
	if rest < 1 {
		return footerLeft
	}
	footerRight := footerStyle.Width(rest).
		Align(lipgloss.Right).
		MaxHeight(1).
		Render(m.help())

	return lipgloss.JoinHorizontal(lipgloss.Left, footerLeft, footerRight)
}
