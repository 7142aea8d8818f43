// Package info is the passive status panel every other component writes to.
package info

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"airmap/airports"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model holds the info and stats text.
type Model struct {
	width   int
	height  int
	message string
	isError bool
	stats   string
}

// New creates an info panel with the initial hint.
func New() Model {
	return Model{
		width:   32,
		message: "Loading airports...",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Set replaces the message and clears the stats box.
func (m *Model) Set(format string, args ...any) {
	m.message = fmt.Sprintf(format, args...)
	m.isError = false
	m.stats = ""
}

// Error replaces the message with an error and clears the stats box.
func (m *Model) Error(format string, args ...any) {
	m.Set(format, args...)
	m.isError = true
}

// SetStats replaces the stats box below the message.
func (m *Model) SetStats(text string) {
	m.stats = text
}

// SetSize sets the rendered size including the border.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Message returns the current message text.
func (m Model) Message() string { return m.message }

// Stats returns the current stats text.
func (m Model) Stats() string { return m.stats }

// IsError reports whether the current message is an error.
func (m Model) IsError() bool { return m.isError }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) View() string {
	inner := m.width - panelStyle.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	msg := m.message
	if m.isError {
		msg = errorStyle.Render("! " + msg)
	}
	body := []string{titleStyle.Render("Info"), lipgloss.NewStyle().Width(inner).Render(msg)}
	if m.stats != "" {
		body = append(body, "", lipgloss.NewStyle().Width(inner).Render(m.stats))
	}

	style := panelStyle.Width(m.width - panelStyle.GetHorizontalBorderSize())
	if h := m.height - panelStyle.GetVerticalBorderSize(); h > 0 {
		style = style.Height(h)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

// Statistics is the totals block shown after loads and filters.
func Statistics(total, displayed, countries int) string {
	return fmt.Sprintf("Statistics:\nTotal airports: %d\nDisplayed: %d\nCountries: %d", total, displayed, countries)
}

// Legend is the route colour key.
func Legend() string {
	var b strings.Builder
	b.WriteString("Distance Legend:")
	for _, t := range []airports.Tier{airports.TierShort, airports.TierMedium, airports.TierLong} {
		b.WriteString("\n")
		b.WriteString(TierSwatch(t))
		b.WriteString(" ")
		b.WriteString(t.String())
	}
	return b.String()
}

// TierSwatch is a coloured bullet for a route tier.
func TierSwatch(t airports.Tier) string {
	return tierColors[t].Render("●")
}

var tierColors = map[airports.Tier]lipgloss.Style{
	airports.TierShort:  lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	airports.TierMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	airports.TierLong:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
}

// Hubs renders the top-hubs ranking.
func Hubs(rows []airports.HubCount) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Top %d Countries by Airport Count:", len(rows))
	for i, r := range rows {
		fmt.Fprintf(&b, "\n%d. %s: %d airports", i+1, r.Country, r.Count)
	}
	return b.String()
}

// Detail is the popup text for one airport.
func Detail(a airports.Airport) string {
	var b strings.Builder
	b.WriteString(a.Name)
	fmt.Fprintf(&b, "\n%s, %s", a.City, a.Country)
	fmt.Fprintf(&b, "\nIATA: %s", a.IATA)
	if a.MajorHub {
		b.WriteString("\n★ Major Hub")
	}
	b.WriteString(mutedStyle.Render("\nenter: view routes"))
	return b.String()
}
