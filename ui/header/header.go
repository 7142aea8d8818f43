package header

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const title = "airmap"

// Model holds the header's state
type Model struct {
	width   int
	style   lipgloss.Style
	spinner spinner.Model
	busy    int
	status  string
}

// New creates a new header model
func New() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("63"))

	return Model{
		width:   80, // default
		spinner: s,
		style: lipgloss.NewStyle().
			Padding(0, 1).                     // Left/Right padding
			Background(lipgloss.Color("63")).  // A nice blue
			Foreground(lipgloss.Color("255")), // White text
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetBusy records how many requests are outstanding. The returned command
// starts the spinner when the header goes from idle to busy.
func (m *Model) SetBusy(n int) tea.Cmd {
	if n < 0 {
		n = 0
	}
	start := m.busy == 0 && n > 0
	m.busy = n
	if start {
		return m.spinner.Tick
	}
	return nil
}

// Busy returns the number of outstanding requests.
func (m Model) Busy() int { return m.busy }

// SetStatus sets the text shown on the right of the title.
func (m *Model) SetStatus(s string) { m.status = s }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width // Store the width
	case spinner.TickMsg:
		// an idle header lets the tick chain die out
		if m.busy == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	left := title
	if m.busy > 0 {
		left += " " + m.spinner.View() + m.style.UnsetPadding().Render(" loading...")
	}

	inner := m.width - m.style.GetHorizontalPadding()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(m.status)
	if gap < 1 {
		return m.style.Width(m.width).Render(left)
	}
	return m.style.Width(m.width).Render(left + lipgloss.NewStyle().Background(lipgloss.Color("63")).Width(gap).Render("") + m.status)
}
