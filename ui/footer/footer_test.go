package footer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestView(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 200, Height: 1})
	m.SetZoom(5)
	m.SetCounts(3, 2)

	out := m.View()
	assert.Contains(t, out, "Zoom: 5.0")
	assert.Contains(t, out, "Airports: 3")
	assert.Contains(t, out, "Routes: 2")
	assert.Contains(t, out, "Pan:")

	m.SetFocus("search")
	assert.Contains(t, m.View(), "Focus: search")
	assert.Contains(t, m.View(), "Back: esc")
}

func TestView_Narrow(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 1})
	assert.NotPanics(t, func() { _ = m.View() })
}
