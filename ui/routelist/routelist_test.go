package routelist

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airmap/airports"
)

func routes(n int) []airports.Route {
	out := make([]airports.Route, n)
	for i := range out {
		out[i] = airports.Route{Origin: "DUB", Destination: fmt.Sprintf("D%02d", i), DistanceKm: float64(500 * (i + 1))}
	}
	return out
}

func TestRouteList_Highlight(t *testing.T) {
	m := New(5)
	m.SetRoutes("DUB", routes(3), false)
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, HighlightMsg{Index: 1}, cmd())
}

func TestRouteList_Empty(t *testing.T) {
	m := New(5)
	m.Focus()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.Cursor())
	assert.Contains(t, m.View(), "Select an airport")
}

func TestRouteList_NoRoutesForOrigin(t *testing.T) {
	m := New(5)
	m.SetRoutes("ORK", nil, false)
	assert.Contains(t, m.View(), "No routes from ORK")
	assert.NotContains(t, m.View(), "Select an airport")

	m.Clear()
	assert.Contains(t, m.View(), "Select an airport")
}

func TestRouteList_CursorBounds(t *testing.T) {
	m := New(2)
	m.SetRoutes("DUB", routes(4), false)
	m.Focus()

	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 3, m.Cursor())
	assert.Equal(t, 2, m.offset, "window follows the cursor")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, 0, m.offset)
}

func TestRouteList_SetRoutesResetsCursor(t *testing.T) {
	m := New(5)
	m.SetRoutes("DUB", routes(4), false)
	m.Focus()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	require.Equal(t, 3, m.Cursor())

	m.SetRoutes("LHR", routes(1), false)
	assert.Equal(t, 0, m.Cursor())

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestRouteList_IgnoresKeysWhenBlurred(t *testing.T) {
	m := New(5)
	m.SetRoutes("DUB", routes(3), false)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestView(t *testing.T) {
	m := New(2)
	m.SetWidth(40)
	m.SetRoutes("DUB", routes(3), true)

	out := m.View()
	assert.Contains(t, out, "Routes from DUB (3)")
	assert.Contains(t, out, "DUB → D00")
	assert.NotContains(t, out, "D02", "rows past the window are not drawn")
	assert.Contains(t, out, "1-2 of 3")
	assert.Contains(t, out, "(limited)")
}
