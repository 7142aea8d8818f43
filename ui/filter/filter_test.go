package filter

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airmap/airports"
)

func press(m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

var (
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	right = tea.KeyMsg{Type: tea.KeyRight}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace}
)

func newFilter() Model {
	m := New()
	m.SetCountries([]string{"France", "Ireland", "United Kingdom"})
	m.Focus()
	return m
}

func TestFilter_Default(t *testing.T) {
	m := newFilter()
	assert.True(t, m.Filter().IsZero())
}

func TestFilter_CycleCountry(t *testing.T) {
	m := newFilter()

	m, _ = press(m, right, right)
	assert.Equal(t, "Ireland", m.Filter().Country)

	m, _ = press(m, left, left, left)
	assert.Equal(t, "United Kingdom", m.Filter().Country, "cycling wraps around")

	m, _ = press(m, right)
	assert.Equal(t, "", m.Filter().Country, "All means no country filter")
}

func TestFilter_Apply(t *testing.T) {
	m := newFilter()
	m, _ = press(m, right, down, space, down)

	m, cmd := press(m, enter)
	require.NotNil(t, cmd)
	assert.Equal(t, AppliedMsg{Filter: airports.Filter{Country: "France", MajorHubsOnly: true}}, cmd())

	// applying twice gives the same filter
	_, cmd = press(m, enter)
	assert.Equal(t, AppliedMsg{Filter: airports.Filter{Country: "France", MajorHubsOnly: true}}, cmd())
}

func TestFilter_Reset(t *testing.T) {
	m := newFilter()
	m, _ = press(m, right, down, enter, down, down)

	m, cmd := press(m, enter)
	require.NotNil(t, cmd)
	assert.Equal(t, ResetMsg{}, cmd())
	assert.True(t, m.Filter().IsZero())
}

func TestFilter_Shortcuts(t *testing.T) {
	m := newFilter()
	m, _ = press(m, right)

	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.Equal(t, AppliedMsg{Filter: airports.Filter{Country: "France"}}, cmd())

	m, cmd = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}})
	assert.Equal(t, ResetMsg{}, cmd())
	assert.True(t, m.Filter().IsZero())
}

func TestFilter_RowBounds(t *testing.T) {
	m := newFilter()
	m, _ = press(m, up, up)
	m, _ = press(m, right)
	assert.Equal(t, "France", m.Filter().Country, "stays on the country row")

	m, _ = press(m, down, down, down, down, down)
	_, cmd := press(m, enter)
	assert.Equal(t, ResetMsg{}, cmd(), "stops on the last row")
}

func TestFilter_SetCountriesKeepsChoice(t *testing.T) {
	m := newFilter()
	m, _ = press(m, right, right)
	require.Equal(t, "Ireland", m.Filter().Country)

	m.SetCountries([]string{"Germany", "Ireland"})
	assert.Equal(t, "Ireland", m.Filter().Country)

	m.SetCountries([]string{"Germany"})
	assert.Equal(t, "", m.Filter().Country)
}

func TestFilter_IgnoresKeysWhenBlurred(t *testing.T) {
	m := newFilter()
	m.Blur()
	m, cmd := press(m, right, enter)
	assert.Nil(t, cmd)
	assert.True(t, m.Filter().IsZero())
}

func TestView(t *testing.T) {
	m := newFilter()
	m, _ = press(m, right, down, space)
	out := m.View()
	assert.Contains(t, out, "France")
	assert.Contains(t, out, "[x] Major hubs only")
	assert.Contains(t, out, "Apply")
}
