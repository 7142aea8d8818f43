package search

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airmap/airports"
	"airmap/sched"
)

func sample() []airports.Airport {
	return []airports.Airport{
		{IATA: "DUB", Name: "Dublin Airport", City: "Dublin", Country: "Ireland"},
		{IATA: "ORK", Name: "Cork Airport", City: "Cork", Country: "Ireland"},
		{IATA: "LHR", Name: "Heathrow", City: "London", Country: "United Kingdom"},
		{IATA: "JFK", Name: "John F Kennedy", City: "New York", Country: "United States"},
	}
}

func newSearch(t *testing.T) Model {
	t.Helper()
	m := New(time.Millisecond, 10)
	m.SetAirports(sample())
	m.Focus()
	require.True(t, m.Focused())
	return m
}

func typeText(m Model, s string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, r := range s {
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m, cmd
}

func fire(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(sched.FiredMsg)
	require.True(t, ok)
	m, _ = m.Update(msg)
	return m
}

func TestSearch_Debounced(t *testing.T) {
	m := newSearch(t)

	m, cmd := typeText(m, "irel")
	assert.Nil(t, m.Results(), "nothing is shown before the debounce fires")

	m = fire(t, m, cmd)
	require.True(t, m.Shown())
	codes := []string{}
	for _, a := range m.Results() {
		codes = append(codes, a.IATA)
	}
	assert.ElementsMatch(t, []string{"DUB", "ORK"}, codes)
}

func TestSearch_TypingAgainMakesOldTimerStale(t *testing.T) {
	m := newSearch(t)

	m, first := typeText(m, "du")
	m, second := typeText(m, "b")

	m = fire(t, m, first)
	assert.False(t, m.Shown(), "superseded timer is ignored")

	m = fire(t, m, second)
	require.Len(t, m.Results(), 1)
	assert.Equal(t, "DUB", m.Results()[0].IATA)
}

func TestSearch_ShortQueryHidesResults(t *testing.T) {
	m := newSearch(t)
	m, cmd := typeText(m, "du")
	m = fire(t, m, cmd)
	require.True(t, m.Shown())

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Nil(t, cmd, "a short query schedules nothing")
	assert.False(t, m.Shown())
	assert.Equal(t, "d", m.Query())
}

func TestSearch_ShortQueryCancelsPending(t *testing.T) {
	m := newSearch(t)
	m, cmd := typeText(m, "du")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	m = fire(t, m, cmd)
	assert.False(t, m.Shown())
}

func TestSearch_NoMatches(t *testing.T) {
	m := newSearch(t)
	m, cmd := typeText(m, "zzz")
	m = fire(t, m, cmd)

	assert.True(t, m.Shown())
	assert.Empty(t, m.Results())
	assert.Contains(t, m.View(), "No airports found")
}

func TestSearch_Limit(t *testing.T) {
	var many []airports.Airport
	for i := 0; i < 25; i++ {
		many = append(many, airports.Airport{IATA: string(rune('A'+i)) + "XX", Name: "Airport", Country: "Nowhere"})
	}
	m := New(time.Millisecond, 10)
	m.SetAirports(many)
	m.Focus()

	m, cmd := typeText(m, "airport")
	m = fire(t, m, cmd)
	assert.Len(t, m.Results(), 10)
}

func TestSearch_ChooseResult(t *testing.T) {
	m := newSearch(t)
	m, cmd := typeText(m, "ireland")
	m = fire(t, m, cmd)
	require.Len(t, m.Results(), 2)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SelectedMsg)
	require.True(t, ok)
	assert.Equal(t, m.all[1].IATA, msg.Airport.IATA)
	assert.Empty(t, m.Query(), "input is cleared")
	assert.False(t, m.Shown())
}

func TestSearch_EnterWithoutResults(t *testing.T) {
	m := newSearch(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestSearch_DismissOnEscAndBlur(t *testing.T) {
	m := newSearch(t)
	m, cmd := typeText(m, "du")
	m = fire(t, m, cmd)
	require.True(t, m.Shown())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Shown())

	m, cmd = typeText(m, "b")
	m.Blur()
	m = fire(t, m, cmd)
	assert.False(t, m.Shown(), "blurring drops the pending search")
	assert.False(t, m.Focused())
}

func TestSearch_IgnoresKeysWhenBlurred(t *testing.T) {
	m := New(time.Millisecond, 10)
	m, cmd := typeText(m, "dub")
	assert.Nil(t, cmd)
	assert.Empty(t, m.Query())
}

func TestView(t *testing.T) {
	m := newSearch(t)
	m.SetWidth(30)
	m, cmd := typeText(m, "heathrow")
	m = fire(t, m, cmd)

	out := m.View()
	assert.Contains(t, out, "Search")
	assert.Contains(t, out, "LHR Heathrow")
	assert.Contains(t, out, "London, United Kingdom")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(stripANSI(line))), 30)
	}
}

// stripANSI drops SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	esc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			esc = true
		case esc && r == 'm':
			esc = false
		case !esc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
