// Package spatial holds the nearby/nearest query controls. Input is
// validated here so a bad radius or point never reaches the network.
package spatial

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	// ErrInvalidRadius is returned for a radius that is not a positive number.
	ErrInvalidRadius = errors.New("please enter a valid radius")
	// ErrInvalidCoordinates is returned for an empty or malformed "lat,lon".
	ErrInvalidCoordinates = errors.New(`please enter coordinates as "lat,lon"`)
	// ErrNoReference is returned when a query needs a point and none is set.
	ErrNoReference = errors.New("please select a point on the map first")
)

// ParseRadius parses a radius in kilometres.
func ParseRadius(s string) (float64, error) {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return 0, ErrInvalidRadius
	}
	return r, nil
}

// ParseCoordinates parses "lat,lon".
func ParseCoordinates(s string) (float64, float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, ErrInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, ErrInvalidCoordinates
	}
	return lat, lon, nil
}

// NearbyMsg asks for airports within RadiusKm of the point.
type NearbyMsg struct {
	Lat, Lon, RadiusKm float64
}

// NearestMsg asks for the airport nearest the point.
type NearestMsg struct {
	Lat, Lon float64
}

// PointMsg is sent when a point is typed in.
type PointMsg struct {
	Lat, Lon float64
}

// ClearMsg asks for the query artifacts to be removed.
type ClearMsg struct{}

// ClearAllMsg asks for query artifacts and routes to be removed.
type ClearAllMsg struct{}

// HubsMsg asks for the top hub countries.
type HubsMsg struct{}

// InvalidMsg reports input rejected before any request was made.
type InvalidMsg struct {
	Err error
}

type row int

const (
	rowRadius row = iota
	rowPoint
	rowNearby
	rowNearest
	rowClear
	rowClearAll
	rowHubs
	rowCount
)

var labels = map[row]string{
	rowNearby:   "[ Find nearby ]",
	rowNearest:  "[ Find nearest ]",
	rowClear:    "[ Clear ]",
	rowClearAll: "[ Clear all ]",
	rowHubs:     "[ Top hubs ]",
}

var (
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	focusStyle  = boxStyle.BorderForeground(lipgloss.Color("63"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("63"))
	buttonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("48"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model holds the radius and point inputs and the query buttons.
type Model struct {
	radius textinput.Model
	point  textinput.Model

	lat, lon float64
	hasPoint bool

	row     row
	focused bool
	width   int
}

// New creates the controls with a default radius in kilometres.
func New(defaultRadiusKm float64) Model {
	radius := textinput.New()
	radius.Prompt = "Radius km: "
	radius.CharLimit = 8
	radius.SetValue(strconv.FormatFloat(defaultRadiusKm, 'f', -1, 64))
	radius.Cursor.SetMode(cursor.CursorStatic)

	point := textinput.New()
	point.Prompt = "Point: "
	point.Placeholder = "lat,lon"
	point.CharLimit = 32
	point.Cursor.SetMode(cursor.CursorStatic)

	return Model{radius: radius, point: point, width: 32}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetReference records the point queries run against.
func (m *Model) SetReference(lat, lon float64) {
	m.lat, m.lon, m.hasPoint = lat, lon, true
}

// ClearReference forgets the reference point.
func (m *Model) ClearReference() {
	m.lat, m.lon, m.hasPoint = 0, 0, false
}

// Reference returns the point queries run against.
func (m Model) Reference() (float64, float64, bool) {
	return m.lat, m.lon, m.hasPoint
}

// Radius returns the raw radius text.
func (m Model) Radius() string { return m.radius.Value() }

// SetRadius replaces the radius text.
func (m *Model) SetRadius(s string) { m.radius.SetValue(s) }

func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.focusRow()
}

func (m *Model) Blur() {
	m.focused = false
	m.radius.Blur()
	m.point.Blur()
}

func (m Model) Focused() bool { return m.focused }

func (m *Model) SetWidth(w int) { m.width = w }

func (m *Model) focusRow() tea.Cmd {
	m.radius.Blur()
	m.point.Blur()
	switch m.row {
	case rowRadius:
		return m.radius.Focus()
	case rowPoint:
		return m.point.Focus()
	}
	return nil
}

// Nearby validates the inputs and builds the nearby request.
func (m Model) Nearby() tea.Msg {
	if !m.hasPoint {
		return InvalidMsg{Err: ErrNoReference}
	}
	r, err := ParseRadius(m.radius.Value())
	if err != nil {
		return InvalidMsg{Err: err}
	}
	return NearbyMsg{Lat: m.lat, Lon: m.lon, RadiusKm: r}
}

// Nearest validates the inputs and builds the nearest request.
func (m Model) Nearest() tea.Msg {
	if !m.hasPoint {
		return InvalidMsg{Err: ErrNoReference}
	}
	return NearestMsg{Lat: m.lat, Lon: m.lon}
}

func (m *Model) enterPoint() tea.Msg {
	lat, lon, err := ParseCoordinates(m.point.Value())
	if err != nil {
		return InvalidMsg{Err: err}
	}
	m.point.SetValue("")
	m.SetReference(lat, lon)
	return PointMsg{Lat: lat, Lon: lon}
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
		return m, m.focusRow()
	case "down":
		if m.row < rowCount-1 {
			m.row++
		}
		return m, m.focusRow()
	case "enter":
		var out tea.Msg
		switch m.row {
		case rowRadius, rowNearby:
			out = m.Nearby()
		case rowPoint:
			out = m.enterPoint()
		case rowNearest:
			out = m.Nearest()
		case rowClear:
			out = ClearMsg{}
		case rowClearAll:
			out = ClearAllMsg{}
		case rowHubs:
			out = HubsMsg{}
		}
		return m, func() tea.Msg { return out }
	}

	var cmd tea.Cmd
	switch m.row {
	case rowRadius:
		m.radius, cmd = m.radius.Update(msg)
	case rowPoint:
		m.point, cmd = m.point.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	style := boxStyle
	if m.focused {
		style = focusStyle
	}

	ref := mutedStyle.Render("No point selected (p on map)")
	if m.hasPoint {
		ref = fmt.Sprintf("Ref: %.4f, %.4f", m.lat, m.lon)
	}

	lines := []string{titleStyle.Render("Spatial"), ref, m.radius.View(), m.point.View()}
	for r := rowNearby; r < rowCount; r++ {
		line := buttonStyle.Render(labels[r])
		if m.focused && r == m.row {
			line = cursorStyle.Render(labels[r])
		}
		lines = append(lines, line)
	}
	return style.Width(m.width - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}
