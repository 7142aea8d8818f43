package mapview

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"airmap/airports"
	"airmap/sched"
	"airmap/state"
)

// Constants for Panning and Zooming
const (
	panFactor  = 0.1
	zoomFactor = 1.2

	// charAspect assumes a terminal cell is about twice as tall as wide.
	charAspect = 2.0

	// zoomBaseSpan is the view width in degrees at zoom level 0.
	zoomBaseSpan = 360.0 * 4

	// pickRadius is how many cells away a marker can be and still be hit.
	pickRadius = 2

	// maxZoom bounds how far the view can zoom in.
	maxZoom = 18

	// fitMaxZoom is the closest FitBounds will zoom.
	fitMaxZoom = 8

	flashTaskID = "route-flash"
)

// MarkerActivatedMsg is sent when the user activates an airport marker.
type MarkerActivatedMsg struct {
	IATA string
}

// PointPickedMsg is sent when the user picks an empty map point.
type PointPickedMsg struct {
	Lat, Lon float64
}

// Marker is one drawn airport.
type Marker struct {
	IATA  string
	Name  string
	Lat   float64
	Lon   float64
	Hub   bool
	State state.MarkerState
}

// Model holds the map's state
type Model struct {
	width  int
	height int

	mapPolygons    []*shp.Polygon
	originalBounds shp.Box
	viewBounds     shp.Box

	markers      []Marker
	showAirports bool

	routes     []airports.Route
	routeGen   uint64
	highlight  int
	flashGen   uint64
	flash      sched.Task
	showRoutes bool

	results  []Marker
	ref      orb.Point
	hasRef   bool
	circle   []orb.Point
	radiusKm float64

	cursorX, cursorY int

	cache *gridCache
}

// New creates a map model. An empty shapePath gives a map without a basemap.
// When the basemap fails to load the returned model is still usable, just
// without a basemap.
func New(shapePath string, highlightFor time.Duration) (Model, error) {
	m := Model{
		originalBounds: worldBounds,
		viewBounds:     worldBounds,
		width:          80,
		height:         23,
		highlight:      -1,
		flash:          sched.New(flashTaskID, highlightFor),
		showAirports:   true,
		showRoutes:     true,
		cache:          &gridCache{},
	}

	var err error
	if shapePath != "" {
		m.mapPolygons, err = loadBasemap(shapePath)
	}
	m.centerCursor()
	return m, err
}

func (m Model) Init() tea.Cmd {
	return nil
}

// viewSize is the drawable area inside the border.
func (m Model) viewSize() (int, int) {
	w, h := m.width-2, m.height-2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// geoHeightFor returns the latitude span that matches width degrees of
// longitude at the current cell aspect.
func (m Model) geoHeightFor(width float64) float64 {
	vw, vh := m.viewSize()
	return width * charAspect * float64(vh) / float64(vw)
}

func (m *Model) setCenter(lon, lat, width float64) {
	maxWidth := m.originalBounds.MaxX - m.originalBounds.MinX
	if width > maxWidth {
		width = maxWidth
	}
	if minWidth := SpanForZoom(maxZoom); width < minWidth {
		width = minWidth
	}
	height := m.geoHeightFor(width)

	m.viewBounds = shp.Box{
		MinX: lon - width/2,
		MaxX: lon + width/2,
		MinY: lat - height/2,
		MaxY: lat + height/2,
	}
	m.invalidate()
}

func (m *Model) invalidate() {
	if m.cache != nil {
		m.cache.valid = false
	}
}

// SpanForZoom returns the view width in degrees for a zoom level.
func SpanForZoom(zoom float64) float64 {
	return zoomBaseSpan / math.Pow(2, zoom)
}

// SetView centres the map on lat/lon at the given zoom level.
func (m *Model) SetView(lat, lon, zoom float64) {
	m.setCenter(lon, lat, SpanForZoom(zoom))
	m.centerCursor()
}

// FitBounds fits the view to b with a 10% margin, never zooming in past
// fitMaxZoom so a single point keeps some context around it.
func (m *Model) FitBounds(b orb.Bound) {
	width := b.Max.Lon() - b.Min.Lon()
	height := b.Max.Lat() - b.Min.Lat()

	vw, vh := m.viewSize()
	if needed := height * float64(vw) / (charAspect * float64(vh)); needed > width {
		width = needed
	}
	width *= 1.1
	if minSpan := SpanForZoom(fitMaxZoom); width < minSpan {
		width = minSpan
	}

	c := b.Center()
	m.setCenter(c.Lon(), c.Lat(), width)
	m.centerCursor()
}

// Zoom returns the current zoom level.
func (m Model) Zoom() float64 {
	width := m.viewBounds.MaxX - m.viewBounds.MinX
	if width <= 0 {
		return 0
	}
	return math.Log2(zoomBaseSpan / width)
}

// Center returns the view centre as lat, lon.
func (m Model) Center() (float64, float64) {
	return (m.viewBounds.MinY + m.viewBounds.MaxY) / 2, (m.viewBounds.MinX + m.viewBounds.MaxX) / 2
}

// zoom zooms the viewBounds in or out, centered on the current view
func (m *Model) zoom(factor float64) {
	lat, lon := m.Center()
	m.setCenter(lon, lat, (m.viewBounds.MaxX-m.viewBounds.MinX)*factor)
}

// pan moves the viewBounds
func (m *Model) pan(dx, dy float64) {
	width := m.viewBounds.MaxX - m.viewBounds.MinX
	height := m.viewBounds.MaxY - m.viewBounds.MinY

	panX := width * dx
	panY := height * dy

	m.viewBounds.MinX += panX
	m.viewBounds.MaxX += panX
	m.viewBounds.MinY += panY
	m.viewBounds.MaxY += panY
	m.invalidate()
}

func (m *Model) reset() {
	m.viewBounds = m.originalBounds
	lat, lon := m.Center()
	m.setCenter(lon, lat, m.originalBounds.MaxX-m.originalBounds.MinX)
	m.centerCursor()
}

func (m *Model) centerCursor() {
	vw, vh := m.viewSize()
	m.cursorX, m.cursorY = vw/2, vh/2
}

func (m *Model) moveCursor(dx, dy int) {
	vw, vh := m.viewSize()
	m.cursorX = clamp(m.cursorX+dx, 0, vw-1)
	m.cursorY = clamp(m.cursorY+dy, 0, vh-1)
}

// Cursor returns the cursor position in lat, lon.
func (m Model) Cursor() (float64, float64) {
	return m.Unproject(m.cursorX, m.cursorY)
}

// projectF converts lon/lat to fractional viewport cell coordinates.
func (m Model) projectF(lon, lat float64) (float64, float64) {
	vw, vh := m.viewSize()
	bw := m.viewBounds.MaxX - m.viewBounds.MinX
	bh := m.viewBounds.MaxY - m.viewBounds.MinY
	if bw <= 0 || bh <= 0 {
		return -1, -1
	}
	return (lon - m.viewBounds.MinX) / bw * float64(vw), (m.viewBounds.MaxY - lat) / bh * float64(vh)
}

// project converts lon/lat to viewport cell coordinates
func (m Model) project(lon, lat float64) (int, int, bool) {
	vw, vh := m.viewSize()
	fx, fy := m.projectF(lon, lat)
	x, y := int(math.Floor(fx)), int(math.Floor(fy))
	return x, y, x >= 0 && x < vw && y >= 0 && y < vh
}

// Project returns the viewport cell for lat/lon and whether it is on screen.
func (m Model) Project(lat, lon float64) (int, int, bool) {
	return m.project(lon, lat)
}

// Unproject converts a viewport cell to the lat/lon at its centre.
func (m Model) Unproject(x, y int) (float64, float64) {
	vw, vh := m.viewSize()
	bw := m.viewBounds.MaxX - m.viewBounds.MinX
	bh := m.viewBounds.MaxY - m.viewBounds.MinY

	lon := m.viewBounds.MinX + (float64(x)+0.5)/float64(vw)*bw
	lat := m.viewBounds.MaxY - (float64(y)+0.5)/float64(vh)*bh
	return lat, lon
}

// MarkerAt returns the visible marker closest to cell (x, y), searching
// results before airports.
func (m Model) MarkerAt(x, y int) (Marker, bool) {
	var (
		best  Marker
		found bool
		bestD = math.MaxInt
	)
	check := func(list []Marker) {
		for _, mk := range list {
			mx, my, ok := m.project(mk.Lon, mk.Lat)
			if !ok {
				continue
			}
			dx, dy := abs(mx-x), abs(my-y)
			if dx > pickRadius || dy > pickRadius {
				continue
			}
			if d := dx*dx + dy*dy; d < bestD {
				best, bestD, found = mk, d, true
			}
		}
	}
	check(m.results)
	if m.showAirports {
		check(m.markers)
	}
	return best, found
}

// activate fires on the cell under the cursor: a marker loads its routes,
// empty ground becomes the spatial reference point.
func (m Model) activate() tea.Cmd {
	if mk, ok := m.MarkerAt(m.cursorX, m.cursorY); ok {
		iata := mk.IATA
		return func() tea.Msg { return MarkerActivatedMsg{IATA: iata} }
	}
	return m.pick()
}

func (m Model) pick() tea.Cmd {
	lat, lon := m.Cursor()
	return func() tea.Msg { return PointPickedMsg{Lat: lat, Lon: lon} }
}

// Update handles key, mouse, window and timer messages. Mouse coordinates
// must already be relative to the map's top-left corner.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lat, lon := m.Center()
		m.setCenter(lon, lat, m.viewBounds.MaxX-m.viewBounds.MinX)
		m.moveCursor(0, 0)

	case sched.FiredMsg:
		if m.flash.Fired(msg) && m.flashGen == m.routeGen {
			m.highlight = -1
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			vw, vh := m.viewSize()
			x, y := msg.X-1, msg.Y-1
			if x < 0 || y < 0 || x >= vw || y >= vh {
				break
			}
			m.cursorX, m.cursorY = x, y
			return m, m.activate()
		case tea.MouseButtonWheelUp:
			m.zoom(1 / zoomFactor)
		case tea.MouseButtonWheelDown:
			m.zoom(zoomFactor)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "k":
			m.pan(0, panFactor)
		case "l":
			m.pan(0, -panFactor)
		case "j":
			m.pan(-panFactor, 0)
		case ";":
			m.pan(panFactor, 0)
		case "K", "+", "=":
			m.zoom(1 / zoomFactor)
		case "L", "-":
			m.zoom(zoomFactor)
		case "r":
			m.reset()
		case "up":
			m.moveCursor(0, -1)
		case "down":
			m.moveCursor(0, 1)
		case "left":
			m.moveCursor(-1, 0)
		case "right":
			m.moveCursor(1, 0)
		case "enter":
			return m, m.activate()
		case "p":
			return m, m.pick()
		}
	}

	return m, nil
}

func (m Model) View() string {
	mapStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))

	vw, vh := m.viewSize()
	return mapStyle.Render(m.renderViewport(vw, vh))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
