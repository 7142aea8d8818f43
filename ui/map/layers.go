package mapview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"airmap/airports"
	"airmap/state"
)

const circleSegments = 72

// StateFunc picks the visual state for an airport marker.
type StateFunc func(iata string) state.MarkerState

// SetAirports replaces every airport marker. When the list is non-empty the
// view is fitted to it; an empty list leaves the view alone.
func (m *Model) SetAirports(list []airports.Airport, stateOf StateFunc) {
	m.markers = make([]Marker, 0, len(list))
	for _, a := range list {
		mk := Marker{IATA: a.IATA, Name: a.Name, Lat: a.Lat, Lon: a.Lon, Hub: a.MajorHub}
		if stateOf != nil {
			mk.State = stateOf(a.IATA)
		}
		m.markers = append(m.markers, mk)
	}
	m.invalidate()

	if b, ok := airports.BoundOf(list); ok {
		m.FitBounds(b)
	}
}

// Restyle recomputes marker states without touching the view.
func (m *Model) Restyle(stateOf StateFunc) {
	for i := range m.markers {
		if stateOf == nil {
			m.markers[i].State = state.MarkerDefault
			continue
		}
		m.markers[i].State = stateOf(m.markers[i].IATA)
	}
	m.invalidate()
}

// Markers returns the airport layer.
func (m Model) Markers() []Marker { return m.markers }

// SetRoutes replaces every route line. Any running highlight is dropped.
func (m *Model) SetRoutes(routes []airports.Route) {
	m.routes = append([]airports.Route(nil), routes...)
	m.routeGen++
	m.highlight = -1
	m.flash.Cancel()
}

// ClearRoutes removes every route line.
func (m *Model) ClearRoutes() { m.SetRoutes(nil) }

// Routes returns the route layer.
func (m Model) Routes() []airports.Route { return m.routes }

// Highlighted returns the index of the highlighted route, or -1.
func (m Model) Highlighted() int { return m.highlight }

// HighlightRoute emphasises route i until the flash timer fires and fits the
// view to it.
func (m *Model) HighlightRoute(i int) tea.Cmd {
	if i < 0 || i >= len(m.routes) {
		return nil
	}
	m.highlight = i
	m.flashGen = m.routeGen
	if len(m.routes[i].Path) > 0 {
		m.FitBounds(m.routes[i].Bound())
	}
	return m.flash.Schedule()
}

// SetResults replaces the spatial query results layer.
func (m *Model) SetResults(list []airports.Airport) {
	m.results = make([]Marker, 0, len(list))
	for _, a := range list {
		m.results = append(m.results, Marker{IATA: a.IATA, Name: a.Name, Lat: a.Lat, Lon: a.Lon, Hub: a.MajorHub})
	}
}

// Results returns the spatial query results layer.
func (m Model) Results() []Marker { return m.results }

// SetReference places the reference marker.
func (m *Model) SetReference(lat, lon float64) {
	m.ref = orb.Point{lon, lat}
	m.hasRef = true
}

// Reference returns the reference marker position, lon/lat order.
func (m Model) Reference() (orb.Point, bool) { return m.ref, m.hasRef }

// SetCircle draws a circle of radiusKm around the reference point and fits
// the view to it.
func (m *Model) SetCircle(lat, lon, radiusKm float64) {
	m.SetReference(lat, lon)
	m.radiusKm = radiusKm
	m.circle = make([]orb.Point, 0, circleSegments+1)
	for i := 0; i <= circleSegments; i++ {
		bearing := float64(i) * 360 / circleSegments
		plat, plon := airports.Destination(lat, lon, bearing, radiusKm)
		m.circle = append(m.circle, orb.Point{plon, plat})
	}
	m.FitBounds(orb.MultiPoint(m.circle).Bound())
}

// Circle returns the radius circle outline, empty when none is drawn.
func (m Model) Circle() []orb.Point { return m.circle }

// ClearSpatial removes the results layer, circle and reference marker.
func (m *Model) ClearSpatial() {
	m.results = nil
	m.circle = nil
	m.radiusKm = 0
	m.hasRef = false
	m.ref = orb.Point{}
}

// SetLayerVisibility shows or hides the airport and route layers without
// discarding them.
func (m *Model) SetLayerVisibility(showAirports, showRoutes bool) {
	m.showAirports = showAirports
	m.showRoutes = showRoutes
	m.invalidate()
}

// LayerVisibility reports which layers are shown.
func (m Model) LayerVisibility() (bool, bool) { return m.showAirports, m.showRoutes }
