// Package state holds the client-side application state: the airport cache,
// the current filter, the selection and its routes, and the transient
// spatial query results. All mutation happens on the UI loop.
package state

import (
	"github.com/paulmach/orb"

	"airmap/airports"
)

// MarkerState is the visual state of one airport marker.
type MarkerState int

const (
	MarkerDefault MarkerState = iota
	MarkerSelected
	MarkerConnected
	MarkerDimmed
)

func (s MarkerState) String() string {
	switch s {
	case MarkerSelected:
		return "selected"
	case MarkerConnected:
		return "connected"
	case MarkerDimmed:
		return "dimmed"
	default:
		return "default"
	}
}

// State is owned by the root model and handed to components that need it.
type State struct {
	maxRoutes int

	all       []airports.Airport
	index     map[string]airports.Airport
	countries []string

	filter   airports.Filter
	filtered []airports.Airport

	selected      string
	routes        []airports.Route
	routeTotal    int
	loadingRoutes bool
	loadingOrigin string
	connected     map[string]struct{}

	ref      orb.Point
	hasRef   bool
	nearby   []airports.Airport
	radiusKm float64
}

// New returns an empty state that displays at most maxRoutes routes.
func New(maxRoutes int) *State {
	return &State{
		maxRoutes: maxRoutes,
		index:     map[string]airports.Airport{},
	}
}

// MaxRoutes returns the display cap for routes.
func (s *State) MaxRoutes() int { return s.maxRoutes }

// RequestLimit is the route limit to ask the backend for. It is one past the
// display cap so a backend that honors the limit still reveals truncation.
func (s *State) RequestLimit() int {
	if s.maxRoutes <= 0 {
		return 0
	}
	return s.maxRoutes + 1
}

// SetAirports replaces the airport cache and resets the filter.
func (s *State) SetAirports(list []airports.Airport) {
	s.all = list
	s.index = airports.Index(list)
	s.countries = airports.Countries(list)
	s.filter = airports.Filter{}
	s.filtered = clone(list)
}

// All returns every cached airport.
func (s *State) All() []airports.Airport { return s.all }

// Filtered returns the airports passing the current filter.
func (s *State) Filtered() []airports.Airport { return s.filtered }

// Countries returns the sorted list of countries in the cache.
func (s *State) Countries() []string { return s.countries }

// Filter returns the current filter.
func (s *State) Filter() airports.Filter { return s.filter }

// Index returns the IATA lookup table. Callers must not modify it.
func (s *State) Index() map[string]airports.Airport { return s.index }

// Lookup finds a cached airport by IATA code.
func (s *State) Lookup(iata string) (airports.Airport, bool) {
	a, ok := s.index[iata]
	return a, ok
}

// ApplyFilter recomputes the filtered set from scratch.
func (s *State) ApplyFilter(f airports.Filter) []airports.Airport {
	s.filter = f
	s.filtered = airports.ApplyFilter(s.all, f)
	return s.filtered
}

// ResetFilter restores the full airport list.
func (s *State) ResetFilter() []airports.Airport {
	s.filter = airports.Filter{}
	s.filtered = clone(s.all)
	return s.filtered
}

// BeginRouteLoad claims the route loader for origin. It returns false while
// another route load is outstanding.
func (s *State) BeginRouteLoad(origin string) bool {
	if s.loadingRoutes {
		return false
	}
	s.loadingRoutes = true
	s.loadingOrigin = origin
	return true
}

// RouteLoading reports whether a route load is outstanding.
func (s *State) RouteLoading() bool { return s.loadingRoutes }

// FinishRouteLoad stores the routes for origin, replacing any previous set
// and selecting origin. It returns the routes kept after applying the
// display cap and whether the cap cut any off.
func (s *State) FinishRouteLoad(origin string, routes []airports.Route) ([]airports.Route, bool) {
	s.loadingRoutes = false
	s.loadingOrigin = ""

	s.routeTotal = len(routes)
	truncated := false
	if s.maxRoutes > 0 && len(routes) > s.maxRoutes {
		routes = routes[:s.maxRoutes]
		truncated = true
	}

	s.selected = origin
	s.routes = append([]airports.Route(nil), routes...)
	s.connected = make(map[string]struct{}, len(s.routes))
	for _, r := range s.routes {
		s.connected[r.Destination] = struct{}{}
	}
	return s.routes, truncated
}

// FailRouteLoad releases the route loader after an error. The previous route
// set is left as it was.
func (s *State) FailRouteLoad() {
	s.loadingRoutes = false
	s.loadingOrigin = ""
}

// Routes returns the displayed route set.
func (s *State) Routes() []airports.Route { return s.routes }

// Truncated reports whether the last route load hit the display cap.
func (s *State) Truncated() bool {
	return s.maxRoutes > 0 && s.routeTotal > s.maxRoutes
}

// Selected returns the selected airport, if any.
func (s *State) Selected() (airports.Airport, bool) {
	if s.selected == "" {
		return airports.Airport{}, false
	}
	a, ok := s.index[s.selected]
	if !ok {
		a = airports.Airport{IATA: s.selected, Name: s.selected}
	}
	return a, true
}

// ClearRoutes drops the route set and the selection. Spatial query results
// are not touched.
func (s *State) ClearRoutes() {
	s.routes = nil
	s.routeTotal = 0
	s.selected = ""
	s.connected = nil
}

// MarkerState returns how the marker for iata should be drawn. With a
// selection and a non-empty route set the origin is selected, destinations
// in the set are connected and every other marker is dimmed.
func (s *State) MarkerState(iata string) MarkerState {
	if s.selected == "" {
		return MarkerDefault
	}
	if iata == s.selected {
		return MarkerSelected
	}
	if len(s.routes) == 0 {
		return MarkerDefault
	}
	if _, ok := s.connected[iata]; ok {
		return MarkerConnected
	}
	return MarkerDimmed
}

// SetReference sets the point spatial queries are made from.
func (s *State) SetReference(lat, lon float64) {
	s.ref = orb.Point{lon, lat}
	s.hasRef = true
}

// Reference returns the query point in [lon, lat] order.
func (s *State) Reference() (orb.Point, bool) { return s.ref, s.hasRef }

// SetNearby stores the result of a radius query.
func (s *State) SetNearby(lat, lon, radiusKm float64, list []airports.Airport) {
	s.SetReference(lat, lon)
	s.radiusKm = radiusKm
	s.nearby = clone(list)
}

// SetNearest stores the result of a nearest query. The radius circle from a
// previous nearby query is dropped.
func (s *State) SetNearest(lat, lon float64, a airports.Airport) {
	s.SetReference(lat, lon)
	s.radiusKm = 0
	s.nearby = []airports.Airport{a}
}

// Nearby returns the spatial query results.
func (s *State) Nearby() []airports.Airport { return s.nearby }

// RadiusKm returns the radius of the last nearby query, 0 if none.
func (s *State) RadiusKm() float64 { return s.radiusKm }

// ClearSpatial drops the query results, the radius circle and the reference
// point. Routes and the airport layer are not touched.
func (s *State) ClearSpatial() {
	s.ref = orb.Point{}
	s.hasRef = false
	s.nearby = nil
	s.radiusKm = 0
}

func clone(list []airports.Airport) []airports.Airport {
	return append([]airports.Airport(nil), list...)
}
