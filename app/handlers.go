package app

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"airmap/airports"
	"airmap/api"
	"airmap/ui/filter"
	"airmap/ui/info"
	"airmap/ui/search"
)

// maxListed caps how many airports a spatial result lists in the stats box.
const maxListed = 10

var failText = map[api.Op]string{
	api.OpAirports: "Failed to load airports",
	api.OpRoutes:   "Failed to load routes",
	api.OpNearby:   "Failed to find nearby airports",
	api.OpNearest:  "Failed to find nearest airport",
	api.OpHubs:     "Failed to load top hubs",
}

func (m *Model) handleError(msg api.ErrorMsg) {
	if msg.Op == api.OpRoutes {
		m.st.FailRouteLoad()
	}

	fields := map[string]any{"op": string(msg.Op)}
	var se *api.StatusError
	if errors.As(msg.Err, &se) {
		fields["status"] = se.Code
	}
	m.log.WithFields(fields).Error(msg.Err, "request failed")

	m.infoModel.Error("%s: %v", failText[msg.Op], msg.Err)
}

func (m *Model) handleAirports(msg api.AirportsLoadedMsg) {
	m.st.SetAirports(msg.Airports)
	m.log.Info("airports loaded", "count", len(msg.Airports))

	m.mapModel.SetAirports(m.st.Filtered(), m.st.MarkerState)
	m.searchModel.SetAirports(m.st.All())
	m.filterModel.SetCountries(m.st.Countries())
	m.filterModel.Reset()

	m.infoModel.Set("Loaded %d airports. Select an airport to view its routes.", len(msg.Airports))
	m.showStatistics()
}

func (m *Model) showStatistics() {
	m.infoModel.SetStats(info.Statistics(len(m.st.All()), len(m.st.Filtered()), len(m.st.Countries())))
}

// loadRoutes starts a route load for iata unless one is already running.
func (m *Model) loadRoutes(iata string) tea.Cmd {
	if !m.st.BeginRouteLoad(iata) {
		m.log.Debug("route load already running", "origin", iata)
		return nil
	}
	name := iata
	if a, ok := m.st.Lookup(iata); ok {
		name = a.Name
	}
	m.infoModel.Set("Loading routes for %s...", name)
	return m.begin(m.cmds.LoadRoutes(iata, m.st.RequestLimit(), m.st.Index()))
}

func (m *Model) handleRoutes(msg api.RoutesLoadedMsg) {
	routes, truncated := m.st.FinishRouteLoad(msg.Origin, msg.Routes)
	m.log.Info("routes loaded", "origin", msg.Origin, "received", len(msg.Routes), "shown", len(routes))

	m.mapModel.SetRoutes(routes)
	m.mapModel.Restyle(m.st.MarkerState)
	m.routesModel.SetRoutes(msg.Origin, routes, truncated)

	a, _ := m.st.Selected()
	if len(routes) == 0 {
		m.infoModel.Set("%s has no routes in the database.", a.Name)
		return
	}

	text := fmt.Sprintf("%s\nShowing %d route(s)", a.Name, len(routes))
	if truncated {
		text += fmt.Sprintf(" (limited to %d)", m.st.MaxRoutes())
	}
	m.infoModel.Set("%s", text)
	m.infoModel.SetStats(info.Legend())
}

func (m *Model) highlightRoute(i int) tea.Cmd {
	routes := m.st.Routes()
	if i < 0 || i >= len(routes) {
		return nil
	}
	r := routes[i]

	airline := r.Airline
	if airline == "" {
		airline = "N/A"
	}
	m.infoModel.Set("%s → %s\nDistance: %.0f km\nAirline: %s", r.Origin, r.Destination, r.DistanceKm, airline)
	m.infoModel.SetStats(info.Legend())
	return m.mapModel.HighlightRoute(i)
}

// clearRoutes drops the route set and restores the marker styles. Spatial
// query artifacts stay.
func (m *Model) clearRoutes() {
	m.st.ClearRoutes()
	m.mapModel.ClearRoutes()
	m.mapModel.Restyle(m.st.MarkerState)
	m.routesModel.Clear()
}

// clearSpatial drops the results layer, circle and reference marker. Routes
// stay.
func (m *Model) clearSpatial() {
	m.st.ClearSpatial()
	m.mapModel.ClearSpatial()
	m.spatialModel.ClearReference()
}

func (m *Model) setReference(lat, lon float64) {
	m.st.SetReference(lat, lon)
	m.mapModel.SetReference(lat, lon)
	m.spatialModel.SetReference(lat, lon)
	m.infoModel.Set("Reference point set to (%.4f, %.4f). Press n for nearby or N for nearest.", lat, lon)
}

func (m *Model) handleNearby(msg api.NearbyLoadedMsg) {
	m.st.SetNearby(msg.Lat, msg.Lon, msg.RadiusKm, msg.Airports)
	m.mapModel.ClearSpatial()
	m.mapModel.SetReference(msg.Lat, msg.Lon)
	m.spatialModel.SetReference(msg.Lat, msg.Lon)
	m.log.Info("nearby query", "lat", msg.Lat, "lon", msg.Lon, "radius_km", msg.RadiusKm, "found", len(msg.Airports))

	if len(msg.Airports) == 0 {
		m.infoModel.Set("0 found: no airports within %g km of (%.4f, %.4f)", msg.RadiusKm, msg.Lat, msg.Lon)
		return
	}

	m.mapModel.SetResults(msg.Airports)
	m.mapModel.SetCircle(msg.Lat, msg.Lon, msg.RadiusKm)
	m.infoModel.Set("Found %d airport(s) within %g km of (%.4f, %.4f)", len(msg.Airports), msg.RadiusKm, msg.Lat, msg.Lon)
	m.infoModel.SetStats(listAirports(msg.Airports, msg.Lat, msg.Lon))
}

func (m *Model) handleNearest(msg api.NearestLoadedMsg) {
	if !msg.Found {
		m.infoModel.Set("No airport found near (%.4f, %.4f)", msg.Lat, msg.Lon)
		return
	}
	a := msg.Airport
	m.st.SetNearest(msg.Lat, msg.Lon, a)
	m.mapModel.ClearSpatial()
	m.mapModel.SetResults([]airports.Airport{a})
	m.mapModel.SetReference(msg.Lat, msg.Lon)
	m.mapModel.SetView(a.Lat, a.Lon, m.view.FocusZoom)
	m.spatialModel.SetReference(msg.Lat, msg.Lon)

	m.infoModel.Set("Nearest Airport:\n%s\n%s, %s\nDistance: %.1f km", a.Name, a.City, a.Country, distanceFrom(a, msg.Lat, msg.Lon))
}

func (m *Model) handleHubs(msg api.HubsLoadedMsg) {
	if len(msg.Hubs) == 0 {
		m.infoModel.SetStats("No hub data available.")
		return
	}
	m.infoModel.SetStats(info.Hubs(msg.Hubs))
}

func (m *Model) handleSearchSelected(msg search.SelectedMsg) tea.Cmd {
	a := msg.Airport
	m.mapModel.SetView(a.Lat, a.Lon, m.view.FocusZoom)
	m.infoModel.Set("%s", info.Detail(a))
	return m.setFocus(focusMap)
}

func (m *Model) applyFilter(msg filter.AppliedMsg) {
	list := m.st.ApplyFilter(msg.Filter)
	m.mapModel.SetAirports(list, m.st.MarkerState)
	m.log.Debug("filter applied", "country", msg.Filter.Country, "hubs_only", msg.Filter.MajorHubsOnly, "shown", len(list))

	m.infoModel.Set("Filters applied: %d airport(s) displayed", len(list))
	m.showStatistics()
}

func (m *Model) resetFilter() {
	list := m.st.ResetFilter()
	m.filterModel.Reset()
	m.mapModel.SetAirports(list, m.st.MarkerState)

	m.infoModel.Set("Filters reset. All airports displayed.")
	m.showStatistics()
}

// distanceFrom prefers the distance reported by the backend.
func distanceFrom(a airports.Airport, lat, lon float64) float64 {
	if a.HasDistance {
		return a.DistanceKm
	}
	return airports.HaversineKm(lat, lon, a.Lat, a.Lon)
}

func listAirports(list []airports.Airport, lat, lon float64) string {
	var b strings.Builder
	for i, a := range list {
		if i == maxListed {
			fmt.Fprintf(&b, "\n... and %d more", len(list)-maxListed)
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s (%.1f km)", a.IATA, a.Name, distanceFrom(a, lat, lon))
	}
	return b.String()
}
