package api

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"airmap/airports"
)

// Op names a backend request, for messages and logs.
type Op string

const (
	OpAirports Op = "airports"
	OpRoutes   Op = "routes"
	OpNearby   Op = "nearby"
	OpNearest  Op = "nearest"
	OpHubs     Op = "hubs"
)

// ErrorMsg is sent when a request fails.
type ErrorMsg struct {
	Op  Op
	Err error
}

// AirportsLoadedMsg carries the full airport list.
type AirportsLoadedMsg struct {
	Airports []airports.Airport
}

// RoutesLoadedMsg carries the routes leaving Origin.
type RoutesLoadedMsg struct {
	Origin string
	Routes []airports.Route
}

// NearbyLoadedMsg carries the airports found around a point.
type NearbyLoadedMsg struct {
	Lat, Lon, RadiusKm float64
	Airports           []airports.Airport
}

// NearestLoadedMsg carries the closest airport to a point. Found is false
// when the backend returned no features.
type NearestLoadedMsg struct {
	Lat, Lon float64
	Airport  airports.Airport
	Found    bool
}

// HubsLoadedMsg carries the top-hubs ranking.
type HubsLoadedMsg struct {
	Hubs []airports.HubCount
}

// Commands builds tea.Cmds that run requests off the UI loop.
type Commands struct {
	Client  *Client
	Timeout time.Duration
}

func (c Commands) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}

// LoadAirports returns a command that fetches every airport.
func (c Commands) LoadAirports() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()

		list, err := c.Client.Airports(ctx)
		if err != nil {
			return ErrorMsg{Op: OpAirports, Err: err}
		}
		return AirportsLoadedMsg{Airports: list}
	}
}

// LoadRoutes returns a command that fetches routes for origin.
func (c Commands) LoadRoutes(origin string, limit int, known map[string]airports.Airport) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()

		routes, err := c.Client.Routes(ctx, origin, limit, known)
		if err != nil {
			return ErrorMsg{Op: OpRoutes, Err: err}
		}
		return RoutesLoadedMsg{Origin: origin, Routes: routes}
	}
}

// FindNearby returns a command that runs a radius query.
func (c Commands) FindNearby(lat, lon, radiusKm float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()

		list, err := c.Client.Nearby(ctx, lat, lon, radiusKm)
		if err != nil {
			return ErrorMsg{Op: OpNearby, Err: err}
		}
		return NearbyLoadedMsg{Lat: lat, Lon: lon, RadiusKm: radiusKm, Airports: list}
	}
}

// FindNearest returns a command that looks up the closest airport.
func (c Commands) FindNearest(lat, lon float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()

		a, found, err := c.Client.Nearest(ctx, lat, lon)
		if err != nil {
			return ErrorMsg{Op: OpNearest, Err: err}
		}
		return NearestLoadedMsg{Lat: lat, Lon: lon, Airport: a, Found: found}
	}
}

// LoadHubs returns a command that fetches the top-hubs ranking.
func (c Commands) LoadHubs(top int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()

		rows, err := c.Client.Hubs(ctx, top)
		if err != nil {
			return ErrorMsg{Op: OpHubs, Err: err}
		}
		return HubsLoadedMsg{Hubs: rows}
	}
}
