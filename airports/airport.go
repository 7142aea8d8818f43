// Package airports holds the airport and route records shown by airmap,
// along with the pure functions (decode, filter, search, tiering) the UI
// layers build on.
package airports

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Airport is a single airport feature.
type Airport struct {
	IATA     string
	Name     string
	City     string
	Country  string
	Lon      float64
	Lat      float64
	MajorHub bool

	// DistanceKm is only set by the nearest endpoint.
	DistanceKm  float64
	HasDistance bool
}

// Point returns the airport location in [lon, lat] order.
func (a Airport) Point() orb.Point {
	return orb.Point{a.Lon, a.Lat}
}

// Route is a flight route from one airport to another.
type Route struct {
	Origin      string
	Destination string
	DistanceKm  float64
	Airline     string
	Path        orb.LineString
}

// Bound returns the bounding box of the route path.
func (r Route) Bound() orb.Bound {
	return r.Path.Bound()
}

// HubCount is one row of the top-hubs ranking.
type HubCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// DecodeAirports turns a feature collection into airports. Features without
// a point geometry or an IATA code are skipped, and only the first feature
// for each IATA code is kept.
func DecodeAirports(fc *geojson.FeatureCollection) []Airport {
	if fc == nil {
		return nil
	}

	out := make([]Airport, 0, len(fc.Features))
	seen := make(map[string]struct{}, len(fc.Features))

	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(f.Properties.MustString("iata_code", "")))
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		a := Airport{
			IATA:     code,
			Name:     f.Properties.MustString("name", ""),
			City:     f.Properties.MustString("city", ""),
			Country:  f.Properties.MustString("country", ""),
			Lon:      pt.Lon(),
			Lat:      pt.Lat(),
			MajorHub: f.Properties.MustBool("is_major_hub", false),
		}
		if d, ok := f.Properties["distance_km"].(float64); ok {
			a.DistanceKm = d
			a.HasDistance = true
		}
		out = append(out, a)
	}

	return out
}

// DecodeRoutes turns a feature collection into routes. When a feature has no
// line geometry the path is drawn between the two endpoints found in known;
// routes that cannot be placed at all are dropped.
func DecodeRoutes(fc *geojson.FeatureCollection, known map[string]Airport) []Route {
	if fc == nil {
		return nil
	}

	out := make([]Route, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		r := Route{
			Origin:      strings.ToUpper(f.Properties.MustString("origin", "")),
			Destination: strings.ToUpper(f.Properties.MustString("destination", "")),
			DistanceKm:  f.Properties.MustFloat64("distance_km", 0),
			Airline:     f.Properties.MustString("airline", ""),
		}

		switch g := f.Geometry.(type) {
		case orb.LineString:
			r.Path = g
		case orb.MultiLineString:
			for _, ls := range g {
				r.Path = append(r.Path, ls...)
			}
		}

		if len(r.Path) < 2 {
			from, okFrom := known[r.Origin]
			to, okTo := known[r.Destination]
			if !okFrom || !okTo {
				continue
			}
			r.Path = orb.LineString{from.Point(), to.Point()}
		}
		out = append(out, r)
	}

	return out
}

// Index maps IATA code to airport.
func Index(list []Airport) map[string]Airport {
	idx := make(map[string]Airport, len(list))
	for _, a := range list {
		idx[a.IATA] = a
	}
	return idx
}

// BoundOf returns the bounding box of the given airports. The second return
// is false for an empty list.
func BoundOf(list []Airport) (orb.Bound, bool) {
	if len(list) == 0 {
		return orb.Bound{}, false
	}
	b := list[0].Point().Bound()
	for _, a := range list[1:] {
		b = b.Extend(a.Point())
	}
	return b, true
}
