package airports

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []Airport{
	{IATA: "DUB", Name: "Dublin Airport", City: "Dublin", Country: "Ireland", Lon: -6.27, Lat: 53.42, MajorHub: true},
	{IATA: "ORK", Name: "Cork Airport", City: "Cork", Country: "Ireland", Lon: -8.49, Lat: 51.84},
	{IATA: "LHR", Name: "Heathrow", City: "London", Country: "United Kingdom", Lon: -0.45, Lat: 51.47, MajorHub: true},
	{IATA: "BHX", Name: "Birmingham Airport", City: "Birmingham", Country: "United Kingdom", Lon: -1.74, Lat: 52.45},
}

func TestDecodeAirports(t *testing.T) {
	raw := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [-6.27, 53.42]},
			 "properties": {"name": "Dublin Airport", "city": "Dublin", "country": "Ireland", "iata_code": "DUB", "is_major_hub": true}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [-8.49, 51.84]},
			 "properties": {"name": "Cork Airport", "city": "Cork", "country": "Ireland", "iata_code": "ork"}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]},
			 "properties": {"name": "Duplicate", "iata_code": "DUB"}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 1]},
			 "properties": {"name": "No code"}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [-6.0, 53.0]},
			 "properties": {"name": "Nearest", "iata_code": "NRS", "distance_km": 12.5}}
		]
	}`)

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	require.NoError(t, err)

	got := DecodeAirports(fc)
	require.Len(t, got, 3)

	assert.Equal(t, "DUB", got[0].IATA)
	assert.Equal(t, "Dublin Airport", got[0].Name)
	assert.True(t, got[0].MajorHub)
	assert.InDelta(t, 53.42, got[0].Lat, 1e-9)
	assert.InDelta(t, -6.27, got[0].Lon, 1e-9)
	assert.False(t, got[0].HasDistance)

	assert.Equal(t, "ORK", got[1].IATA, "codes are upper-cased")
	assert.False(t, got[1].MajorHub)

	assert.Equal(t, "NRS", got[2].IATA)
	assert.True(t, got[2].HasDistance)
	assert.InDelta(t, 12.5, got[2].DistanceKm, 1e-9)
}

func TestDecodeAirports_Nil(t *testing.T) {
	assert.Nil(t, DecodeAirports(nil))
}

func TestDecodeRoutes(t *testing.T) {
	raw := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[-6.27, 53.42], [-0.45, 51.47]]},
			 "properties": {"origin": "DUB", "destination": "LHR", "distance_km": 449.2, "airline": "EI"}},
			{"type": "Feature", "geometry": null,
			 "properties": {"origin": "DUB", "destination": "ORK", "distance_km": null, "airline": null}},
			{"type": "Feature", "geometry": null,
			 "properties": {"origin": "DUB", "destination": "XXX", "distance_km": 10}}
		]
	}`)

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	require.NoError(t, err)

	got := DecodeRoutes(fc, Index(sample))
	require.Len(t, got, 2, "route to an unknown airport without geometry is dropped")

	assert.Equal(t, "LHR", got[0].Destination)
	assert.Equal(t, "EI", got[0].Airline)
	assert.InDelta(t, 449.2, got[0].DistanceKm, 1e-9)
	assert.Len(t, got[0].Path, 2)

	assert.Equal(t, "ORK", got[1].Destination)
	assert.Equal(t, "", got[1].Airline)
	assert.Equal(t, 0.0, got[1].DistanceKm)
	assert.Equal(t, orb.LineString{{-6.27, 53.42}, {-8.49, 51.84}}, got[1].Path)
}

func TestApplyFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero filter keeps all", Filter{}, []string{"DUB", "ORK", "LHR", "BHX"}},
		{"country", Filter{Country: "Ireland"}, []string{"DUB", "ORK"}},
		{"hubs only", Filter{MajorHubsOnly: true}, []string{"DUB", "LHR"}},
		{"both", Filter{Country: "United Kingdom", MajorHubsOnly: true}, []string{"LHR"}},
		{"no match", Filter{Country: "France"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilter(sample, tt.filter)
			codes := make([]string, 0, len(got))
			for _, a := range got {
				codes = append(codes, a.IATA)
				assert.True(t, tt.filter.Match(a))
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestApplyFilter_DoesNotAlias(t *testing.T) {
	all := append([]Airport(nil), sample...)
	got := ApplyFilter(all, Filter{})
	got[0].Name = "changed"
	assert.Equal(t, "Dublin Airport", all[0].Name)
}

func TestCountries(t *testing.T) {
	assert.Equal(t, []string{"Ireland", "United Kingdom"}, Countries(sample))
	assert.Empty(t, Countries(nil))
}

func TestSearch(t *testing.T) {
	t.Run("short query", func(t *testing.T) {
		assert.Nil(t, Search(sample, "d", 10))
		assert.Nil(t, Search(sample, "  d ", 10))
	})

	t.Run("matches every field case-insensitively", func(t *testing.T) {
		assert.Len(t, Search(sample, "HEATH", 10), 1)   // name
		assert.Len(t, Search(sample, "cork", 10), 1)    // city and name
		assert.Len(t, Search(sample, "kingdom", 10), 2) // country
		assert.Len(t, Search(sample, "bh", 10), 1)      // iata
	})

	t.Run("limit", func(t *testing.T) {
		var many []Airport
		for i := 0; i < 25; i++ {
			many = append(many, Airport{IATA: "A" + string(rune('A'+i)), Name: "Airport"})
		}
		assert.Len(t, Search(many, "airport", 10), 10)
	})
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		km   float64
		want Tier
	}{
		{0, TierShort},
		{999, TierShort},
		{999.99, TierShort},
		{1000, TierMedium},
		{1000.1, TierMedium},
		{5000, TierMedium},
		{5000.1, TierLong},
		{12000, TierLong},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.km), "distance %v", tt.km)
	}
}

func TestHaversineKm(t *testing.T) {
	// Dublin to Heathrow is roughly 450 km.
	d := HaversineKm(53.42, -6.27, 51.47, -0.45)
	assert.InDelta(t, 449, d, 10)
	assert.Equal(t, 0.0, HaversineKm(10, 10, 10, 10))
}

func TestDestination(t *testing.T) {
	lat, lon := Destination(53.35, -6.26, 90, 100)
	assert.InDelta(t, 100, HaversineKm(53.35, -6.26, lat, lon), 0.5)

	lat, lon = Destination(0, 179.9, 90, 100)
	assert.Less(t, lon, 0.0, "longitude wraps past the antimeridian")
	assert.InDelta(t, 0, lat, 0.01)
}

func TestBoundOf(t *testing.T) {
	_, ok := BoundOf(nil)
	assert.False(t, ok)

	b, ok := BoundOf(sample)
	require.True(t, ok)
	assert.Equal(t, orb.Point{-8.49, 51.47}, b.Min)
	assert.Equal(t, orb.Point{-0.45, 53.42}, b.Max)
}
