package airports

import "math"

// Tier buckets a route by length.
type Tier int

const (
	TierShort  Tier = iota // under 1,000 km
	TierMedium             // 1,000 to 5,000 km inclusive
	TierLong               // over 5,000 km
)

const (
	shortLimitKm = 1000.0
	longLimitKm  = 5000.0
)

// TierFor returns the tier of a route of the given length. Exactly 1000 and
// exactly 5000 are both medium.
func TierFor(distanceKm float64) Tier {
	switch {
	case distanceKm < shortLimitKm:
		return TierShort
	case distanceKm <= longLimitKm:
		return TierMedium
	default:
		return TierLong
	}
}

func (t Tier) String() string {
	switch t {
	case TierShort:
		return "< 1,000 km"
	case TierMedium:
		return "1,000-5,000 km"
	default:
		return "> 5,000 km"
	}
}

const earthRadiusKm = 6371.0

// HaversineKm is the great-circle distance between two points in km.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLon := toRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Destination returns the point reached by travelling distanceKm from
// (lat, lon) on the given bearing in degrees.
func Destination(lat, lon, bearing, distanceKm float64) (float64, float64) {
	lat1 := toRadians(lat)
	lon1 := toRadians(lon)
	brng := toRadians(bearing)
	d := distanceKm / earthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(math.Sin(brng)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	lonDeg := math.Mod(toDegrees(lon2)+540, 360) - 180
	return toDegrees(lat2), lonDeg
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }
