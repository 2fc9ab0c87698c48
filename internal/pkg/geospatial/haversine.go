package geospatial

import "math"

const (
	earthRadiusMeters = 6371000.0
	metersPerDegree   = 111320.0
	MetersPerMile     = 1609.344
)

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DistanceMiles is Haversine in statute miles.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	return Haversine(lat1, lon1, lat2, lon2) / MetersPerMile
}

// BoundingBox returns a box of radiusMeters around a point, clamped to valid
// coordinates. A zero radius yields the point itself.
func BoundingBox(lat, lon, radiusMeters float64) (minLat, minLon, maxLat, maxLon float64) {
	latDelta := radiusMeters / metersPerDegree
	lonDelta := 180.0
	if c := math.Cos(toRad(lat)); c > 1e-9 {
		lonDelta = math.Min(radiusMeters/(metersPerDegree*c), 180)
	}

	minLat, maxLat = math.Max(lat-latDelta, -90), math.Min(lat+latDelta, 90)
	minLon, maxLon = math.Max(lon-lonDelta, -180), math.Min(lon+lonDelta, 180)
	return minLat, minLon, maxLat, maxLon
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
