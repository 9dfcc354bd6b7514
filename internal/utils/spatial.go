package utils

import "math"

const (
	earthRadiusMeters = 6371000.0
	// MetersPerDegree converts a planar degree distance to meters at the equator.
	MetersPerDegree = 111319.9
)

func toRadians(deg float64) float64 { return deg * math.Pi / 180.0 }
func toDegrees(rad float64) float64 { return rad * 180.0 / math.Pi }

// HaversineDistance calculates the great-circle distance in meters between two points.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// DegreeDistanceMeters approximates the distance in meters from the planar
// distance in degrees between two lng/lat points.
func DegreeDistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	return math.Hypot(lng2-lng1, lat2-lat1) * MetersPerDegree
}

// Bearing returns the initial great-circle bearing from point 1 to point 2 in
// degrees, normalized to [0, 360).
func Bearing(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dLng := toRadians(lng2 - lng1)

	x := math.Sin(dLng) * math.Cos(phi2)
	y := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLng)

	b := math.Mod(toDegrees(math.Atan2(x, y))+360, 360)
	if b >= 360 {
		b = 0
	}
	return b
}

// RoundedBearing is Bearing rounded to two decimals and kept in [0, 360).
func RoundedBearing(lat1, lng1, lat2, lng2 float64) float64 {
	b := Round2(Bearing(lat1, lng1, lat2, lng2))
	if b >= 360 {
		b = 0
	}
	return b
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateBoundingBox calculates a rough bounding box around a point for index-friendly prefiltering.
func CalculateBoundingBox(lat, lng, radiusMeters float64) (minLat, maxLat, minLng, maxLng float64) {
	latDegreePerMeter := 1.0 / 111320.0
	lngDegreePerMeter := 1.0 / (111320.0 * math.Cos(toRadians(lat)))

	deltaLat := radiusMeters * latDegreePerMeter
	deltaLng := radiusMeters * lngDegreePerMeter

	return lat - deltaLat, lat + deltaLat, lng - deltaLng, lng + deltaLng
}
