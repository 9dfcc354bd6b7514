package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearingCardinalDirections(t *testing.T) {
	lat, lng := -13.9626, 33.7741

	assert.InDelta(t, 90.0, Bearing(lat, lng, lat, lng+0.5), 0.2, "east")
	assert.InDelta(t, 270.0, Bearing(lat, lng, lat, lng-0.5), 0.2, "west")
	assert.InDelta(t, 180.0, Bearing(lat, lng, lat-0.5, lng), 1e-9, "south")

	north := Bearing(lat, lng, lat+0.5, lng)
	assert.True(t, north < 1e-9 || north > 360-1e-9, "north bearing %f", north)
}

func TestRoundedBearingJustWestOfNorth(t *testing.T) {
	raw := Bearing(0, 0, 10, -0.0005)
	require.Greater(t, raw, 359.995)

	assert.Equal(t, 0.0, RoundedBearing(0, 0, 10, -0.0005))
	assert.Equal(t, 359.99, RoundedBearing(0, 0, 10, -0.001))
}

func TestBearingAlwaysInRange(t *testing.T) {
	points := [][2]float64{{0, 0}, {10, 10}, {-45, 170}, {60, -179}, {-89, 0}, {89.9, 45}}
	for _, a := range points {
		for _, b := range points {
			got := Bearing(a[0], a[1], b[0], b[1])
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
			assert.Less(t, RoundedBearing(a[0], a[1], b[0], b[1]), 360.0)
		}
	}
}

func TestHaversineDistance(t *testing.T) {
	// Lilongwe to Blantyre is roughly 240 km.
	d := HaversineDistance(-13.9626, 33.7741, -15.7861, 35.0058)
	assert.InDelta(t, 240000, d, 15000)
	assert.Zero(t, HaversineDistance(1, 2, 1, 2))
}

func TestDegreeDistanceMeters(t *testing.T) {
	assert.InDelta(t, MetersPerDegree, DegreeDistanceMeters(0, 0, 0, 1), 1e-6)
	assert.InDelta(t, 5*MetersPerDegree, DegreeDistanceMeters(0, 0, 3, 4), 1e-6)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.2351))
	assert.Equal(t, -0.5, Round2(-0.499))
}

func TestCalculateBoundingBox(t *testing.T) {
	minLat, maxLat, minLng, maxLng := CalculateBoundingBox(0, 0, 111320)
	assert.InDelta(t, -1, minLat, 1e-9)
	assert.InDelta(t, 1, maxLat, 1e-9)
	assert.InDelta(t, -1, minLng, 1e-9)
	assert.InDelta(t, 1, maxLng, 1e-9)
}
