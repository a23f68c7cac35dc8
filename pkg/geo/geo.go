// Package geo provides small geodesic helpers shared by the routing and
// clustering code.
package geo

import (
	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.01

// DistanceKm returns the great-circle distance in kilometers between two
// coordinates given in degrees.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// Midpoint returns the arithmetic midpoint of two coordinates. Good enough
// for the short urban segments this service works with; not a true geodesic
// midpoint.
func Midpoint(lat1, lon1, lat2, lon2 float64) (lat, lon float64) {
	return (lat1 + lat2) / 2, (lon1 + lon2) / 2
}

// ValidCoordinate reports whether lat/lon are within WGS84 bounds.
func ValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
