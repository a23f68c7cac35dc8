// Package rewards converts completed routes into eco points and carbon
// savings, and applies them to user profiles.
package rewards

import (
	"math"

	"github.com/geosense/geosense/internal/routing"
)

const (
	// ecoPointsPerKm rewards the slower, cleaner route.
	ecoPointsPerKm = 5

	// fastestPointsPerKm rewards distance regardless of mode.
	fastestPointsPerKm = 2

	// co2SavedKgPerKm is the assumed saving of an eco route over the
	// fastest route.
	co2SavedKgPerKm = 0.12
)

// Reward is the outcome of scoring a route.
type Reward struct {
	// EcoPoints earned for the trip.
	EcoPoints int `json:"eco_points"`

	// CO2SavedKg is the estimated carbon saving in kilograms.
	CO2SavedKg float64 `json:"co2_saved_kg"`

	// DistanceKm is the scored route length.
	DistanceKm float64 `json:"distance_km"`

	// TravelTimeMinutes is the route travel time in whole minutes.
	TravelTimeMinutes int `json:"travel_time_minutes"`
}

// Score converts a route summary into a reward. Eco routes earn 5 points
// per km and bank a carbon saving; fastest routes earn 2 points per km and
// save nothing. Points truncate toward zero, the distance and the saving
// round to two decimals.
func Score(summary routing.Summary, mode routing.RouteType) Reward {
	km := summary.LengthKm()

	r := Reward{
		DistanceKm:        math.Round(km*100) / 100,
		TravelTimeMinutes: summary.TravelTimeSeconds / 60,
	}

	if mode == routing.RouteEco {
		r.EcoPoints = int(math.Floor(km * ecoPointsPerKm))
		r.CO2SavedKg = math.Round(km*co2SavedKgPerKm*100) / 100
	} else {
		r.EcoPoints = int(math.Floor(km * fastestPointsPerKm))
	}

	return r
}
