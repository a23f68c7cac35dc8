// Package badge manages achievement badges earned by users.
package badge

import "time"

// Badge is an achievement awarded to a user.
type Badge struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Icon     string    `json:"icon"`
	EarnedAt time.Time `json:"earned_at"`
}

// Definition describes a badge that can be awarded.
type Definition struct {
	Name string
	Icon string
}

// DefaultBadges are granted to every new user.
var DefaultBadges = []Definition{
	{Name: "Eco Starter", Icon: "🌱"},
	{Name: "Conscious Citizen", Icon: "🏅"},
}

// ThresholdBadges are awarded by the background evaluator once a profile
// crosses the matching threshold.
var ThresholdBadges = []ThresholdDefinition{
	{Definition: Definition{Name: "Route Master", Icon: "🚴"}, Qualifies: func(trips, _ int, _ float64) bool { return trips >= 25 }},
	{Definition: Definition{Name: "Carbon Saver", Icon: "🌍"}, Qualifies: func(_, _ int, co2 float64) bool { return co2 >= 50 }},
	{Definition: Definition{Name: "Point Collector", Icon: "⭐"}, Qualifies: func(_, points int, _ float64) bool { return points >= 1000 }},
}

// ThresholdDefinition pairs a badge with its qualification rule over
// (clean trips, eco points, co2 saved kg).
type ThresholdDefinition struct {
	Definition
	Qualifies func(trips, points int, co2 float64) bool
}
