// Package user manages gamified user profiles: eco points, green score,
// streaks and trip statistics.
package user

import "time"

// Profile is a user's gamification record. The username is the identity;
// there is no separate account system.
type Profile struct {
	Username   string    `json:"username"`
	EcoPoints  int       `json:"eco_points"`
	GreenScore int       `json:"green_score"`
	StreakDays int       `json:"streak_days"`
	CO2SavedKg float64   `json:"co2_saved_kg"`
	CleanTrips int       `json:"clean_trips"`
	CreatedAt  time.Time `json:"created_at"`
}

// SeedProfile returns the starter profile a first-time user receives. The
// non-zero seed values give new users a populated dashboard instead of a
// wall of zeroes.
func SeedProfile(username string, now time.Time) *Profile {
	return &Profile{
		Username:   username,
		EcoPoints:  150,
		GreenScore: 65,
		StreakDays: 3,
		CO2SavedKg: 12.5,
		CleanTrips: 8,
		CreatedAt:  now,
	}
}

// StatsDelta is an atomic increment applied to a profile's counters.
type StatsDelta struct {
	EcoPoints  int
	CO2SavedKg float64
	CleanTrips int
}
