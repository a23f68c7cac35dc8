package rewards

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/geosense/geosense/internal/events"
	"github.com/geosense/geosense/internal/routing"
	"github.com/geosense/geosense/internal/trips"
	"github.com/geosense/geosense/internal/user"
)

// ServiceConfig holds configuration for the rewards service.
type ServiceConfig struct {
	// Users applies stat increments (required).
	Users user.Repository

	// Trips records completed trips (required).
	Trips trips.Repository

	// Publisher emits trip completion events. Optional; when nil, badge
	// evaluation only happens on the worker's schedule.
	Publisher events.Publisher

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// Logger for reward operations.
	Logger zerolog.Logger
}

// Service applies route rewards to user profiles.
type Service struct {
	users     user.Repository
	trips     trips.Repository
	publisher events.Publisher
	clock     func() time.Time
	logger    zerolog.Logger
}

// NewService creates a new rewards service.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		users:     cfg.Users,
		trips:     cfg.Trips,
		publisher: cfg.Publisher,
		clock:     clock,
		logger:    cfg.Logger,
	}
}

// CompleteTrip scores the route, applies the reward to the user's counters
// in one atomic increment, records the trip, and emits a completion event.
// Event publishing is best effort; a publish failure never fails the trip.
func (s *Service) CompleteTrip(ctx context.Context, username string, summary routing.Summary, mode routing.RouteType, startLocation, endLocation string) (Reward, error) {
	reward := Score(summary, mode)

	delta := user.StatsDelta{
		EcoPoints:  reward.EcoPoints,
		CO2SavedKg: reward.CO2SavedKg,
		CleanTrips: 1,
	}
	if err := s.users.IncrementStats(ctx, username, delta); err != nil {
		return Reward{}, err
	}

	trip := &trips.Trip{
		Username:        username,
		StartLocation:   startLocation,
		EndLocation:     endLocation,
		RouteType:       string(mode),
		EcoPointsEarned: reward.EcoPoints,
		CreatedAt:       s.clock(),
	}
	if err := s.trips.Append(ctx, trip); err != nil {
		// Points are already credited; losing the history row is the
		// lesser failure.
		s.logger.Error().Err(err).
			Str("username", username).
			Msg("failed to record trip")
	}

	if s.publisher != nil {
		event := events.TripCompleted{
			Username:   username,
			RouteType:  string(mode),
			EcoPoints:  reward.EcoPoints,
			CO2SavedKg: reward.CO2SavedKg,
			OccurredAt: s.clock(),
		}
		if err := s.publisher.PublishTripCompleted(ctx, event); err != nil {
			s.logger.Warn().Err(err).
				Str("username", username).
				Msg("failed to publish trip event")
		}
	}

	return reward, nil
}
