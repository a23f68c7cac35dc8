package user

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/geosense/geosense/internal/badge"
)

// ServiceConfig holds configuration for the user service.
type ServiceConfig struct {
	// Repository is the user profile store (required).
	Repository Repository

	// Badges is the badge store (required).
	Badges badge.Repository

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// Logger for user operations.
	Logger zerolog.Logger
}

// Service manages user profiles and their starter state.
type Service struct {
	repo   Repository
	badges badge.Repository
	clock  func() time.Time
	logger zerolog.Logger
}

// NewService creates a new user service.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		repo:   cfg.Repository,
		badges: cfg.Badges,
		clock:  clock,
		logger: cfg.Logger,
	}
}

// GetOrCreate returns the profile for a username, seeding a starter profile
// and the default badges on first sight.
func (s *Service) GetOrCreate(ctx context.Context, username string) (*Profile, error) {
	profile, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	now := s.clock()
	profile = SeedProfile(username, now)
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}

	for _, def := range badge.DefaultBadges {
		if err := s.badges.Award(ctx, username, def, now); err != nil {
			s.logger.Warn().Err(err).
				Str("username", username).
				Str("badge", def.Name).
				Msg("failed to award starter badge")
		}
	}

	s.logger.Info().Str("username", username).Msg("seeded new user profile")
	return profile, nil
}

// Badges returns the badges held by a user.
func (s *Service) Badges(ctx context.Context, username string) ([]badge.Badge, error) {
	return s.badges.ListByUser(ctx, username)
}

// IncrementStats applies a stats delta to a profile.
func (s *Service) IncrementStats(ctx context.Context, username string, delta StatsDelta) error {
	return s.repo.IncrementStats(ctx, username, delta)
}

// Leaderboard returns the top profiles by eco points.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]*Profile, error) {
	return s.repo.Leaderboard(ctx, limit)
}
