// Package worker provides background job processing for GeoSense.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/geosense/geosense/internal/badge"
	"github.com/geosense/geosense/internal/user"
)

// evaluationScanSize bounds the number of profiles a full scan considers.
// Profiles below the cutoff cannot hold a threshold badge anyway; the
// thresholds all sit well inside the top scorers.
const evaluationScanSize = 500

// BadgeJobConfig holds configuration for the badge evaluation job.
type BadgeJobConfig struct {
	// Users is the profile store (required).
	Users user.Repository

	// Badges is the badge store (required).
	Badges badge.Repository

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// Logger for badge evaluation.
	Logger zerolog.Logger
}

// BadgeJob awards threshold badges to qualifying users.
type BadgeJob struct {
	users  user.Repository
	badges badge.Repository
	clock  func() time.Time
	logger zerolog.Logger
}

// NewBadgeJob creates a new badge evaluation job.
func NewBadgeJob(cfg BadgeJobConfig) *BadgeJob {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &BadgeJob{
		users:  cfg.Users,
		badges: cfg.Badges,
		clock:  clock,
		logger: cfg.Logger,
	}
}

// EvaluationResult summarises a badge evaluation run.
type EvaluationResult struct {
	Evaluated int
	Awarded   int
	Duration  time.Duration
}

// EvaluateUser checks a single user against every threshold badge and
// awards the ones newly earned.
func (j *BadgeJob) EvaluateUser(ctx context.Context, username string) (int, error) {
	profile, err := j.users.GetByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("load profile %s: %w", username, err)
	}

	awarded := 0
	for _, def := range badge.ThresholdBadges {
		if !def.Qualifies(profile.CleanTrips, profile.EcoPoints, profile.CO2SavedKg) {
			continue
		}

		has, err := j.badges.HasBadge(ctx, username, def.Name)
		if err != nil {
			return awarded, fmt.Errorf("check badge %s: %w", def.Name, err)
		}
		if has {
			continue
		}

		if err := j.badges.Award(ctx, username, def.Definition, j.clock()); err != nil {
			return awarded, fmt.Errorf("award badge %s: %w", def.Name, err)
		}

		awarded++
		j.logger.Info().
			Str("username", username).
			Str("badge", def.Name).
			Msg("awarded threshold badge")
	}

	return awarded, nil
}

// Run evaluates the top profiles against the threshold badges.
func (j *BadgeJob) Run(ctx context.Context) (*EvaluationResult, error) {
	start := j.clock()

	profiles, err := j.users.Leaderboard(ctx, evaluationScanSize)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	result := &EvaluationResult{}
	for _, p := range profiles {
		awarded, err := j.EvaluateUser(ctx, p.Username)
		if err != nil {
			j.logger.Error().Err(err).
				Str("username", p.Username).
				Msg("badge evaluation failed for user")
			continue
		}
		result.Evaluated++
		result.Awarded += awarded
	}

	result.Duration = j.clock().Sub(start)

	j.logger.Info().
		Int("evaluated", result.Evaluated).
		Int("awarded", result.Awarded).
		Dur("duration", result.Duration).
		Msg("badge evaluation completed")

	return result, nil
}
