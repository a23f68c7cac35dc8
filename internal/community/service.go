package community

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the community service.
type ServiceConfig struct {
	// Repository is the post store (required).
	Repository Repository

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// Logger for community operations.
	Logger zerolog.Logger
}

// Service manages the community feed.
type Service struct {
	repo   Repository
	clock  func() time.Time
	logger zerolog.Logger

	seedOnce sync.Once
}

// NewService creates a new community service.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		repo:   cfg.Repository,
		clock:  clock,
		logger: cfg.Logger,
	}
}

// ListRecent returns the newest posts. An empty feed is seeded with demo
// posts first, once per process.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]Post, error) {
	posts, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		s.seedOnce.Do(func() { s.seed(ctx) })
		return s.repo.ListRecent(ctx, limit)
	}

	return posts, nil
}

// Create stores a new post for the given user.
func (s *Service) Create(ctx context.Context, post *Post) error {
	post.Upvotes = 0
	post.CreatedAt = s.clock()
	return s.repo.Create(ctx, post)
}

// Upvote increments a post's upvote count and returns the new count.
func (s *Service) Upvote(ctx context.Context, id string) (int, error) {
	return s.repo.Upvote(ctx, id)
}

// seed inserts the demo posts with staggered timestamps so the feed has a
// stable order.
func (s *Service) seed(ctx context.Context) {
	now := s.clock()
	for i, p := range seedPosts {
		post := p
		post.CreatedAt = now.Add(-time.Duration(len(seedPosts)-i) * time.Hour)
		if err := s.repo.Create(ctx, &post); err != nil {
			s.logger.Warn().Err(err).Str("title", post.Title).Msg("failed to seed community post")
		}
	}
}
