package badge

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for badge persistence.
type Repository interface {
	// ListByUser returns all badges earned by a user, oldest first.
	ListByUser(ctx context.Context, username string) ([]Badge, error)

	// Award grants a badge to a user. Awarding an already-held badge is a
	// no-op.
	Award(ctx context.Context, username string, def Definition, earnedAt time.Time) error

	// HasBadge reports whether the user already holds the named badge.
	HasBadge(ctx context.Context, username, name string) (bool, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	badges map[string][]Badge
}

// NewInMemoryRepository creates a new in-memory badge repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		badges: make(map[string][]Badge),
	}
}

// ListByUser returns all badges earned by a user, oldest first.
func (r *InMemoryRepository) ListByUser(_ context.Context, username string) ([]Badge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Badge, len(r.badges[username]))
	copy(out, r.badges[username])
	return out, nil
}

// Award grants a badge to a user.
func (r *InMemoryRepository) Award(_ context.Context, username string, def Definition, earnedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.badges[username] {
		if b.Name == def.Name {
			return nil
		}
	}

	r.badges[username] = append(r.badges[username], Badge{
		ID:       uuid.NewString(),
		Username: username,
		Name:     def.Name,
		Icon:     def.Icon,
		EarnedAt: earnedAt,
	})
	return nil
}

// HasBadge reports whether the user already holds the named badge.
func (r *InMemoryRepository) HasBadge(_ context.Context, username, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.badges[username] {
		if b.Name == name {
			return true, nil
		}
	}
	return false, nil
}
