package user

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Repository errors.
var (
	ErrUserNotFound = errors.New("user not found")
)

// leaderboardSize caps the leaderboard listing.
const leaderboardSize = 10

// Repository defines the interface for user profile persistence.
type Repository interface {
	// GetByUsername retrieves a profile by username.
	GetByUsername(ctx context.Context, username string) (*Profile, error)

	// Create stores a new profile.
	Create(ctx context.Context, profile *Profile) error

	// IncrementStats atomically adds the delta to the profile's counters.
	IncrementStats(ctx context.Context, username string, delta StatsDelta) error

	// Leaderboard returns up to limit profiles ordered by eco points,
	// highest first.
	Leaderboard(ctx context.Context, limit int) ([]*Profile, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for development and testing. Production should use the
// database-backed implementation.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewInMemoryRepository creates a new in-memory user repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		profiles: make(map[string]*Profile),
	}
}

// GetByUsername retrieves a profile by username.
func (r *InMemoryRepository) GetByUsername(_ context.Context, username string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[username]
	if !ok {
		return nil, ErrUserNotFound
	}

	// Return a copy to prevent mutation
	cp := *p
	return &cp, nil
}

// Create stores a new profile.
func (r *InMemoryRepository) Create(_ context.Context, profile *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *profile
	r.profiles[profile.Username] = &cp
	return nil
}

// IncrementStats atomically adds the delta to the profile's counters.
func (r *InMemoryRepository) IncrementStats(_ context.Context, username string, delta StatsDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[username]
	if !ok {
		return ErrUserNotFound
	}

	p.EcoPoints += delta.EcoPoints
	p.CO2SavedKg += delta.CO2SavedKg
	p.CleanTrips += delta.CleanTrips
	return nil
}

// Leaderboard returns up to limit profiles ordered by eco points, highest
// first.
func (r *InMemoryRepository) Leaderboard(_ context.Context, limit int) ([]*Profile, error) {
	if limit <= 0 {
		limit = leaderboardSize
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		cp := *p
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].EcoPoints != out[j].EcoPoints {
			return out[i].EcoPoints > out[j].EcoPoints
		}
		return out[i].Username < out[j].Username
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
