// Package trips records completed trips for history and badge evaluation.
package trips

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Trip is a single completed journey.
type Trip struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	StartLocation   string    `json:"start_location"`
	EndLocation     string    `json:"end_location"`
	RouteType       string    `json:"route_type"`
	EcoPointsEarned int       `json:"eco_points_earned"`
	CreatedAt       time.Time `json:"created_at"`
}

// Repository defines the interface for trip persistence.
type Repository interface {
	// Append records a completed trip. The ID is assigned by the store.
	Append(ctx context.Context, trip *Trip) error

	// ListByUser returns a user's trips, newest first.
	ListByUser(ctx context.Context, username string, limit int) ([]Trip, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	trips map[string][]Trip
}

// NewInMemoryRepository creates a new in-memory trip repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		trips: make(map[string][]Trip),
	}
}

// Append records a completed trip.
func (r *InMemoryRepository) Append(_ context.Context, trip *Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip.ID = "trip_" + uuid.NewString()
	r.trips[trip.Username] = append(r.trips[trip.Username], *trip)
	return nil
}

// ListByUser returns a user's trips, newest first.
func (r *InMemoryRepository) ListByUser(_ context.Context, username string, limit int) ([]Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.trips[username]
	out := make([]Trip, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL trip repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Append records a completed trip.
func (r *PostgresRepository) Append(ctx context.Context, trip *Trip) error {
	trip.ID = "trip_" + uuid.NewString()

	query := `
		INSERT INTO trips (id, username, start_location, end_location, route_type, eco_points_earned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		trip.ID,
		trip.Username,
		trip.StartLocation,
		trip.EndLocation,
		trip.RouteType,
		trip.EcoPointsEarned,
		trip.CreatedAt,
	)
	return err
}

// ListByUser returns a user's trips, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, username string, limit int) ([]Trip, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, username, start_location, end_location, route_type, eco_points_earned, created_at
		FROM trips
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trip
	for rows.Next() {
		var tr Trip
		if err := rows.Scan(
			&tr.ID,
			&tr.Username,
			&tr.StartLocation,
			&tr.EndLocation,
			&tr.RouteType,
			&tr.EcoPointsEarned,
			&tr.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}

	return out, rows.Err()
}
