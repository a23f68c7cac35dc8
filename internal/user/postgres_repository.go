package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByUsername retrieves a profile by username.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*Profile, error) {
	query := `
		SELECT username, eco_points, green_score, streak_days, co2_saved, clean_trips, created_at
		FROM users
		WHERE username = $1
	`

	var p Profile
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&p.Username,
		&p.EcoPoints,
		&p.GreenScore,
		&p.StreakDays,
		&p.CO2SavedKg,
		&p.CleanTrips,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &p, nil
}

// Create stores a new profile.
func (r *PostgresRepository) Create(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO users (username, eco_points, green_score, streak_days, co2_saved, clean_trips, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (username) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		profile.Username,
		profile.EcoPoints,
		profile.GreenScore,
		profile.StreakDays,
		profile.CO2SavedKg,
		profile.CleanTrips,
		profile.CreatedAt,
	)
	return err
}

// IncrementStats atomically adds the delta to the profile's counters in a
// single UPDATE, so concurrent trips never lose points.
func (r *PostgresRepository) IncrementStats(ctx context.Context, username string, delta StatsDelta) error {
	query := `
		UPDATE users
		SET eco_points = eco_points + $2,
		    co2_saved = co2_saved + $3,
		    clean_trips = clean_trips + $4
		WHERE username = $1
	`

	tag, err := r.pool.Exec(ctx, query, username, delta.EcoPoints, delta.CO2SavedKg, delta.CleanTrips)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Leaderboard returns up to limit profiles ordered by eco points, highest
// first.
func (r *PostgresRepository) Leaderboard(ctx context.Context, limit int) ([]*Profile, error) {
	if limit <= 0 {
		limit = leaderboardSize
	}

	query := `
		SELECT username, eco_points, green_score, streak_days, co2_saved, clean_trips, created_at
		FROM users
		ORDER BY eco_points DESC, username ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(
			&p.Username,
			&p.EcoPoints,
			&p.GreenScore,
			&p.StreakDays,
			&p.CO2SavedKg,
			&p.CleanTrips,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}

	return out, rows.Err()
}
