package badge

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL badge repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListByUser returns all badges earned by a user, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, username string) ([]Badge, error) {
	query := `
		SELECT id, username, name, icon, earned_at
		FROM badges
		WHERE username = $1
		ORDER BY earned_at ASC
	`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Badge
	for rows.Next() {
		var b Badge
		if err := rows.Scan(&b.ID, &b.Username, &b.Name, &b.Icon, &b.EarnedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, rows.Err()
}

// Award grants a badge to a user. The unique constraint on (username, name)
// makes repeated awards a no-op.
func (r *PostgresRepository) Award(ctx context.Context, username string, def Definition, earnedAt time.Time) error {
	query := `
		INSERT INTO badges (id, username, name, icon, earned_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username, name) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, uuid.NewString(), username, def.Name, def.Icon, earnedAt)
	return err
}

// HasBadge reports whether the user already holds the named badge.
func (r *PostgresRepository) HasBadge(ctx context.Context, username, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM badges WHERE username = $1 AND name = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, username, name).Scan(&exists)
	return exists, err
}
