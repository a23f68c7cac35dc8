package community

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL post repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListRecent returns up to limit posts, newest first.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = feedSize
	}

	query := `
		SELECT id, username, title, content, location, post_type, upvotes, created_at
		FROM community_posts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(
			&p.ID,
			&p.Username,
			&p.Title,
			&p.Content,
			&p.Location,
			&p.PostType,
			&p.Upvotes,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// Create stores a new post.
func (r *PostgresRepository) Create(ctx context.Context, post *Post) error {
	post.ID = "post_" + uuid.NewString()

	query := `
		INSERT INTO community_posts (id, username, title, content, location, post_type, upvotes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Username,
		post.Title,
		post.Content,
		post.Location,
		post.PostType,
		post.Upvotes,
		post.CreatedAt,
	)
	return err
}

// Upvote atomically increments a post's upvote count in a single UPDATE.
func (r *PostgresRepository) Upvote(ctx context.Context, id string) (int, error) {
	query := `
		UPDATE community_posts
		SET upvotes = upvotes + 1
		WHERE id = $1
		RETURNING upvotes
	`

	var upvotes int
	err := r.pool.QueryRow(ctx, query, id).Scan(&upvotes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrPostNotFound
		}
		return 0, err
	}
	return upvotes, nil
}
