package community

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Repository defines the interface for community post persistence.
type Repository interface {
	// ListRecent returns up to limit posts, newest first.
	ListRecent(ctx context.Context, limit int) ([]Post, error)

	// Create stores a new post. The ID is assigned by the store.
	Create(ctx context.Context, post *Post) error

	// Upvote atomically increments a post's upvote count and returns the
	// new count.
	Upvote(ctx context.Context, id string) (int, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	posts map[string]*Post
}

// NewInMemoryRepository creates a new in-memory post repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		posts: make(map[string]*Post),
	}
}

// ListRecent returns up to limit posts, newest first.
func (r *InMemoryRepository) ListRecent(_ context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = feedSize
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Create stores a new post.
func (r *InMemoryRepository) Create(_ context.Context, post *Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = "post_" + uuid.NewString()
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

// Upvote atomically increments a post's upvote count.
func (r *InMemoryRepository) Upvote(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return 0, ErrPostNotFound
	}

	p.Upvotes++
	return p.Upvotes, nil
}
