package community_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosense/geosense/internal/community"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newService() *community.Service {
	return community.NewService(community.ServiceConfig{
		Repository: community.NewInMemoryRepository(),
		Clock:      func() time.Time { return testNow },
		Logger:     zerolog.New(io.Discard),
	})
}

func TestListRecent_SeedsEmptyFeed(t *testing.T) {
	svc := newService()

	posts, err := svc.ListRecent(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	// Newest first; the last seed post gets the most recent timestamp.
	assert.Equal(t, "Construction dust near Shivajinagar", posts[0].Title)
	for i := 1; i < len(posts); i++ {
		assert.True(t, posts[i-1].CreatedAt.After(posts[i].CreatedAt))
	}
}

func TestListRecent_SeedsOnlyOnce(t *testing.T) {
	svc := newService()

	first, err := svc.ListRecent(context.Background(), 20)
	require.NoError(t, err)

	again, err := svc.ListRecent(context.Background(), 20)
	require.NoError(t, err)
	assert.Len(t, again, len(first))
}

func TestCreate_NewPostAppearsFirst(t *testing.T) {
	svc := newService()

	_, err := svc.ListRecent(context.Background(), 20)
	require.NoError(t, err)

	post := &community.Post{
		Username: "asha",
		Title:    "Quiet lane behind Deccan",
		Content:  "Barely any traffic after 7 PM.",
		Location: "Deccan",
		PostType: "route_tip",
		Upvotes:  99,
	}
	require.NoError(t, svc.Create(context.Background(), post))
	assert.NotEmpty(t, post.ID)
	assert.Zero(t, post.Upvotes, "upvotes are not client-settable")

	posts, err := svc.ListRecent(context.Background(), 20)
	require.NoError(t, err)
	require.NotEmpty(t, posts)
	assert.Equal(t, "Quiet lane behind Deccan", posts[0].Title)
}

func TestUpvote(t *testing.T) {
	svc := newService()

	post := &community.Post{Username: "asha", Title: "t", Content: "c"}
	require.NoError(t, svc.Create(context.Background(), post))

	n, err := svc.Upvote(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.Upvote(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUpvote_UnknownPost(t *testing.T) {
	svc := newService()

	_, err := svc.Upvote(context.Background(), "nope")
	assert.ErrorIs(t, err, community.ErrPostNotFound)
}

func TestListRecent_Limit(t *testing.T) {
	repo := community.NewInMemoryRepository()
	svc := community.NewService(community.ServiceConfig{
		Repository: repo,
		Clock:      func() time.Time { return testNow },
		Logger:     zerolog.New(io.Discard),
	})

	base := testNow
	for i := 0; i < 25; i++ {
		post := &community.Post{Username: "asha", Title: "t", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Create(context.Background(), post))
	}

	posts, err := svc.ListRecent(context.Background(), 20)
	require.NoError(t, err)
	assert.Len(t, posts, 20)
}
