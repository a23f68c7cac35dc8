package trips

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepository_AppendAssignsID(t *testing.T) {
	repo := NewInMemoryRepository()

	trip := &Trip{Username: "asha", RouteType: "eco", EcoPointsEarned: 25}
	require.NoError(t, repo.Append(context.Background(), trip))

	assert.Contains(t, trip.ID, "trip_")
}

func TestInMemoryRepository_ListNewestFirst(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(ctx, &Trip{
			Username:      "asha",
			StartLocation: fmt.Sprintf("start %d", i),
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		}))
	}

	got, err := repo.ListByUser(ctx, "asha", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "start 2", got[0].StartLocation)
	assert.Equal(t, "start 0", got[2].StartLocation)
}

func TestInMemoryRepository_ListHonorsLimit(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, &Trip{Username: "asha"}))
	}

	got, err := repo.ListByUser(ctx, "asha", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestInMemoryRepository_ListUnknownUser(t *testing.T) {
	repo := NewInMemoryRepository()

	got, err := repo.ListByUser(context.Background(), "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
