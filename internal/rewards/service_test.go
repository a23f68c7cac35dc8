package rewards_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosense/geosense/internal/events"
	"github.com/geosense/geosense/internal/rewards"
	"github.com/geosense/geosense/internal/routing"
	"github.com/geosense/geosense/internal/trips"
	"github.com/geosense/geosense/internal/user"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type capturingPublisher struct {
	events []events.TripCompleted
	err    error
}

func (p *capturingPublisher) PublishTripCompleted(_ context.Context, e events.TripCompleted) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func setup(t *testing.T, pub events.Publisher) (*rewards.Service, *user.InMemoryRepository, *trips.InMemoryRepository) {
	t.Helper()

	users := user.NewInMemoryRepository()
	require.NoError(t, users.Create(context.Background(), user.SeedProfile("asha", testNow)))

	tripStore := trips.NewInMemoryRepository()
	svc := rewards.NewService(rewards.ServiceConfig{
		Users:     users,
		Trips:     tripStore,
		Publisher: pub,
		Clock:     func() time.Time { return testNow },
		Logger:    zerolog.New(io.Discard),
	})
	return svc, users, tripStore
}

func TestCompleteTrip_EcoRoute(t *testing.T) {
	pub := &capturingPublisher{}
	svc, users, tripStore := setup(t, pub)

	summary := routing.Summary{LengthMeters: 5000, TravelTimeSeconds: 1320}
	reward, err := svc.CompleteTrip(context.Background(), "asha", summary, routing.RouteEco, "Deccan", "Koregaon Park")
	require.NoError(t, err)

	assert.Equal(t, 25, reward.EcoPoints)
	assert.InDelta(t, 0.6, reward.CO2SavedKg, 1e-9)

	p, err := users.GetByUsername(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, 175, p.EcoPoints)
	assert.InDelta(t, 13.1, p.CO2SavedKg, 1e-9)
	assert.Equal(t, 9, p.CleanTrips)

	history, err := tripStore.ListByUser(context.Background(), "asha", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Deccan", history[0].StartLocation)
	assert.Equal(t, "Koregaon Park", history[0].EndLocation)
	assert.Equal(t, "eco", history[0].RouteType)
	assert.Equal(t, 25, history[0].EcoPointsEarned)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "asha", pub.events[0].Username)
	assert.Equal(t, 25, pub.events[0].EcoPoints)
}

func TestCompleteTrip_UnknownUser(t *testing.T) {
	svc, _, tripStore := setup(t, nil)

	summary := routing.Summary{LengthMeters: 5000}
	_, err := svc.CompleteTrip(context.Background(), "ghost", summary, routing.RouteEco, "a", "b")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	history, err := tripStore.ListByUser(context.Background(), "ghost", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCompleteTrip_PublishFailureIsAbsorbed(t *testing.T) {
	pub := &capturingPublisher{err: assert.AnError}
	svc, users, _ := setup(t, pub)

	summary := routing.Summary{LengthMeters: 5000}
	reward, err := svc.CompleteTrip(context.Background(), "asha", summary, routing.RouteEco, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 25, reward.EcoPoints)

	p, err := users.GetByUsername(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, 175, p.EcoPoints)
}

func TestCompleteTrip_NoPublisher(t *testing.T) {
	svc, _, _ := setup(t, nil)

	summary := routing.Summary{LengthMeters: 5000}
	_, err := svc.CompleteTrip(context.Background(), "asha", summary, routing.RouteFastest, "a", "b")
	assert.NoError(t, err)
}
