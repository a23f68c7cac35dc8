package routing_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosense/geosense/internal/routing"
)

var fixedNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func newSynthetic(seed int64) *routing.SyntheticProvider {
	return routing.NewSyntheticProvider(rand.New(rand.NewSource(seed))).
		WithClock(func() time.Time { return fixedNow })
}

func puneRequest(rt routing.RouteType) routing.Request {
	return routing.Request{
		StartLat: 18.5204, StartLon: 73.8567,
		EndLat: 18.5913, EndLon: 73.7389,
		Type: rt,
	}
}

func TestSynthetic_PlanFastest(t *testing.T) {
	p := newSynthetic(1)

	s, err := p.Plan(context.Background(), puneRequest(routing.RouteFastest))
	require.NoError(t, err)

	// Roughly 15 km apart; 4 minutes per km.
	assert.InDelta(t, 15000, s.LengthMeters, 2000)
	expectedSeconds := int(float64(s.LengthMeters) / 1000.0 * 4 * 60)
	assert.InDelta(t, expectedSeconds, s.TravelTimeSeconds, 60)

	assert.GreaterOrEqual(t, s.TrafficDelaySeconds, 0)
	assert.LessOrEqual(t, s.TrafficDelaySeconds, 300)

	assert.Equal(t, fixedNow, s.DepartureTime)
	assert.Equal(t, fixedNow.Add(time.Duration(s.TravelTimeSeconds)*time.Second), s.ArrivalTime)
}

func TestSynthetic_EcoIsSlower(t *testing.T) {
	req := puneRequest(routing.RouteEco)

	eco, err := newSynthetic(1).Plan(context.Background(), req)
	require.NoError(t, err)

	req.Type = routing.RouteFastest
	fastest, err := newSynthetic(1).Plan(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, fastest.LengthMeters, eco.LengthMeters)
	assert.InDelta(t, float64(fastest.TravelTimeSeconds)*1.1, float64(eco.TravelTimeSeconds), 2)
}

func TestSynthetic_Waypoints(t *testing.T) {
	req := puneRequest(routing.RouteEco)

	s, err := newSynthetic(1).Plan(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, s.Waypoints, 3)

	assert.Equal(t, routing.Waypoint{Lat: req.StartLat, Lon: req.StartLon}, s.Waypoints[0])
	assert.Equal(t, routing.Waypoint{Lat: req.EndLat, Lon: req.EndLon}, s.Waypoints[2])
	assert.InDelta(t, (req.StartLat+req.EndLat)/2, s.Waypoints[1].Lat, 1e-9)
	assert.InDelta(t, (req.StartLon+req.EndLon)/2, s.Waypoints[1].Lon, 1e-9)
}

func TestSynthetic_DegenerateRoute(t *testing.T) {
	p := newSynthetic(1)

	_, err := p.Plan(context.Background(), routing.Request{
		StartLat: 18.52, StartLon: 73.85,
		EndLat: 18.52, EndLon: 73.85,
		Type: routing.RouteEco,
	})
	assert.ErrorIs(t, err, routing.ErrRouteUnavailable)
}

func TestSynthetic_InvalidCoordinates(t *testing.T) {
	p := newSynthetic(1)

	_, err := p.Plan(context.Background(), routing.Request{
		StartLat: 95, StartLon: 73.85,
		EndLat: 18.52, EndLon: 73.85,
		Type: routing.RouteEco,
	})
	assert.ErrorIs(t, err, routing.ErrInvalidCoordinates)
}
