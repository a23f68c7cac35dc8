package routing

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/geosense/geosense/pkg/geo"
)

const (
	// syntheticMinutesPerKm approximates urban driving speed (15 km/h).
	syntheticMinutesPerKm = 4.0

	// ecoTimeFactor slows eco routes relative to the fastest route.
	ecoTimeFactor = 1.1

	// maxSyntheticDelaySeconds bounds the fabricated traffic delay.
	maxSyntheticDelaySeconds = 300
)

// SyntheticProvider fabricates a plausible route from the geodesic distance
// between the endpoints. It serves requests when no live provider is
// configured or the live provider is down, and it never needs the network.
type SyntheticProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSyntheticProvider creates a synthetic provider. A nil rng falls back to
// a source seeded from the wall clock.
func NewSyntheticProvider(rng *rand.Rand) *SyntheticProvider {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SyntheticProvider{rng: rng, now: time.Now}
}

// WithClock overrides the provider's clock. Intended for tests.
func (p *SyntheticProvider) WithClock(now func() time.Time) *SyntheticProvider {
	p.now = now
	return p
}

// Plan builds a route summary from the straight-line distance between the
// endpoints. Identical start and end coordinates yield ErrRouteUnavailable.
func (p *SyntheticProvider) Plan(_ context.Context, req Request) (*Summary, error) {
	if !geo.ValidCoordinate(req.StartLat, req.StartLon) || !geo.ValidCoordinate(req.EndLat, req.EndLon) {
		return nil, ErrInvalidCoordinates
	}

	km := geo.DistanceKm(req.StartLat, req.StartLon, req.EndLat, req.EndLon)
	if km == 0 {
		return nil, ErrRouteUnavailable
	}

	travelMinutes := km * syntheticMinutesPerKm
	if req.Type == RouteEco {
		travelMinutes *= ecoTimeFactor
	}

	p.mu.Lock()
	delay := p.rng.Intn(maxSyntheticDelaySeconds + 1)
	p.mu.Unlock()

	departure := p.now()
	travel := time.Duration(travelMinutes * float64(time.Minute))

	midLat, midLon := geo.Midpoint(req.StartLat, req.StartLon, req.EndLat, req.EndLon)

	return &Summary{
		LengthMeters:        int(math.Round(km * 1000)),
		TravelTimeSeconds:   int(travel.Seconds()),
		TrafficDelaySeconds: delay,
		DepartureTime:       departure,
		ArrivalTime:         departure.Add(travel),
		Waypoints: []Waypoint{
			{Lat: req.StartLat, Lon: req.StartLon},
			{Lat: midLat, Lon: midLon},
			{Lat: req.EndLat, Lon: req.EndLon},
		},
	}, nil
}
