// Package ambient samples environmental readings for dashboards and
// location analyses. Readings are synthetic until live sensor feeds are
// wired in.
package ambient

import (
	"math/rand"
	"sync"
	"time"
)

// DashboardMetrics is the environmental snapshot shown on the dashboard.
type DashboardMetrics struct {
	AQI          int `json:"aqi"`
	NoiseDb      int `json:"noise_db"`
	TrafficLevel int `json:"traffic_level"`
}

// AnalysisMetrics accompanies a location analysis.
type AnalysisMetrics struct {
	AQI          int `json:"aqi"`
	NoiseDb      int `json:"noise_db"`
	TrafficLevel int `json:"traffic_level"`
}

// Sampler draws ambient readings from fixed plausible ranges. Safe for
// concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler creates a sampler. A nil rng falls back to a source seeded
// from the wall clock.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{rng: rng}
}

// Dashboard samples a full environmental snapshot.
func (s *Sampler) Dashboard() DashboardMetrics {
	return DashboardMetrics{
		AQI:          s.intn(50, 120),
		NoiseDb:      s.intn(40, 80),
		TrafficLevel: s.intn(30, 90),
	}
}

// Analysis samples readings for a location analysis. The traffic level is
// taken from the caller's time-of-day estimate rather than sampled, so the
// analysis stays internally consistent.
func (s *Sampler) Analysis(trafficLevel int) AnalysisMetrics {
	return AnalysisMetrics{
		AQI:          s.intn(60, 110),
		NoiseDb:      s.intn(45, 85),
		TrafficLevel: trafficLevel,
	}
}

func (s *Sampler) intn(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Intn(hi-lo+1)
}
