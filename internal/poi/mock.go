package poi

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const mockResultCount = 5

// mockCategories cycles through the synthetic result set.
var mockCategories = []string{"Restaurant", "Park", "Shopping Mall", "Hospital", "School"}

// MockProvider fabricates plausible points of interest scattered around the
// requested coordinate. It stands in when no live provider is configured or
// the live provider is down.
type MockProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockProvider creates a mock provider. A nil rng falls back to a source
// seeded from the wall clock.
func NewMockProvider(rng *rand.Rand) *MockProvider {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MockProvider{rng: rng}
}

// Search returns five synthetic points within roughly five kilometres of
// the coordinate. It never fails.
func (m *MockProvider) Search(_ context.Context, query string, lat, lon float64, _ int) ([]Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]Result, 0, mockResultCount)
	for i := 0; i < mockResultCount; i++ {
		category := mockCategories[i%len(mockCategories)]
		n := i + 1
		results = append(results, Result{
			Lat:        lat + (m.rng.Float64()*0.1 - 0.05),
			Lon:        lon + (m.rng.Float64()*0.1 - 0.05),
			Name:       fmt.Sprintf("%s %s %d", query, category, n),
			Categories: []string{category},
			Address:    fmt.Sprintf("Street %d, Pune, India", n),
		})
	}

	return results, nil
}
