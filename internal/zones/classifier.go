package zones

import (
	"math/rand"

	"github.com/rs/zerolog"
)

const (
	// maxClusters caps k; fewer points mean fewer clusters.
	maxClusters = 3

	// minPoints is the smallest input that is meaningful to cluster.
	minPoints = 3

	defaultSeed     = 42
	defaultRestarts = 10
	defaultMaxIter  = 100
)

// ClassifierConfig holds configuration for the zone classifier.
type ClassifierConfig struct {
	// Seed fixes the random source so identical inputs produce identical
	// assignments. Default: 42.
	Seed int64

	// Restarts is the number of independent clustering runs; the run with
	// the lowest inertia wins. Default: 10.
	Restarts int

	// Logger for classification operations.
	Logger zerolog.Logger
}

// Classifier partitions located points into zone categories.
type Classifier struct {
	seed     int64
	restarts int
	logger   zerolog.Logger
}

// NewClassifier creates a new zone classifier.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	seed := cfg.Seed
	if seed == 0 {
		seed = defaultSeed
	}

	restarts := cfg.Restarts
	if restarts == 0 {
		restarts = defaultRestarts
	}

	return &Classifier{
		seed:     seed,
		restarts: restarts,
		logger:   cfg.Logger,
	}
}

// Classify clusters the given points on their coordinates and annotates each
// with its cluster index and cyclic zone label. The output order matches the
// input order. Fewer than 3 points returns ErrInsufficientData.
//
// Pure function of the input coordinates and the configured seed; no state
// is retained between calls.
func (c *Classifier) Classify(points []LocatedPoint) ([]ZoneAssignment, error) {
	if len(points) < minPoints {
		return nil, ErrInsufficientData
	}

	obs := make([][2]float64, len(points))
	for i, p := range points {
		obs[i] = [2]float64{p.Lat, p.Lon}
	}

	k := maxClusters
	if len(points) < k {
		k = len(points)
	}

	rng := rand.New(rand.NewSource(c.seed))

	bestInertia := -1.0
	var bestAssignments []int
	for run := 0; run < c.restarts; run++ {
		assignments, in := kmeans(obs, k, rng, defaultMaxIter)
		if bestInertia < 0 || in < bestInertia {
			bestInertia = in
			bestAssignments = assignments
		}
	}

	out := make([]ZoneAssignment, len(points))
	for i, p := range points {
		cluster := bestAssignments[i]
		out[i] = ZoneAssignment{
			LocatedPoint: p,
			Cluster:      cluster,
			ZoneType:     labelFor(cluster),
		}
	}

	c.logger.Debug().
		Int("points", len(points)).
		Int("clusters", k).
		Float64("inertia", bestInertia).
		Msg("classified zone assignments")

	return out, nil
}
