package zones

import (
	"math"
	"math/rand"
)

// kmeans runs Lloyd's algorithm with k-means++ style seeding from the given
// random source. It returns the assignment of each observation to a cluster
// in [0, k) together with the run's inertia (sum of squared distances to the
// assigned centroid).
//
// All randomness flows through rng, so a fixed seed makes the result
// reproducible for identical inputs.
func kmeans(obs [][2]float64, k int, rng *rand.Rand, maxIter int) ([]int, float64) {
	centroids := seedCentroids(obs, k, rng)
	assignments := make([]int, len(obs))

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, o := range obs {
			best := nearestCentroid(o, centroids)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}

		recomputeCentroids(obs, assignments, centroids, rng)

		if !changed && iter > 0 {
			break
		}
	}

	return assignments, inertia(obs, assignments, centroids)
}

// seedCentroids picks k initial centroids, weighting later picks toward
// observations far from the centroids chosen so far.
func seedCentroids(obs [][2]float64, k int, rng *rand.Rand) [][2]float64 {
	centroids := make([][2]float64, 0, k)
	centroids = append(centroids, obs[rng.Intn(len(obs))])

	for len(centroids) < k {
		weights := make([]float64, len(obs))
		total := 0.0
		for i, o := range obs {
			d := math.Inf(1)
			for _, c := range centroids {
				if sq := sqDist(o, c); sq < d {
					d = sq
				}
			}
			weights[i] = d
			total += d
		}

		if total == 0 {
			// All observations coincide with a centroid; any pick works.
			centroids = append(centroids, obs[rng.Intn(len(obs))])
			continue
		}

		target := rng.Float64() * total
		acc := 0.0
		pick := len(obs) - 1
		for i, w := range weights {
			acc += w
			if acc >= target {
				pick = i
				break
			}
		}
		centroids = append(centroids, obs[pick])
	}

	return centroids
}

func nearestCentroid(o [2]float64, centroids [][2]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		if d := sqDist(o, c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// recomputeCentroids moves each centroid to the mean of its members. An
// empty cluster is re-seeded from a random observation so k is preserved.
func recomputeCentroids(obs [][2]float64, assignments []int, centroids [][2]float64, rng *rand.Rand) {
	sums := make([][2]float64, len(centroids))
	counts := make([]int, len(centroids))

	for i, o := range obs {
		c := assignments[i]
		sums[c][0] += o[0]
		sums[c][1] += o[1]
		counts[c]++
	}

	for i := range centroids {
		if counts[i] == 0 {
			centroids[i] = obs[rng.Intn(len(obs))]
			continue
		}
		centroids[i][0] = sums[i][0] / float64(counts[i])
		centroids[i][1] = sums[i][1] / float64(counts[i])
	}
}

func inertia(obs [][2]float64, assignments []int, centroids [][2]float64) float64 {
	total := 0.0
	for i, o := range obs {
		total += sqDist(o, centroids[assignments[i]])
	}
	return total
}

func sqDist(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}
