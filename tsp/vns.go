// ABOUTME: Variable Neighborhood Search metaheuristic with k-shift kicks and 2-opt refinement
// ABOUTME: Falls back to a random perturbation when no neighborhood size k yields an improving kick

package tsp

import (
	"math/rand/v2"
	"time"
)

// VNSConfig tunes the kick-selection distribution used when no k-shift
// improves the local optimum.
type VNSConfig struct {
	// UniformPerturbation selects the perturbation's k uniformly at
	// random when true. When false, k is drawn biased toward cheaper
	// kicks (normalized inverse kick-cost weighting).
	UniformPerturbation bool
}

// RunVNS runs Variable Neighborhood Search starting from tour until
// deadline, reporting every improvement found to incumbent. Returns the
// best tour and cost found by this worker.
func RunVNS(in *Instance, tour Tour, cfg VNSConfig, incumbent *Registry, rng *rand.Rand, deadline time.Time) (Tour, float64) {
	n := in.N()
	localBest := tour.Clone()
	localCost := localBest.Cost(in)
	best, bestCost := localBest, localCost

	maxK := (n + 1) / 2

	for time.Now().Before(deadline) {
		improvedThisOuter := false

		for k := 1; k <= maxK; k++ {
			candidateTour, delta := bestKShift(in, localBest, k)
			if delta >= 0 {
				continue
			}

			succ, refinedCost := Refine(in, candidateTour.ToSucc())
			refinedTour := succ.ToSequence()

			// Only a kick that beats the global incumbent restarts the
			// neighborhood sweep; otherwise the next k is tried.
			if incumbent.Offer(refinedCost, refinedTour) {
				localBest = refinedTour
				localCost = refinedCost
				improvedThisOuter = true

				if refinedCost < bestCost {
					best, bestCost = refinedTour, refinedCost
				}

				break
			}
		}

		if !improvedThisOuter {
			localBest, localCost = perturb(in, localBest, cfg, rng)
		}
	}

	return best, bestCost
}

// bestKShift finds the position i minimizing the delta of swapping
// v[i] and v[(i+k) mod N], and returns the tour with that swap applied
// along with its delta (versus the input tour's cost). If k == 0 or no
// swap is possible it returns delta == 0.
func bestKShift(in *Instance, tour Tour, k int) (Tour, float64) {
	n := len(tour)
	bestI, bestDelta := -1, 0.0

	for i := range n {
		j := (i + k) % n
		if i == j {
			continue
		}

		delta := kShiftDelta(in, tour, i, j)
		if bestI == -1 || delta < bestDelta {
			bestI, bestDelta = i, delta
		}
	}

	if bestI == -1 {
		return tour.Clone(), 0
	}

	out := tour.Clone()
	j := (bestI + k) % n
	out[bestI], out[j] = out[j], out[bestI]

	return out, bestDelta
}

// kShiftDelta computes the change in cost from swapping tour[i] and
// tour[j], touching only the (up to four) incident edges rather than
// recomputing the whole tour.
func kShiftDelta(in *Instance, tour Tour, i, j int) float64 {
	n := len(tour)

	at := func(p int) int {
		switch p {
		case i:
			return tour[j]
		case j:
			return tour[i]
		default:
			return tour[p]
		}
	}

	edges := map[int]bool{
		(i - 1 + n) % n: true,
		i:                true,
		(j - 1 + n) % n: true,
		j:                true,
	}

	before, after := 0.0, 0.0
	for p := range edges {
		q := (p + 1) % n
		before += in.Dist(tour[p], tour[q])
		after += in.Dist(at(p), at(q))
	}

	return after - before
}

// perturb applies a single random swap to escape a VNS local optimum.
// Under uniform sampling, k is drawn from [0, N-2); k == 0 leaves the
// tour unchanged, an intentional occasional null perturbation. Under
// biased sampling, k is drawn from [1, N-2] weighted toward cheaper
// kicks.
func perturb(in *Instance, tour Tour, cfg VNSConfig, rng *rand.Rand) (Tour, float64) {
	n := len(tour)
	if n < 3 {
		return tour.Clone(), tour.Cost(in)
	}

	first := rng.IntN(n)

	var k int
	if cfg.UniformPerturbation {
		k = rng.IntN(n - 2)
	} else {
		k = biasedK(in, tour, first, rng)
	}

	out := tour.Clone()
	second := (first + k) % n
	out[first], out[second] = out[second], out[first]

	return out, out.Cost(in)
}

// biasedK samples a shift amount k in [1, N-2] with probability inversely
// proportional to the normalized cost of the resulting kick, so cheaper
// (less disruptive) perturbations are favored without ever being as
// deterministic as the VNS search step itself.
func biasedK(in *Instance, tour Tour, first int, rng *rand.Rand) int {
	n := len(tour)
	maxK := n - 2
	if maxK < 1 {
		return 0
	}

	deltas := make([]float64, maxK)
	minDelta := 0.0

	for k := 1; k <= maxK; k++ {
		j := (first + k) % n
		deltas[k-1] = kShiftDelta(in, tour, first, j)

		if deltas[k-1] < minDelta {
			minDelta = deltas[k-1]
		}
	}

	weights := make([]float64, maxK)
	sum := 0.0

	for i, d := range deltas {
		w := 1.0 / (d - minDelta + 1)
		weights[i] = w
		sum += w
	}

	r := rng.Float64() * sum
	acc := 0.0

	for i, w := range weights {
		acc += w
		if r <= acc {
			return i + 1
		}
	}

	return maxK
}
