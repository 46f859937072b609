// ABOUTME: The single mutex-guarded global incumbent shared by all search workers
// ABOUTME: Also carries the Genetic algorithm's cross-worker aggregates (sumFitness, sumInverseProb, bestIndex)

package tsp

import (
	"math"
	"sync"
)

// Registry holds the best tour found so far and, in Genetic mode, the
// population aggregates that must stay consistent across worker updates.
// Exactly one mutex guards all of it; workers hold it only for the
// duration of an O(N) compare-and-copy.
type Registry struct {
	mu   sync.Mutex
	cost float64
	tour Tour

	// Genetic-only aggregates.
	sumFitness     float64
	sumInverseProb float64
	bestIndex      int
}

// NewRegistry creates an empty incumbent, initialized to +Inf so any
// finite first offer always wins.
func NewRegistry() *Registry {
	return &Registry{cost: posInf}
}

var posInf = math.Inf(1)

// Best returns a copy of the current best cost and tour. The tour is nil
// until the first successful Offer.
func (r *Registry) Best() (float64, Tour) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tour == nil {
		return r.cost, nil
	}

	return r.cost, r.tour.Clone()
}

// Offer updates the incumbent if cost is strictly better than the current
// best. The tour is copied in under the lock; it is never aliased to the
// caller's working tour. Returns whether the incumbent was updated.
func (r *Registry) Offer(cost float64, tour Tour) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cost < r.cost {
		r.cost = cost
		r.tour = tour.Clone()

		return true
	}

	return false
}

// GeneticAggregates returns the shared population aggregates (Genetic mode only).
func (r *Registry) GeneticAggregates() (sumFitness, sumInverseProb float64, bestIndex int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sumFitness, r.sumInverseProb, r.bestIndex
}

// SetGeneticAggregates updates the shared population aggregates (Genetic mode only).
func (r *Registry) SetGeneticAggregates(sumFitness, sumInverseProb float64, bestIndex int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sumFitness = sumFitness
	r.sumInverseProb = sumInverseProb
	r.bestIndex = bestIndex
}
