// ABOUTME: Tests for the shared incumbent registry

package tsp

import (
	"sync"
	"testing"
)

func TestNewRegistryStartsAtPositiveInfinity(t *testing.T) {
	r := NewRegistry()

	cost, tour := r.Best()
	if cost != posInf {
		t.Errorf("initial cost = %v, want +Inf stand-in %v", cost, posInf)
	}
	if tour != nil {
		t.Errorf("initial tour = %v, want nil", tour)
	}
}

func TestOfferOnlyAcceptsStrictImprovements(t *testing.T) {
	r := NewRegistry()

	if !r.Offer(100, Tour{0, 1, 2}) {
		t.Fatal("expected the first Offer to improve the +Inf incumbent")
	}

	if r.Offer(100, Tour{2, 1, 0}) {
		t.Error("expected an equal-cost Offer to be rejected")
	}

	if r.Offer(150, Tour{1, 0, 2}) {
		t.Error("expected a worse-cost Offer to be rejected")
	}

	if !r.Offer(50, Tour{1, 2, 0}) {
		t.Error("expected a strictly better Offer to be accepted")
	}

	cost, tour := r.Best()
	if cost != 50 {
		t.Errorf("Best() cost = %v, want 50", cost)
	}
	if got := (Tour{1, 2, 0}); !tourEqual(tour, got) {
		t.Errorf("Best() tour = %v, want %v", tour, got)
	}
}

func TestOfferDoesNotAliasCallerTour(t *testing.T) {
	r := NewRegistry()
	tour := Tour{0, 1, 2}

	r.Offer(10, tour)
	tour[0] = 99

	_, stored := r.Best()
	if stored[0] == 99 {
		t.Error("Offer aliased the caller's tour slice")
	}
}

func TestBestReturnsACopyNotAnAlias(t *testing.T) {
	r := NewRegistry()
	r.Offer(10, Tour{0, 1, 2})

	_, tour := r.Best()
	tour[0] = 99

	_, again := r.Best()
	if again[0] == 99 {
		t.Error("Best() returned an alias to the stored tour")
	}
}

func TestGeneticAggregatesRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.SetGeneticAggregates(12.5, 3.25, 7)

	sumFitness, sumInverseProb, bestIndex := r.GeneticAggregates()
	if sumFitness != 12.5 || sumInverseProb != 3.25 || bestIndex != 7 {
		t.Errorf("GeneticAggregates() = (%v, %v, %v), want (12.5, 3.25, 7)", sumFitness, sumInverseProb, bestIndex)
	}
}

func TestOfferIsConcurrencySafe(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(cost float64) {
			defer wg.Done()
			r.Offer(cost, Tour{0, 1, 2})
		}(float64(100 - i))
	}
	wg.Wait()

	cost, _ := r.Best()
	if cost != 1 {
		t.Errorf("Best() cost = %v, want 1 (the smallest offered cost)", cost)
	}
}

func tourEqual(a, b Tour) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
