// ABOUTME: Tests for the Tabu Search metaheuristic and its tabu buffer

package tsp

import (
	"math"
	"testing"
	"time"
)

func TestTabuBufferIsTabuFindsEdgeRegardlessOfOrder(t *testing.T) {
	tb := newTabuBuffer(4, 2, false)
	tb.push(1, 2)

	if !tb.isTabu(1, 2) {
		t.Error("expected (1, 2) to be tabu")
	}
	if !tb.isTabu(2, 1) {
		t.Error("expected the reverse pair (2, 1) to also be tabu (edges are unordered)")
	}
	if tb.isTabu(1, 3) {
		t.Error("did not expect an unrelated edge to be tabu")
	}
}

func TestTabuBufferFixedNeverExceedsMaxTenure(t *testing.T) {
	maxTenure := 3
	tb := newTabuBuffer(maxTenure, 1, false)

	for i := range 10 {
		tb.push(i, i+1)

		if tb.count > maxTenure {
			t.Fatalf("after %d pushes, count = %d, want <= %d", i+1, tb.count, maxTenure)
		}
	}
}

func TestTabuBufferFixedEvictsOldestEntry(t *testing.T) {
	tb := newTabuBuffer(2, 1, false)

	tb.push(0, 1)
	tb.push(2, 3)
	tb.push(4, 5) // should evict (0, 1)

	if tb.isTabu(0, 1) {
		t.Error("expected the oldest entry (0, 1) to have been evicted")
	}
	if !tb.isTabu(2, 3) || !tb.isTabu(4, 5) {
		t.Error("expected the two most recent entries to remain tabu")
	}
}

func TestTabuBufferReactiveNeverExceedsMaxTenure(t *testing.T) {
	maxTenure := 5
	tb := newTabuBuffer(maxTenure, 2, true)

	for i := range 30 {
		tb.push(i, i+1)

		if tb.count > maxTenure {
			t.Fatalf("after %d pushes, count = %d, want <= %d", i+1, tb.count, maxTenure)
		}
	}
}

func TestDiversificationMoveSkipsDoublyTabuMoves(t *testing.T) {
	in := squareInstance(t)
	succ := Tour{0, 1, 2, 3}.ToSucc()

	tb := newTabuBuffer(8, 2, false)

	// Make every edge of the tour tabu; diversificationMove must then
	// report ok == false since no move has at least one non-tabu edge.
	n := len(succ)
	for i := range n {
		tb.push(i, succ[i])
	}

	_, _, _, ok := diversificationMove(in, succ, tb)
	if ok {
		t.Error("expected no legal move when every edge is tabu")
	}
}

func TestDiversificationMoveAllowsHalfTabuMoves(t *testing.T) {
	in := squareInstance(t)
	succ := Tour{0, 1, 2, 3}.ToSucc()

	tb := newTabuBuffer(8, 2, false)
	// Tabu only one edge; moves involving the other removed edge should
	// still be legal as long as both removed edges aren't tabu together.
	tb.push(0, succ[0])

	_, bi, bj, ok := diversificationMove(in, succ, tb)
	if !ok {
		t.Fatal("expected a legal move to exist with only one edge tabu")
	}

	if tb.isTabu(bi, succ[bi]) && tb.isTabu(bj, succ[bj]) {
		t.Errorf("chosen move (%d, %d) has both removed edges tabu", bi, bj)
	}
}

func TestRunTabuProducesValidTourAndConsistentCost(t *testing.T) {
	in := squareInstance(t)
	start := Tour{0, 2, 1, 3}

	incumbent := NewRegistry()
	deadline := time.Now().Add(20 * time.Millisecond)

	tour, cost := RunTabu(in, start, false, incumbent, deadline)

	if !tour.IsPermutation(in.N()) {
		t.Fatalf("RunTabu returned an invalid tour %v", tour)
	}

	if got := tour.Cost(in); math.Abs(got-cost) > 1e-9 {
		t.Errorf("reported cost %v does not match recomputed cost %v", cost, got)
	}

	bestCost, bestTour := incumbent.Best()
	if !bestTour.IsPermutation(in.N()) {
		t.Errorf("incumbent tour %v is not a valid permutation", bestTour)
	}
	if bestCost > start.Cost(in) {
		t.Errorf("incumbent cost %v is worse than the starting cost %v", bestCost, start.Cost(in))
	}
}

func TestRunTabuReactivePolicyAlsoProducesValidTour(t *testing.T) {
	in := squareInstance(t)
	start := Tour{0, 2, 1, 3}

	incumbent := NewRegistry()
	deadline := time.Now().Add(20 * time.Millisecond)

	tour, _ := RunTabu(in, start, true, incumbent, deadline)

	if !tour.IsPermutation(in.N()) {
		t.Fatalf("RunTabu (reactive) returned an invalid tour %v", tour)
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct{ n, d, want int }{
		{10, 5, 2},
		{11, 5, 3},
		{1, 10, 1},
		{0, 5, 0},
	}

	for _, tt := range tests {
		if got := ceilDiv(tt.n, tt.d); got != tt.want {
			t.Errorf("ceilDiv(%d, %d) = %d, want %d", tt.n, tt.d, got, tt.want)
		}
	}
}
