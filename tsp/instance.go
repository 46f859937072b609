// ABOUTME: Problem instance and distance oracle for the symmetric TSP
// ABOUTME: Provides the O(1) pure distance query consumed by every other package file

// Package tsp implements the search pipeline for the symmetric Traveling
// Salesman Problem: constructive heuristics, a 2-opt refiner, four
// metaheuristics (VNS, Tabu Search, Simulated Annealing, a steady-state
// Genetic Algorithm), and a multi-start parallel driver that reconciles a
// single global incumbent under a wall-clock deadline.
package tsp

import "math"

// Instance is an immutable complete graph over N points in the plane.
// Instances are created once and consumed by the Driver; nothing in this
// package mutates an Instance after NewInstance returns.
type Instance struct {
	x, y        []float64
	integerMode bool
}

// NewInstance builds an Instance from parallel coordinate arrays. integerMode
// selects nearest-integer-rounded Euclidean distances instead of exact ones.
//
// Returns InvalidConfig if N < 3 or the coordinate arrays have mismatched
// lengths.
func NewInstance(x, y []float64, integerMode bool) (*Instance, error) {
	if len(x) != len(y) {
		return nil, invalidConfigf("coordinate arrays have different lengths: %d vs %d", len(x), len(y))
	}
	if len(x) < 3 {
		return nil, invalidConfigf("need at least 3 nodes, got %d", len(x))
	}

	return &Instance{
		x:           append([]float64(nil), x...),
		y:           append([]float64(nil), y...),
		integerMode: integerMode,
	}, nil
}

// N returns the number of nodes in the instance.
func (in *Instance) N() int { return len(in.x) }

// IntegerMode reports whether distances are rounded to the nearest integer.
func (in *Instance) IntegerMode() bool { return in.integerMode }

// Dist returns the cost of the edge between nodes i and j. It is pure,
// symmetric, and Dist(i, i) == 0. Callers compute it on demand; no caching
// is performed here.
func (in *Instance) Dist(i, j int) float64 {
	dx := in.x[i] - in.x[j]
	dy := in.y[i] - in.y[j]
	d := math.Sqrt(dx*dx + dy*dy)

	if in.integerMode {
		return math.Round(d)
	}

	return d
}

// X returns the x coordinate of node i.
func (in *Instance) X(i int) float64 { return in.x[i] }

// Y returns the y coordinate of node i.
func (in *Instance) Y(i int) float64 { return in.y[i] }
