// ABOUTME: Multi-start driver spawning W parallel workers per wave against a single incumbent
// ABOUTME: Either joins once or keeps spawning fresh waves until the overall deadline, per config

package tsp

import (
	"time"

	"tspsolver/pool"
)

// Algorithm selects which metaheuristic each worker runs.
type Algorithm int

const (
	VNS Algorithm = iota
	Tabu
	SA
	Genetic
)

// stepSeed spreads consecutive worker/wave indices across the seed space
// so workers sharing a base seed still draw independent streams.
const stepSeed = 104729

// Config configures a single Solve call: the external interface through
// which an algorithm choice, construction method, and run-control
// parameters reach the driver.
type Config struct {
	Algorithm           Algorithm
	Construction        ConstructionMethod
	GRASP               bool
	MultiStart          int
	FixedTimeMode       bool
	UniformPerturbation bool
	ReactiveTenure      bool
	IntegerMode         bool
	DeadlineSeconds     float64
	Seed                int64
	PopulationSize      int
	WorstBatch          int
}

// Result is what Solve returns: the best tour and cost found, elapsed
// time, and an optional informational note (never an error).
type Result struct {
	Cost    float64
	Tour    Tour
	Elapsed time.Duration
	Note    string
}

// Driver runs the multi-start search: W workers per wave race against a
// shared deadline and reconcile through a single incumbent.
type Driver struct {
	// OnWave, if set, is called after every wave completes with the wave
	// index, elapsed time since Solve started, and the current incumbent
	// cost. CLI and TUI layers both subscribe through it without the
	// driver depending on either.
	OnWave func(wave int, elapsed time.Duration, cost float64)
}

// Validate checks for configurations that can never produce a valid
// search (see ErrInvalidConfig).
func (cfg Config) Validate(n int) error {
	if n < 3 {
		return invalidConfigf("need at least 3 nodes, got %d", n)
	}
	if cfg.MultiStart < 1 {
		return invalidConfigf("multiStart must be >= 1, got %d", cfg.MultiStart)
	}
	if cfg.DeadlineSeconds <= 0 {
		return invalidConfigf("deadlineSeconds must be > 0, got %g", cfg.DeadlineSeconds)
	}
	switch cfg.Algorithm {
	case VNS, Tabu, SA, Genetic:
	default:
		return invalidConfigf("unknown algorithm %v", cfg.Algorithm)
	}

	return nil
}

// Solve runs the configured metaheuristic across cfg.MultiStart workers
// until the deadline, returning the best tour found across every worker
// and wave.
func (d *Driver) Solve(in *Instance, cfg Config) (Result, error) {
	start := time.Now()
	if err := cfg.Validate(in.N()); err != nil {
		return Result{}, err
	}

	deadline := start.Add(time.Duration(cfg.DeadlineSeconds * float64(time.Second)))
	incumbent := NewRegistry()

	if cfg.Algorithm == Genetic {
		d.solveGenetic(in, cfg, incumbent, start, deadline)
	} else {
		d.solveWaves(in, cfg, incumbent, start, deadline)
	}

	cost, tour := incumbent.Best()
	if tour != nil {
		// Normalize to the visit order starting at node 0; swap-based
		// moves can leave the incumbent rotated.
		tour = tour.ToSucc().ToSequence()
	}

	note := ""
	if cost >= posInf {
		note = "no improvement found over the initial construction"
	}

	return Result{
		Cost:    cost,
		Tour:    tour,
		Elapsed: time.Since(start),
		Note:    note,
	}, nil
}

// solveGenetic runs the Genetic algorithm once: its parallel phase is the
// population initialization, where the W workers each build a share of the
// members, after which a single epoch loop consumes the remaining budget.
func (d *Driver) solveGenetic(in *Instance, cfg Config, incumbent *Registry, start time.Time, deadline time.Time) {
	rng := newRand(workerSeed(cfg.Seed, 0, 0))

	gcfg := GeneticConfig{
		PopulationSize: cfg.PopulationSize,
		WorstBatch:     cfg.WorstBatch,
		Workers:        cfg.MultiStart,
	}

	best, bestCost := RunGenetic(in, gcfg, incumbent, rng, deadline)
	incumbent.Offer(bestCost, best)

	if d.OnWave != nil {
		cost, _ := incumbent.Best()
		d.OnWave(1, time.Since(start), cost)
	}
}

// solveWaves runs the non-genetic algorithms: W independent workers per
// wave, each taking its own constructive start through refinement and the
// configured metaheuristic.
func (d *Driver) solveWaves(in *Instance, cfg Config, incumbent *Registry, start time.Time, deadline time.Time) {
	w := cfg.MultiStart
	wp := pool.NewWorkerPool(w)
	defer wp.Close()

	wave := 0
	for {
		// Every wave's workers race against the same overall deadline,
		// not a per-wave slice: in fixedTimeMode the driver just keeps
		// spawning fresh waves until that deadline passes.
		waveDeadline := deadline

		for wkr := range w {
			wp.Submit(func() {
				runWorker(in, cfg, workerSeed(cfg.Seed, wkr, wave), incumbent, waveDeadline)
			})
		}

		wp.Wait()
		wave++

		cost, _ := incumbent.Best()
		if d.OnWave != nil {
			d.OnWave(wave, time.Since(start), cost)
		}

		if !cfg.FixedTimeMode || !time.Now().Before(deadline) {
			break
		}
	}
}

// workerSeed diversifies the base seed across workers and waves. Seed 0
// stays 0 so every worker falls through to a time-based stream.
func workerSeed(seed int64, wkr, wave int) int64 {
	if seed == 0 {
		return 0
	}

	return seed*stepSeed + int64(wkr+1+wave)
}

// runWorker builds a starting tour, refines it, then runs the configured
// metaheuristic, reporting improvements to incumbent throughout.
func runWorker(in *Instance, cfg Config, seed int64, incumbent *Registry, deadline time.Time) {
	rng := newRand(seed)
	start := rng.IntN(in.N())

	tour := Construct(in, cfg.Construction, start, cfg.GRASP, rng)
	succ, cost := Refine(in, tour.ToSucc())
	tour = succ.ToSequence()

	incumbent.Offer(cost, tour)

	switch cfg.Algorithm {
	case VNS:
		vnsCfg := VNSConfig{UniformPerturbation: cfg.UniformPerturbation}
		best, bestCost := RunVNS(in, tour, vnsCfg, incumbent, rng, deadline)
		incumbent.Offer(bestCost, best)
	case Tabu:
		best, bestCost := RunTabu(in, tour, cfg.ReactiveTenure, incumbent, deadline)
		incumbent.Offer(bestCost, best)
	case SA:
		best, bestCost := RunSA(in, tour, incumbent, rng, deadline)
		incumbent.Offer(bestCost, best)
	}
}
