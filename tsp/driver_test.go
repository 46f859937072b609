// ABOUTME: Tests for Config validation and the multi-start driver

package tsp

import (
	"errors"
	"math"
	"testing"
	"time"
)

func baseDriverConfig() Config {
	return Config{
		Algorithm:       VNS,
		Construction:    NearestNeighborhood,
		MultiStart:      2,
		DeadlineSeconds: 0.05,
		Seed:            1,
	}
}

func TestConfigValidateRejectsTooFewNodes(t *testing.T) {
	cfg := baseDriverConfig()

	err := cfg.Validate(2)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate(2) = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigValidateRejectsZeroMultiStart(t *testing.T) {
	cfg := baseDriverConfig()
	cfg.MultiStart = 0

	if err := cfg.Validate(5); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate with MultiStart=0 = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigValidateRejectsNonPositiveDeadline(t *testing.T) {
	cfg := baseDriverConfig()
	cfg.DeadlineSeconds = 0

	if err := cfg.Validate(5); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate with DeadlineSeconds=0 = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigValidateRejectsUnknownAlgorithm(t *testing.T) {
	cfg := baseDriverConfig()
	cfg.Algorithm = Algorithm(99)

	if err := cfg.Validate(5); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate with unknown algorithm = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigValidateAcceptsAValidConfig(t *testing.T) {
	cfg := baseDriverConfig()

	if err := cfg.Validate(4); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestDriverSolveReturnsValidTourForEachAlgorithm(t *testing.T) {
	in := squareInstance(t)

	algorithms := []Algorithm{VNS, Tabu, SA, Genetic}

	for _, alg := range algorithms {
		cfg := baseDriverConfig()
		cfg.Algorithm = alg
		cfg.PopulationSize = 6
		cfg.WorstBatch = 2

		d := &Driver{}
		result, err := d.Solve(in, cfg)
		if err != nil {
			t.Fatalf("algorithm %v: Solve() error = %v", alg, err)
		}

		if !result.Tour.IsPermutation(in.N()) {
			t.Errorf("algorithm %v: result tour %v is not a valid permutation", alg, result.Tour)
		}

		if got := result.Tour.Cost(in); math.Abs(got-result.Cost) > 1e-9 {
			t.Errorf("algorithm %v: reported cost %v does not match recomputed cost %v", alg, result.Cost, got)
		}
	}
}

func TestDriverSolveInvokesOnWaveForEveryWave(t *testing.T) {
	in := squareInstance(t)
	cfg := baseDriverConfig()
	cfg.FixedTimeMode = true
	cfg.DeadlineSeconds = 0.08

	waves := 0
	d := &Driver{
		OnWave: func(wave int, elapsed time.Duration, cost float64) {
			waves++
		},
	}

	if _, err := d.Solve(in, cfg); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if waves < 1 {
		t.Error("expected OnWave to be called at least once")
	}
}

func TestDriverSolveIsDeterministicWithFixedSeedAndSingleWorker(t *testing.T) {
	in := squareInstance(t)
	cfg := baseDriverConfig()
	cfg.MultiStart = 1
	cfg.Seed = 42
	// A vanishingly small deadline guarantees the metaheuristic loop never
	// executes a single iteration on either run, so both runs reduce to
	// just Construct+Refine from the same seed: deterministic without
	// depending on wall-clock scheduling variance.
	cfg.DeadlineSeconds = 1e-9

	d1 := &Driver{}
	r1, err := d1.Solve(in, cfg)
	if err != nil {
		t.Fatalf("first Solve() error = %v", err)
	}

	d2 := &Driver{}
	r2, err := d2.Solve(in, cfg)
	if err != nil {
		t.Fatalf("second Solve() error = %v", err)
	}

	if r1.Cost != r2.Cost {
		t.Errorf("same seed produced different costs: %v vs %v", r1.Cost, r2.Cost)
	}
	if len(r1.Tour) != len(r2.Tour) {
		t.Fatalf("tour length mismatch: %d vs %d", len(r1.Tour), len(r2.Tour))
	}
	for i := range r1.Tour {
		if r1.Tour[i] != r2.Tour[i] {
			t.Errorf("same seed produced different tours at position %d: %d vs %d", i, r1.Tour[i], r2.Tour[i])
			break
		}
	}
}

func TestDriverSolveRejectsInvalidConfig(t *testing.T) {
	in := squareInstance(t)
	cfg := baseDriverConfig()
	cfg.MultiStart = 0

	d := &Driver{}
	if _, err := d.Solve(in, cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Solve() with invalid config = %v, want ErrInvalidConfig", err)
	}
}

func TestSolveTriangleReturnsPerimeterForEveryAlgorithm(t *testing.T) {
	// A 3-4-5 right triangle has exactly one tour: its perimeter, cost 12
	// in integer mode.
	in, err := NewInstance([]float64{0, 3, 0}, []float64{0, 0, 4}, true)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}

	for _, alg := range []Algorithm{VNS, Tabu, SA, Genetic} {
		cfg := baseDriverConfig()
		cfg.Algorithm = alg
		cfg.IntegerMode = true
		cfg.PopulationSize = 4
		cfg.WorstBatch = 2

		d := &Driver{}
		result, err := d.Solve(in, cfg)
		if err != nil {
			t.Fatalf("algorithm %v: Solve() error = %v", alg, err)
		}

		if result.Cost != 12 {
			t.Errorf("algorithm %v: cost = %v, want 12", alg, result.Cost)
		}
	}
}

func TestSolveGridReachesPerimeterMinimalTour(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 1s end-to-end search in short mode")
	}

	// A 3x4 unit grid admits a Hamiltonian cycle of all unit steps, so the
	// optimum is exactly 12.
	var xs, ys []float64
	for r := range 3 {
		for c := range 4 {
			xs = append(xs, float64(c))
			ys = append(ys, float64(r))
		}
	}

	in, err := NewInstance(xs, ys, false)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}

	cfg := baseDriverConfig()
	cfg.MultiStart = 4
	cfg.FixedTimeMode = true
	cfg.DeadlineSeconds = 1

	d := &Driver{}
	result, err := d.Solve(in, cfg)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if math.Abs(result.Cost-12) > 1e-9 {
		t.Errorf("grid cost = %v, want the perimeter-minimal 12", result.Cost)
	}
}
