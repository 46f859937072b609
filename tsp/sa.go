// ABOUTME: Simulated Annealing metaheuristic with a magnitude-factored acceptance rule
// ABOUTME: Keeps the exp(-delta/t) factoring exact for large delta/t ratios without overflow

package tsp

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	saAlpha = 0.99
	saTMax  = 5000.0
	saTMin  = 100.0
)

// RunSA runs Simulated Annealing starting from tour until deadline.
func RunSA(in *Instance, tour Tour, incumbent *Registry, rng *rand.Rand, deadline time.Time) (Tour, float64) {
	n := in.N()
	current := tour.Clone()
	cost := current.Cost(in)

	outer := 0

	for time.Now().Before(deadline) {
		t := math.Pow(saAlpha, float64(outer))*saTMax + saTMin
		if t-saTMin < 0.1 {
			outer = 0
			t = saTMax + saTMin
		}

		for {
			i1 := rng.IntN(n)
			offset := 1 + rng.IntN(2)
			i2 := (i1 + offset) % n

			delta := kShiftDelta(in, current, i1, i2)

			if delta < 0 {
				current[i1], current[i2] = current[i2], current[i1]
				cost += delta

				succ, refinedCost := Refine(in, current.ToSucc())
				current = succ.ToSequence()

				if refinedCost < cost {
					cost = refinedCost
				}

				incumbent.Offer(cost, current)

				continue
			}

			if acceptWorsening(delta, t, rng) {
				current[i1], current[i2] = current[i2], current[i1]
				cost += delta

				break
			}
		}

		outer++
	}

	return current, cost
}

// acceptWorsening decides whether to accept a worsening move of size
// delta at temperature t. exp(delta/t) is factored as exp(x)^m * exp(rem)
// with x = ln(10) so the comparison stays tractable even when delta/t is
// large: m independent Bernoulli(1/10) trials must all succeed (modeling
// the (1/10)^m = exp(-m*x) factor), and then a uniform draw must fall
// below 1/c (modeling the exp(-rem) factor), giving overall acceptance
// probability (1/10)^m * (1/c) == exp(-delta/t).
func acceptWorsening(delta, t float64, rng *rand.Rand) bool {
	x := math.Log(10)
	ratio := delta / t
	m := int(math.Floor(ratio / x))
	rem := ratio - float64(m)*x
	c := math.Exp(rem)

	for range m {
		if rng.Float64() >= 0.1 {
			return false
		}
	}

	return rng.Float64() < 1/c
}
