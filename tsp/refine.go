// ABOUTME: Deterministic first-improvement 2-opt local search over the successor representation
// ABOUTME: Repeats full sweeps until none finds an improving move, the fixed-point definition of a local optimum

package tsp

// costEpsilon guards the 2-opt delta comparison against floating-point
// drift so equal-cost swaps never cause an infinite loop.
const costEpsilon = 1e-10

// Refine repeatedly sweeps all ordered node pairs (i, j) and applies the
// first improving 2-opt move it finds, restarting the sweep from the top
// every time a move is applied (first-improvement), until a full sweep
// finds nothing to improve. Returns the refined successor map and its
// total cost.
func Refine(in *Instance, succ Succ) (Succ, float64) {
	succ = succ.Clone()
	cost := succ.Cost(in)

	n := len(succ)
	if n < 4 {
		return succ, cost
	}

	for {
		improved := false

		for i := range n {
			i2 := succ[i]

			for j := range n {
				if i == j || j == i2 || succ[j] == i || succ[j] == i2 {
					continue
				}

				j2 := succ[j]
				delta := in.Dist(i, j) + in.Dist(i2, j2) - in.Dist(i, i2) - in.Dist(j, j2)

				if delta < -costEpsilon {
					apply2optSwap(succ, i, j)
					cost += delta
					improved = true

					break
				}
			}

			if improved {
				break
			}
		}

		if !improved {
			break
		}
	}

	return succ, cost
}

// apply2optSwap removes edges (i, succ[i]) and (j, succ[j]) and reconnects
// as (i, j) and (succ[i], succ[j]), reversing the path from succ[i] to j.
func apply2optSwap(succ Succ, i, j int) {
	i2 := succ[i]
	j2 := succ[j]

	path := []int{i2}
	for path[len(path)-1] != j {
		path = append(path, succ[path[len(path)-1]])
	}

	for k := len(path) - 1; k > 0; k-- {
		succ[path[k]] = path[k-1]
	}

	succ[i] = j
	succ[i2] = j2
}
