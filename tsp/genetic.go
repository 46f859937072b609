// ABOUTME: Steady-state Genetic Algorithm over tour permutations
// ABOUTME: Order crossover + fixed-halves reversal mutation, roulette selection on inverse fitness

package tsp

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"time"

	"tspsolver/pool"
)

// GeneticConfig tunes population size, the worst-batch replacement size,
// and how many workers build the initial population in parallel.
type GeneticConfig struct {
	PopulationSize int
	WorstBatch     int // K = NUM_WORST_MEMBERS
	Workers        int // parallel population initializers; <= 0 means one per CPU
}

// population is the steady-state GA's working set, plus the running
// aggregates that must stay in sync after every crossover/mutation.
type population struct {
	members []Tour
	fitness []float64 // cost; lower is better

	sumFitness     float64
	sumInverseProb float64 // Σ 1000/fitness_i
	bestIndex      int

	worstIndices []int // the K members to replace, ascending by fitness
	worstBatch   int   // K
	cursor       int   // next worst-slot to replace
}

// RunGenetic runs the steady-state Genetic Algorithm until deadline,
// reporting the population's best tour to incumbent as it improves.
// Parallel workers are only used to build the initial population; the
// epoch loop itself is single-threaded.
func RunGenetic(in *Instance, cfg GeneticConfig, incumbent *Registry, rng *rand.Rand, deadline time.Time) (Tour, float64) {
	pop := initPopulation(in, cfg, rng)
	pop.refreshWorst()
	pop.updateIncumbent(incumbent)

	epoch := 0
	for time.Now().Before(deadline) {
		if epoch%5 == 0 {
			pop.crossoverEpoch(in, cfg, rng)
		} else {
			pop.mutationEpoch(in, cfg, rng)
		}

		pop.updateIncumbent(incumbent)
		epoch++
	}

	return pop.members[pop.bestIndex], pop.fitness[pop.bestIndex]
}

// initPopulation builds cfg.PopulationSize members in parallel across
// pool.WorkerPool workers, each constructing via NN from a distinct seed
// and refining with 2-opt.
func initPopulation(in *Instance, cfg GeneticConfig, rng *rand.Rand) *population {
	p := cfg.PopulationSize
	if p < 1 {
		p = 1
	}

	members := make([]Tour, p)
	fitness := make([]float64, p)

	wp := pool.NewWorkerPool(cfg.Workers)
	defer wp.Close()

	seeds := make([]uint64, p)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	for i := range p {
		i := i

		wp.Submit(func() {
			workerRng := rand.New(rand.NewPCG(seeds[i], seeds[i]^goldenGamma))
			start := workerRng.IntN(in.N())
			tour := Construct(in, NearestNeighborhood, start, false, workerRng)
			succ, cost := Refine(in, tour.ToSucc())
			members[i] = succ.ToSequence()
			fitness[i] = cost
		})
	}

	wp.Wait()

	k := cfg.WorstBatch
	if k < 1 {
		k = 1
	}

	pop := &population{members: members, fitness: fitness, worstBatch: k}
	for _, f := range fitness {
		pop.sumFitness += f
		pop.sumInverseProb += 1000.0 / f
	}

	pop.bestIndex = 0
	for i, f := range fitness {
		if f < fitness[pop.bestIndex] {
			pop.bestIndex = i
		}
	}

	return pop
}

func (pop *population) updateIncumbent(incumbent *Registry) {
	if incumbent.Offer(pop.fitness[pop.bestIndex], pop.members[pop.bestIndex]) {
		incumbent.SetGeneticAggregates(pop.sumFitness, pop.sumInverseProb, pop.bestIndex)
	}
}

// refreshWorst scans the population and fills worstIndices with the K
// members of highest fitness (worst tours), ascending by fitness so the
// single worst member sits last. Called initially and whenever the
// replacement cursor wraps.
func (pop *population) refreshWorst() {
	k := pop.worstBatch
	if k < 1 {
		k = 1
	}
	if k > len(pop.members) {
		k = len(pop.members)
	}

	idx := make([]int, len(pop.members))
	for i := range idx {
		idx[i] = i
	}

	slices.SortFunc(idx, func(a, b int) int { return cmp.Compare(pop.fitness[b], pop.fitness[a]) })

	worst := idx[:k]
	slices.SortFunc(worst, func(a, b int) int { return cmp.Compare(pop.fitness[a], pop.fitness[b]) })

	pop.worstIndices = append(pop.worstIndices[:0], worst...)
	pop.cursor = 0
}

// nextWorstSlot returns the population index of the next member to
// replace, refreshing the worst-set when the cursor wraps.
func (pop *population) nextWorstSlot() int {
	if pop.cursor >= len(pop.worstIndices) {
		pop.refreshWorst()
	}

	slot := pop.worstIndices[pop.cursor]
	pop.cursor++

	return slot
}

// selectParent draws a parent by roulette on inverse fitness: a uniform
// r in [0, sumInverseProb*100000) walks the population accumulating
// 100000000/(sumInverseProb*fitness_j) until the accumulator exceeds r.
func (pop *population) selectParent(rng *rand.Rand) int {
	r := rng.Float64() * pop.sumInverseProb * 100000

	acc := 0.0
	for i, f := range pop.fitness {
		acc += 100000000 / (pop.sumInverseProb * f)
		if acc > r {
			return i
		}
	}

	return len(pop.fitness) - 1
}

func (pop *population) replace(slot int, tour Tour, cost float64) {
	old := pop.fitness[slot]
	pop.sumFitness += cost - old
	pop.sumInverseProb += 1000.0/cost - 1000.0/old

	pop.members[slot] = tour
	pop.fitness[slot] = cost

	if cost < pop.fitness[pop.bestIndex] {
		pop.bestIndex = slot
	} else if pop.bestIndex == slot {
		pop.bestIndex = 0
		for i, f := range pop.fitness {
			if f < pop.fitness[pop.bestIndex] {
				pop.bestIndex = i
			}
		}
	}
}

// crossoverEpoch runs K/2 order-crossover pairs, each producing two
// offspring.
func (pop *population) crossoverEpoch(in *Instance, cfg GeneticConfig, rng *rand.Rand) {
	k := cfg.WorstBatch
	if k < 2 {
		k = 2
	}

	for pair := 0; pair < k/2; pair++ {
		a := pop.members[pop.selectParent(rng)]
		b := pop.members[pop.selectParent(rng)]

		off1 := orderCrossover(a, b)
		off2 := orderCrossoverFront(b, a)

		for _, off := range [2]Tour{off1, off2} {
			succ, cost := Refine(in, off.ToSucc())
			pop.replace(pop.nextWorstSlot(), succ.ToSequence(), cost)
		}
	}
}

// orderCrossover builds one offspring: copy donorA's positions [N/2, N),
// then fill [0, N/2) by scanning donorB and taking each node not already
// placed, preserving donorB's relative order.
func orderCrossover(donorA, donorB Tour) Tour {
	n := len(donorA)
	half := n / 2

	off := make(Tour, n)
	used := make([]bool, n)

	for i := half; i < n; i++ {
		off[i] = donorA[i]
		used[donorA[i]] = true
	}

	pos := 0
	for _, node := range donorB {
		if pos == half {
			break
		}

		if !used[node] {
			off[pos] = node
			used[node] = true
			pos++
		}
	}

	return off
}

// orderCrossoverFront is the symmetric offspring: copy donorA's positions
// [0, N/2), then fill [N/2, N) by scanning donorB for the nodes not
// already placed, preserving donorB's relative order.
func orderCrossoverFront(donorA, donorB Tour) Tour {
	n := len(donorA)
	half := n / 2

	off := make(Tour, n)
	used := make([]bool, n)

	for i := range half {
		off[i] = donorA[i]
		used[donorA[i]] = true
	}

	pos := half
	for _, node := range donorB {
		if pos == n {
			break
		}

		if !used[node] {
			off[pos] = node
			used[node] = true
			pos++
		}
	}

	return off
}

// mutationEpoch runs K reversal mutations.
func (pop *population) mutationEpoch(in *Instance, cfg GeneticConfig, rng *rand.Rand) {
	k := cfg.WorstBatch
	if k < 1 {
		k = 1
	}

	for range k {
		parent := pop.members[pop.selectParent(rng)]
		mutated := reversalMutate(parent, rng)

		succ, cost := Refine(in, mutated.ToSucc())
		pop.replace(pop.nextWorstSlot(), succ.ToSequence(), cost)
	}
}

// reversalMutate reverses the segment [N/2, N). A random candidate range
// is drawn first but intentionally never read; the reversal is pinned to
// the fixed back half.
func reversalMutate(parent Tour, rng *rand.Rand) Tour {
	n := len(parent)

	startRange := rng.IntN(n)
	endRange := startRange + 1 + rng.IntN(n-startRange)
	_ = startRange
	_ = endRange

	start, end := n/2, n

	out := parent.Clone()
	for i, j := start, end-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}
