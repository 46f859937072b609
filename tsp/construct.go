// ABOUTME: Constructive starting-tour heuristics: Nearest-Neighborhood and Farthest-Insertion
// ABOUTME: Each supports a GRASP variant that picks uniformly among its top-3 candidates

package tsp

import "math/rand/v2"

// ConstructionMethod selects which constructive heuristic builds the
// starting tour.
type ConstructionMethod int

const (
	// NearestNeighborhood grows a tour by repeatedly hopping to the
	// closest unvisited node.
	NearestNeighborhood ConstructionMethod = iota
	// FarthestInsertion grows a tour by repeatedly inserting the node
	// with the cheapest insertion delta into the cheapest edge.
	FarthestInsertion
)

// graspTopK is the number of leading candidates GRASP chooses uniformly
// among.
const graspTopK = 3

// candidate pairs a node with the cost used to rank it for selection.
type candidate struct {
	node int
	cost float64
}

// pickGrasp inserts c into the best-so-far top-k list (ascending by cost,
// smallest first), keeping only the leading graspTopK entries.
func pickGrasp(top []candidate, c candidate) []candidate {
	top = append(top, c)

	for i := len(top) - 1; i > 0 && top[i].cost < top[i-1].cost; i-- {
		top[i], top[i-1] = top[i-1], top[i]
	}

	if len(top) > graspTopK {
		top = top[:graspTopK]
	}

	return top
}

// chooseCandidate returns the best candidate deterministically, or a
// uniform random choice among the (up to graspTopK) leading candidates
// when grasp is enabled.
func chooseCandidate(top []candidate, grasp bool, rng *rand.Rand) candidate {
	if !grasp || len(top) == 1 {
		return top[0]
	}

	return top[rng.IntN(len(top))]
}

// Construct builds a starting tour using method, optionally in GRASP mode.
// start selects the seed node for Nearest-Neighborhood, or the node whose
// farthest partner seeds Farthest-Insertion; pass -1 to let
// Farthest-Insertion pick the globally farthest pair instead.
func Construct(in *Instance, method ConstructionMethod, start int, grasp bool, rng *rand.Rand) Tour {
	switch method {
	case FarthestInsertion:
		return constructInsertion(in, start, grasp, rng)
	default:
		return constructNN(in, start, grasp, rng)
	}
}

// constructNN implements the Nearest-Neighborhood constructor.
func constructNN(in *Instance, start int, grasp bool, rng *rand.Rand) Tour {
	n := in.N()
	visited := make([]bool, n)
	tour := make(Tour, 0, n)

	current := start
	visited[current] = true
	tour = append(tour, current)

	for len(tour) < n {
		var top []candidate

		for h := range n {
			if visited[h] {
				continue
			}

			top = pickGrasp(top, candidate{node: h, cost: in.Dist(current, h)})
		}

		next := chooseCandidate(top, grasp, rng).node
		visited[next] = true
		tour = append(tour, next)
		current = next
	}

	return tour
}

// insertionEdge is an edge (a, b) currently on the partial tour, with its
// cached cost so insertion deltas don't recompute it.
type insertionEdge struct {
	a, b int
	cost float64
}

// constructInsertion implements the Farthest-Insertion constructor.
func constructInsertion(in *Instance, start int, grasp bool, rng *rand.Rand) Tour {
	n := in.N()
	visited := make([]bool, n)

	a, b := farthestPair(in, start)
	visited[a] = true
	visited[b] = true

	edges := []insertionEdge{{a: a, b: b, cost: in.Dist(a, b)}, {a: b, b: a, cost: in.Dist(a, b)}}
	order := []int{a, b}

	for len(order) < n {
		var top []candidate // candidate.node is the unvisited node h; cost is its best insertion delta
		bestEdge := make(map[int]int, n)

		for h := range n {
			if visited[h] {
				continue
			}

			bestDelta := 0.0
			bestEdgeIdx := -1

			for ei, e := range edges {
				delta := in.Dist(h, e.a) + in.Dist(h, e.b) - e.cost
				if bestEdgeIdx == -1 || delta < bestDelta {
					bestDelta = delta
					bestEdgeIdx = ei
				}
			}

			top = pickGrasp(top, candidate{node: h, cost: bestDelta})
			bestEdge[h] = bestEdgeIdx
		}

		chosen := chooseCandidate(top, grasp, rng)
		h := chosen.node
		ei := bestEdge[h]
		e := edges[ei]

		visited[h] = true

		// Split edge (a, b) into (a, h) and (h, b); update the visit order
		// by inserting h immediately after a in the cyclic order.
		edges[ei] = insertionEdge{a: e.a, b: h, cost: in.Dist(e.a, h)}
		edges = append(edges, insertionEdge{a: h, b: e.b, cost: in.Dist(h, e.b)})
		order = insertAfter(order, e.a, h)
	}

	return Tour(order)
}

// insertAfter returns a copy of order with v inserted immediately after
// node after.
func insertAfter(order []int, after, v int) []int {
	out := make([]int, 0, len(order)+1)

	for _, n := range order {
		out = append(out, n)
		if n == after {
			out = append(out, v)
		}
	}

	return out
}

// farthestPair returns the pair of nodes at maximum pairwise distance. If
// start >= 0, it instead returns (start, the farthest node from start) so
// multi-start workers can vary the seed pair.
func farthestPair(in *Instance, start int) (int, int) {
	n := in.N()

	if start >= 0 {
		best, bestCost := -1, -1.0

		for j := range n {
			if j == start {
				continue
			}

			if d := in.Dist(start, j); d > bestCost {
				bestCost = d
				best = j
			}
		}

		return start, best
	}

	bestA, bestB, bestCost := 0, 1, -1.0

	for i := range n {
		for j := i + 1; j < n; j++ {
			if d := in.Dist(i, j); d > bestCost {
				bestCost = d
				bestA, bestB = i, j
			}
		}
	}

	return bestA, bestB
}
