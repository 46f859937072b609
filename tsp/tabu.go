// ABOUTME: Tabu Search metaheuristic with a circular tabu buffer of forbidden edges
// ABOUTME: Supports both fixed-size and reactive tenure policies

package tsp

import "time"

// tabuBuffer is a circular queue of forbidden edges (unordered node
// pairs), stored as two parallel arrays of length maxTenure. Entries are
// edges, not moves.
type tabuBuffer struct {
	a, b []int

	head, tail, count    int
	maxTenure, minTenure int
	reactive             bool
}

func newTabuBuffer(maxTenure, minTenure int, reactive bool) *tabuBuffer {
	return &tabuBuffer{
		a:         make([]int, maxTenure),
		b:         make([]int, maxTenure),
		maxTenure: maxTenure,
		minTenure: minTenure,
		reactive:  reactive,
	}
}

// isTabu reports whether the unordered edge (u, v) is currently forbidden.
func (tb *tabuBuffer) isTabu(u, v int) bool {
	idx := tb.head

	for range tb.count {
		if (tb.a[idx] == u && tb.b[idx] == v) || (tb.a[idx] == v && tb.b[idx] == u) {
			return true
		}

		idx = (idx + 1) % tb.maxTenure
	}

	return false
}

// push inserts edge (u, v), applying the fixed or reactive tenure policy.
func (tb *tabuBuffer) push(u, v int) {
	if tb.reactive {
		tb.pushReactive(u, v)
	} else {
		tb.pushFixed(u, v)
	}
}

func (tb *tabuBuffer) pushFixed(u, v int) {
	if tb.count == tb.maxTenure {
		tb.head = (tb.head + 1) % tb.maxTenure
		tb.count--
	}

	tb.appendRaw(u, v)
}

// pushReactive implements the reactive tenure policy: above minTenure
// occupancy, compress by dropping the two entries at head, which are the
// two oldest in FIFO order (compression never removes a more recent
// entry); at exactly minTenure, drop one and append, holding steady;
// below minTenure, grow.
func (tb *tabuBuffer) pushReactive(u, v int) {
	switch {
	case tb.count > tb.minTenure:
		tb.head = (tb.head + 2) % tb.maxTenure
		tb.count -= 2
	case tb.count == tb.minTenure:
		tb.head = (tb.head + 1) % tb.maxTenure
		tb.count--
	}

	tb.appendRaw(u, v)
}

func (tb *tabuBuffer) appendRaw(u, v int) {
	tb.a[tb.tail] = u
	tb.b[tb.tail] = v
	tb.tail = (tb.tail + 1) % tb.maxTenure

	if tb.count < tb.maxTenure {
		tb.count++
	}
}

// ceilDiv returns ceil(n / d) for positive n, d.
func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

// RunTabu runs Tabu Search starting from tour until deadline. reactive
// selects the reactive tenure policy over the fixed-size default.
func RunTabu(in *Instance, tour Tour, reactive bool, incumbent *Registry, deadline time.Time) (Tour, float64) {
	n := in.N()
	succ := tour.ToSucc()
	cost := succ.Cost(in)

	maxTenure := ceilDiv(n, 5)
	minTenure := ceilDiv(n, 10)
	tb := newTabuBuffer(maxTenure, minTenure, reactive)

	for time.Now().Before(deadline) {
		delta, i, j, ok := diversificationMove(in, succ, tb)
		if !ok {
			continue
		}

		e1a, e1b := i, succ[i]
		e2a, e2b := j, succ[j]

		apply2optSwap(succ, i, j)
		cost += delta

		tb.push(e1a, e1b)
		tb.push(e2a, e2b)

		if delta < 0 {
			cost = tabuRefine(in, succ, cost, tb)
		}

		incumbent.Offer(cost, succ.ToSequence())
	}

	return succ.ToSequence(), cost
}

// diversificationMove picks the minimum-delta legal 2-opt move whose two
// removed edges are not both tabu. The delta may be
// positive; the caller applies it unconditionally.
func diversificationMove(in *Instance, succ Succ, tb *tabuBuffer) (delta float64, bi, bj int, ok bool) {
	n := len(succ)

	for i := range n {
		i2 := succ[i]

		for j := range n {
			if i == j || j == i2 || succ[j] == i || succ[j] == i2 {
				continue
			}

			j2 := succ[j]
			if tb.isTabu(i, i2) && tb.isTabu(j, j2) {
				continue
			}

			d := in.Dist(i, j) + in.Dist(i2, j2) - in.Dist(i, i2) - in.Dist(j, j2)
			if !ok || d < delta {
				delta, bi, bj, ok = d, i, j, true
			}
		}
	}

	return delta, bi, bj, ok
}

// tabuRefine is the tabu-aware first-improvement 2-opt refinement step:
// skips any move whose removed edges are tabu, and pushes
// every accepted improvement's removed edges into the buffer.
func tabuRefine(in *Instance, succ Succ, cost float64, tb *tabuBuffer) float64 {
	n := len(succ)

	for {
		improved := false

		for i := range n {
			i2 := succ[i]
			if tb.isTabu(i, i2) {
				continue
			}

			for j := range n {
				if i == j || j == i2 || succ[j] == i || succ[j] == i2 {
					continue
				}

				j2 := succ[j]
				if tb.isTabu(j, j2) {
					continue
				}

				delta := in.Dist(i, j) + in.Dist(i2, j2) - in.Dist(i, i2) - in.Dist(j, j2)
				if delta < -costEpsilon {
					apply2optSwap(succ, i, j)
					tb.push(i, i2)
					tb.push(j, j2)
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

	return cost
}
