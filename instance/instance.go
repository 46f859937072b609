// ABOUTME: Loads and generates TSP instances as parallel x/y point lists
// ABOUTME: Not a TSPLIB reader — a minimal two-column-per-line text format plus demo generators

// Package instance provides the external collaborator that turns a point
// list on disk (or a generated demo layout) into a tsp.Instance. Parsing
// and generation live here so the tsp package stays free of file I/O.
package instance

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"tspsolver/tsp"
)

// Load reads a point list from path: one node per line, two
// whitespace-separated floating-point fields (x then y). Blank lines and
// lines starting with "#" are skipped.
func Load(path string, integerMode bool) (*tsp.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open instance file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var xs, ys []float64

	scanner := bufio.NewScanner(f)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("instance file %s: line %d: expected 2 fields, got %d", path, lineNo, len(fields))
		}

		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("instance file %s: line %d: invalid x: %w", path, lineNo, err)
		}

		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("instance file %s: line %d: invalid y: %w", path, lineNo, err)
		}

		xs = append(xs, x)
		ys = append(ys, y)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading instance file: %w", err)
	}

	return tsp.NewInstance(xs, ys, integerMode)
}

// Save writes an instance back out in the same two-column format Load
// accepts, for round-tripping generated demo instances.
func Save(path string, in *tsp.Instance) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create instance file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := bufio.NewWriter(f)
	for i := range in.N() {
		if _, err := fmt.Fprintf(w, "%g %g\n", in.X(i), in.Y(i)); err != nil {
			return fmt.Errorf("failed to write node %d: %w", i, err)
		}
	}

	return w.Flush()
}

// Random generates n points uniformly at random in [0, side) x [0, side).
func Random(n int, side float64, integerMode bool, rng *rand.Rand) (*tsp.Instance, error) {
	xs := make([]float64, n)
	ys := make([]float64, n)

	for i := range n {
		xs[i] = rng.Float64() * side
		ys[i] = rng.Float64() * side
	}

	return tsp.NewInstance(xs, ys, integerMode)
}

// Grid generates a rows x cols grid of unit-spaced points, a convenient
// demo instance with a known perimeter-minimal optimum.
func Grid(rows, cols int, integerMode bool) (*tsp.Instance, error) {
	n := rows * cols

	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)

	for r := range rows {
		for c := range cols {
			xs = append(xs, float64(c))
			ys = append(ys, float64(r))
		}
	}

	return tsp.NewInstance(xs, ys, integerMode)
}
