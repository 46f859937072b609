// ABOUTME: Entry point for the TSP solver
// ABOUTME: Handles command-line parsing, profiling, and routing to CLI or visual modes

// Package main provides the entry point for tspsolver, a multi-start
// metaheuristic engine for the symmetric traveling salesman problem.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"time"

	"tspsolver/config"
	"tspsolver/tsp"
	"tspsolver/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	visual := flag.Bool("visual", false, "run in visual mode with a live terminal monitor")
	debug := flag.Bool("debug", false, "enable debug logging to tspsolver-debug.log")
	output := flag.String("output", "", "write the best tour to this file (one node index per line)")

	algorithm := flag.String("algorithm", "", "vns, tabu, sa, or genetic (default: config file value)")
	construction := flag.String("construction", "", "nn or insertion (default: config file value)")
	grasp := flag.Bool("grasp", false, "randomize top-3 candidates in constructors")
	multiStart := flag.Int("multistart", 0, "worker count W (default: config file value)")
	fixedTime := flag.Bool("fixedtime", false, "keep spawning waves until the deadline")
	reactive := flag.Bool("reactive", false, "use the reactive tabu tenure policy")
	integerMode := flag.Bool("integer", false, "round distances to the nearest integer")
	deadline := flag.Float64("deadline", 0, "wall-clock budget in seconds (default: config file value)")
	seed := flag.Int64("seed", 0, "base RNG seed (0 = time-based)")

	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tspsolver [flags] <instance.txt>")
		fmt.Println("Example: tspsolver -algorithm vns -deadline 10 berlin52.txt")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	instancePath := args[0]

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	opts := RunOptions{
		InstancePath: instancePath,
		OutputPath:   *output,
		DebugLog:     *debug,
	}

	if *debug {
		if err := SetupDebugLog("tspsolver-debug.log"); err != nil {
			log.Printf("Failed to setup debug log: %v", err)

			return 1
		}
	}

	sctx, err := InitializeInstance(opts, !*visual)
	if err != nil {
		log.Printf("Failed to load instance: %v", err)

		return 1
	}

	applyFlagOverrides(&sctx.Config, *algorithm, *construction, *grasp, *multiStart, *fixedTime, *reactive, *integerMode, *deadline, *seed)
	sctx.SharedConfig.Update(sctx.Config)

	if *visual {
		tuiOpts := tui.Options{
			DeadlineSeconds: sctx.Config.DeadlineSeconds,
			AlgorithmName:   string(sctx.Config.Algorithm),
		}

		solve := func(ctx context.Context, updates chan<- tui.Update) {
			runDriverForTUI(ctx, sctx, updates)
		}

		if err := tui.Run(tuiOpts, sctx.SharedConfig, solve, debugf); err != nil {
			log.Printf("visual mode error: %v", err)

			return 1
		}

		return 0
	}

	if err := RunCLI(opts); err != nil {
		log.Printf("CLI error: %v", err)

		return 1
	}

	return 0
}

// applyFlagOverrides layers non-zero-value CLI flags on top of the
// loaded config, leaving config-file values in place otherwise.
func applyFlagOverrides(cfg *config.Config, algorithm, construction string, grasp bool, multiStart int, fixedTime, reactive, integerMode bool, deadline float64, seed int64) {
	if algorithm != "" {
		cfg.Algorithm = config.Algorithm(algorithm)
	}
	if construction != "" {
		cfg.Construction = config.Construction(construction)
	}
	if grasp {
		cfg.GRASP = true
	}
	if multiStart > 0 {
		cfg.MultiStart = multiStart
	}
	if fixedTime {
		cfg.FixedTimeMode = true
	}
	if reactive {
		cfg.ReactiveTenure = true
	}
	if integerMode {
		cfg.IntegerMode = true
	}
	if deadline > 0 {
		cfg.DeadlineSeconds = deadline
	}
	if seed != 0 {
		cfg.Seed = seed
	}
}

// setupCPUProfile starts CPU profiling, returns cleanup function.
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file.
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}

// runDriverForTUI runs the driver and converts wave updates to tui.Update,
// closing updates when the solve finishes. The driver has no forceful
// cancellation path, so quitting the TUI detaches from a run that then
// winds down on its own deadline.
func runDriverForTUI(_ context.Context, sctx *SolverContext, updates chan<- tui.Update) {
	defer close(updates)

	defer func() {
		if r := recover(); r != nil {
			debugf("[PANIC] driver goroutine panic: %v\n%s", r, string(debug.Stack()))
			panic(r)
		}
	}()

	driver := &tsp.Driver{
		OnWave: func(wave int, elapsed time.Duration, cost float64) {
			select {
			case updates <- tui.Update{Wave: wave, Elapsed: elapsed, Cost: cost}:
			default:
			}
		},
	}

	result, err := driver.Solve(sctx.Instance, driverConfig(sctx.Config))
	if err != nil {
		debugf("driver error: %v", err)

		return
	}

	final := tui.Update{
		Wave:     0,
		Elapsed:  result.Elapsed,
		Cost:     result.Cost,
		Done:     true,
		Note:     result.Note,
		BestTour: []int(result.Tour),
	}

	select {
	case updates <- final:
	default:
	}
}
