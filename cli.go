// ABOUTME: CLI mode implementation for non-interactive tour optimization
// ABOUTME: Handles progress display, result output, and signal handling for command-line usage

package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"tspsolver/tsp"
)

const (
	spinnerUpdateInterval  = 500 * time.Millisecond
	costImprovementEpsilon = 1e-10
)

// isTTY checks if the given file is a terminal.
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}

// RunCLI executes CLI mode optimization.
func RunCLI(opts RunOptions) error {
	if opts.DebugLog {
		if err := SetupDebugLog("tspsolver-debug.log"); err != nil {
			return err
		}
	}

	sctx, err := InitializeInstance(opts, true)
	if err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	result, err := cliSolve(stop, sctx)
	if err != nil {
		return err
	}

	fmt.Println("\nBest tour:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "#\tNode"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	if _, err := fmt.Fprintln(w, "---\t----"); err != nil {
		log.Printf("Warning: failed to write separator: %v", err)
	}

	for i, node := range result.Tour {
		if _, err := fmt.Fprintf(w, "%d\t%d\n", i+1, node); err != nil {
			log.Printf("Warning: failed to write node %d: %v", i+1, err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}

	fmt.Printf("\nCost: %.4f\n", result.Cost)

	if result.Note != "" {
		fmt.Printf("Note: %s\n", result.Note)
	}

	if opts.OutputPath != "" {
		if err := writeTour(opts.OutputPath, result.Tour); err != nil {
			return fmt.Errorf("failed to write tour: %w", err)
		}

		fmt.Printf("Wrote tour to: %s\n", opts.OutputPath)
	}

	return nil
}

// cliSolve runs the driver with CLI-specific progress display. A signal on
// the given channel is received but does not stop the run early; the
// driver returns at its own deadline.
func cliSolve(stop <-chan os.Signal, sctx *SolverContext) (tsp.Result, error) {
	startTime := time.Now()

	updateChan := make(chan WaveUpdate, 10)
	tracker := &progressTracker{updateChan: updateChan}

	driver := &tsp.Driver{OnWave: tracker.onWave}

	previousBestCost := math.MaxFloat64
	minPrecision := 2

	isTerminal := isTTY(os.Stdout)

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinnerIdx := 0

	var statusTicker *time.Ticker
	if isTerminal {
		statusTicker = time.NewTicker(spinnerUpdateInterval)
		defer statusTicker.Stop()
	}

	formatElapsed := func(d time.Duration) string {
		var s string
		if d >= time.Minute {
			s = fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
		} else {
			s = fmt.Sprintf("%ds", int(d.Seconds()))
		}

		return fmt.Sprintf("%6s", s)
	}

	printStatus := func(wave int) {
		if !isTerminal {
			return
		}

		elapsed := time.Since(startTime)
		fmt.Printf("\r%s Wave %d %s     ", formatElapsed(elapsed), wave, spinnerFrames[spinnerIdx])
		spinnerIdx = (spinnerIdx + 1) % len(spinnerFrames)
	}

	type solveResult struct {
		result tsp.Result
		err    error
	}

	done := make(chan solveResult, 1)

	go func() {
		defer tracker.close()

		result, err := driver.Solve(sctx.Instance, driverConfig(sctx.Config))
		done <- solveResult{result, err}
	}()

	go func() {
		<-stop
		// No forceful cancellation path exists in the driver: it reports
		// the incumbent once its own deadline passes.
	}()

	var currentWave int
	var final solveResult

loop:
	for {
		select {
		case update, ok := <-updateChan:
			if !ok {
				continue
			}

			currentWave = update.Wave
			costImproved := hasCostImproved(update.Cost, previousBestCost, costImprovementEpsilon)

			if costImproved {
				elapsed := time.Since(startTime)
				elapsedStr := formatElapsed(elapsed)

				if isTerminal {
					fmt.Print("\r\033[K")
				}

				var costStr string
				costStr, minPrecision = FormatWithMonotonicPrecision(previousBestCost, update.Cost, minPrecision)
				fmt.Printf("%s Wave %4d - cost: %s\n", elapsedStr, currentWave, costStr)
				previousBestCost = update.Cost
			}

		case <-func() <-chan time.Time {
			if statusTicker != nil {
				return statusTicker.C
			}

			return make(<-chan time.Time)
		}():
			printStatus(currentWave)

		case sr := <-done:
			final = sr

			break loop
		}
	}

	if isTerminal {
		fmt.Print("\r\033[K")
	}

	fmt.Printf("\nCompleted %d wave(s) in %v\n", currentWave, time.Since(startTime).Round(time.Millisecond))

	return final.result, final.err
}

// writeTour writes a tour as one node index per line.
func writeTour(path string, tour tsp.Tour) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	for _, node := range tour {
		if _, err := fmt.Fprintf(f, "%d\n", node); err != nil {
			return err
		}
	}

	return nil
}
