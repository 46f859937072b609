// ABOUTME: Shared initialization code for CLI and visual modes
// ABOUTME: Provides instance loading, config setup, and debug logging helpers

package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"tspsolver/config"
	"tspsolver/instance"
	"tspsolver/tsp"
)

// Debug logger - writes to file for debugging.
var debugLog *log.Logger

// RunOptions contains command-line options shared by CLI and visual modes.
type RunOptions struct {
	InstancePath string
	OutputPath   string
	DebugLog     bool
}

// SolverContext bundles the loaded instance and config needed to run the
// driver from either CLI or visual mode.
type SolverContext struct {
	Instance     *tsp.Instance
	Config       config.Config
	SharedConfig *config.SharedConfig
}

// InitializeInstance loads the instance file and config. This is used by
// CLI and visual modes that need a full solver setup.
func InitializeInstance(opts RunOptions, verbose bool) (*SolverContext, error) {
	cfg, _ := config.LoadConfig(config.GetConfigPath())

	if opts.InstancePath == "" {
		return nil, errors.New("instance path is required")
	}

	if verbose {
		fmt.Printf("Reading instance: %s\n", opts.InstancePath)
	}

	in, err := instance.Load(opts.InstancePath, cfg.IntegerMode)
	if err != nil {
		return nil, fmt.Errorf("failed to load instance: %w", err)
	}

	sharedConfig := &config.SharedConfig{}
	sharedConfig.Update(cfg)

	return &SolverContext{
		Instance:     in,
		Config:       cfg,
		SharedConfig: sharedConfig,
	}, nil
}

// driverConfig converts a config.Config into a tsp.Config.
func driverConfig(cfg config.Config) tsp.Config {
	algorithm := tsp.VNS
	switch cfg.Algorithm {
	case config.AlgorithmTabu:
		algorithm = tsp.Tabu
	case config.AlgorithmSA:
		algorithm = tsp.SA
	case config.AlgorithmGenetic:
		algorithm = tsp.Genetic
	}

	construction := tsp.NearestNeighborhood
	if cfg.Construction == config.ConstructionInsertion {
		construction = tsp.FarthestInsertion
	}

	return tsp.Config{
		Algorithm:           algorithm,
		Construction:        construction,
		GRASP:               cfg.GRASP,
		MultiStart:          cfg.MultiStart,
		FixedTimeMode:       cfg.FixedTimeMode,
		UniformPerturbation: cfg.UniformPerturbation,
		ReactiveTenure:      cfg.ReactiveTenure,
		IntegerMode:         cfg.IntegerMode,
		DeadlineSeconds:     cfg.DeadlineSeconds,
		Seed:                cfg.Seed,
		PopulationSize:      cfg.PopulationSize,
		WorstBatch:          cfg.WorstBatch,
	}
}

// SetupDebugLog initializes debug logging to the specified file.
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	fileInfo, _ := os.Stdout.Stat()
	if (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	return nil
}

// InitDebugLog initializes debug logging to a file.
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages to file if debug logging is enabled.
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// hasCostImproved returns true if newCost is significantly better than
// oldCost. Uses an epsilon threshold to avoid false positives from
// floating-point precision issues.
func hasCostImproved(newCost, oldCost, epsilon float64) bool {
	return newCost < oldCost-epsilon
}
