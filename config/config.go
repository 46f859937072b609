// ABOUTME: Configuration management for the TSP solver's tunable parameters
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Algorithm names a metaheuristic choice (the TOML "algorithm" key).
type Algorithm string

const (
	AlgorithmVNS     Algorithm = "vns"
	AlgorithmTabu    Algorithm = "tabu"
	AlgorithmSA      Algorithm = "sa"
	AlgorithmGenetic Algorithm = "genetic"
)

// Construction names a constructive-heuristic choice (the TOML
// "construction" key).
type Construction string

const (
	ConstructionNN        Construction = "nn"
	ConstructionInsertion Construction = "insertion"
)

// Config holds every tunable option exposed by the solver's external
// interface.
type Config struct {
	Algorithm    Algorithm    `toml:"algorithm"`
	Construction Construction `toml:"construction"`

	GRASP               bool `toml:"grasp"`
	MultiStart          int  `toml:"multi_start"`
	FixedTimeMode       bool `toml:"fixed_time_mode"`
	UniformPerturbation bool `toml:"uniform_perturbation"`
	ReactiveTenure      bool `toml:"reactive_tenure"`
	IntegerMode         bool `toml:"integer_mode"`

	DeadlineSeconds float64 `toml:"deadline_seconds"`
	Seed            int64   `toml:"seed"`

	// Genetic only.
	PopulationSize int `toml:"population_size"`
	WorstBatch     int `toml:"worst_batch"`
}

// GetConfigPath returns the default config file path.
// First tries the current directory, then falls back to
// ~/.config/tspsolver/config.toml.
func GetConfigPath() string {
	if _, err := os.Stat("./tspsolver.toml"); err == nil {
		return "./tspsolver.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./tspsolver.toml"
	}

	return filepath.Join(home, ".config", "tspsolver", "config.toml")
}

// LoadConfig loads configuration from a TOML file.
// If the file doesn't exist or fails to load, returns the default config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a TOML file.
func SaveConfig(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default solver configuration.
func DefaultConfig() Config {
	return Config{
		Algorithm:           AlgorithmVNS,
		Construction:        ConstructionNN,
		GRASP:               false,
		MultiStart:          4,
		FixedTimeMode:       false,
		UniformPerturbation: true,
		ReactiveTenure:      false,
		IntegerMode:         false,
		DeadlineSeconds:     10,
		Seed:                0,
		PopulationSize:      1000,
		WorstBatch:          10,
	}
}

// SharedConfig wraps Config with a mutex for thread-safe access between
// the driver and a live monitor (TUI or CLI progress reporter).
type SharedConfig struct {
	mu     sync.RWMutex
	config Config
}

// Get returns a copy of the current config (thread-safe read).
func (sc *SharedConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return sc.config
}

// Update replaces the config (thread-safe write).
func (sc *SharedConfig) Update(cfg Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.config = cfg
}
