package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the allowed option sets and the two tuning parameters that
// govern a tuning session, loadable from a YAML file. All fields are
// validated by Validate before use; NewSearchSpace and NewController assume
// a validated Config.
type Config struct {
	AllowedContainers      []Container     `yaml:"allowed_containers"`
	AllowedCellSizeFactors []float64       `yaml:"allowed_cell_size_factors"`
	AllowedTraversals      []Traversal     `yaml:"allowed_traversals"`
	AllowedDataLayouts     []DataLayout    `yaml:"allowed_data_layouts"`
	AllowedNewton3Options  []Newton3Option `yaml:"allowed_newton3_options"`

	// RelativeOptimumRange (R) admits a configuration into the active set
	// when its projected cost is within this factor of the minimum projected
	// cost. Default 1.2, must be >= 1.0.
	RelativeOptimumRange float64 `yaml:"relative_optimum_range"`

	// MaxPhasesWithoutTest (S) forces re-measurement of a configuration once
	// this many phases have passed since it was last measured. Default 5,
	// must be >= 1.
	MaxPhasesWithoutTest int `yaml:"max_phases_without_test"`
}

// DefaultConfig returns the documented defaults: every container, traversal,
// data layout, and newton3 option allowed; a single cell-size factor of 1.0;
// R=1.2; S=5.
func DefaultConfig() Config {
	return Config{
		AllowedContainers:      AllContainers(),
		AllowedCellSizeFactors: []float64{1.0},
		AllowedTraversals:      AllTraversals(),
		AllowedDataLayouts:     AllDataLayouts(),
		AllowedNewton3Options:  AllNewton3Options(),
		RelativeOptimumRange:   1.2,
		MaxPhasesWithoutTest:   5,
	}
}

// LoadConfig reads and parses a YAML tuning configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tuning config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing tuning config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that every option set is non-empty and every option is
// recognized, and that R and S fall within their documented ranges.
func (c *Config) Validate() error {
	if len(c.AllowedContainers) == 0 {
		return fmt.Errorf("allowed_containers must not be empty")
	}
	for _, container := range c.AllowedContainers {
		if container < 0 || int(container) >= len(containerNames) {
			return fmt.Errorf("unknown container %v", container)
		}
	}
	if len(c.AllowedCellSizeFactors) == 0 {
		return fmt.Errorf("allowed_cell_size_factors must not be empty")
	}
	for _, f := range c.AllowedCellSizeFactors {
		if f <= 0 {
			return fmt.Errorf("cell_size_factor must be positive, got %g", f)
		}
	}
	if len(c.AllowedTraversals) == 0 {
		return fmt.Errorf("allowed_traversals must not be empty")
	}
	for _, t := range c.AllowedTraversals {
		if t < 0 || int(t) >= len(traversalNames) {
			return fmt.Errorf("unknown traversal %v", t)
		}
	}
	if len(c.AllowedDataLayouts) == 0 {
		return fmt.Errorf("allowed_data_layouts must not be empty")
	}
	for _, d := range c.AllowedDataLayouts {
		if d != AoS && d != SoA {
			return fmt.Errorf("unknown data layout %v", d)
		}
	}
	if len(c.AllowedNewton3Options) == 0 {
		return fmt.Errorf("allowed_newton3_options must not be empty")
	}
	for _, n := range c.AllowedNewton3Options {
		if n != Newton3Enabled && n != Newton3Disabled {
			return fmt.Errorf("unknown newton3 option %v", n)
		}
	}
	if c.RelativeOptimumRange < 1.0 {
		return fmt.Errorf("relative_optimum_range must be >= 1.0, got %g", c.RelativeOptimumRange)
	}
	if c.MaxPhasesWithoutTest < 1 {
		return fmt.Errorf("max_phases_without_test must be >= 1, got %d", c.MaxPhasesWithoutTest)
	}
	return nil
}
