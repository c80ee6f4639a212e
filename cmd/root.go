package cmd

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ptuner/ptuner/tuning"
)

var (
	// CLI flags shared by the run command
	configPath          string  // path to a tuning config YAML file; empty uses the documented defaults
	logLevel            string  // log verbosity level
	seed                int64   // seed for the synthetic cost generator
	numPhases           int     // number of tuning phases to run
	baselineCost        float64 // synthetic cost baseline all configurations are perturbed from
	n3InvalidationPhase int     // phase at which to simulate a force functor rejecting Newton3, 0 disables it
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "ptuner",
	Short: "Online auto-tuning demo for pairwise-interaction particle simulations",
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a tuning config YAML file (defaults to DefaultConfig)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "seed for the synthetic cost generator")
	runCmd.Flags().IntVar(&numPhases, "phases", 10, "number of tuning phases to run")
	runCmd.Flags().Float64Var(&baselineCost, "baseline-cost", 1000, "synthetic cost baseline each configuration is perturbed from")
	runCmd.Flags().IntVar(&n3InvalidationPhase, "invalidate-newton3-at", 0, "phase at which to reject Newton3Enabled, 0 disables it")

	validateCmd.Flags().StringVar(&configPath, "config", "", "path to a tuning config YAML file (defaults to DefaultConfig)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}

// runCmd drives a synthetic tuning session end to end, the way an outer
// particle simulation loop would, and logs each phase's outcome.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a synthetic tuning session and report the selected configuration per phase",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)

		cfg, err := loadOrDefaultConfig(configPath)
		if err != nil {
			return err
		}

		ctrl, err := tuning.NewController(*cfg)
		if err != nil {
			return fmt.Errorf("building controller: %w", err)
		}

		logrus.Infof("starting tuning session: %d phases, baseline cost %g", numPhases, baselineCost)
		rng := rand.New(rand.NewSource(seed))

		for phase := 0; phase < numPhases; phase++ {
			if n3InvalidationPhase > 0 && phase == n3InvalidationPhase {
				logrus.Infof("phase %d: force functor rejects Newton3Enabled", phase)
				if err := ctrl.RemoveN3Option(tuning.Newton3Enabled); err != nil {
					return fmt.Errorf("invalidating newton3 option: %w", err)
				}
			}

			for {
				current := ctrl.CurrentConfiguration()
				cost := syntheticCost(current, baselineCost, rng)
				logrus.Debugf("phase %d: measured %s at cost %g", ctrl.Phase(), current, cost)

				if err := ctrl.AddEvidence(cost); err != nil {
					return fmt.Errorf("recording evidence: %w", err)
				}
				more, err := ctrl.Tune()
				if err != nil {
					return fmt.Errorf("advancing tuning state: %w", err)
				}
				if !more {
					break
				}
			}

			if optimum, ok := ctrl.LastSelectedOptimum(); ok {
				logrus.Infof("phase %d finalized: selected %s", phase, optimum)
			}
		}

		return nil
	},
}

// validateCmd loads a tuning config and reports the resulting search-space
// size without running any tuning phases.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a tuning config and report the resulting search-space size",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadOrDefaultConfig(configPath)
		if err != nil {
			return err
		}
		space, err := tuning.NewSearchSpace(*cfg)
		if err != nil {
			return fmt.Errorf("building search space: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "config valid: %d configurations, containers=%v\n", space.Len(), space.AllowedContainers())
		return nil
	},
}

func loadOrDefaultConfig(path string) (*tuning.Config, error) {
	if path == "" {
		cfg := tuning.DefaultConfig()
		return &cfg, cfg.Validate()
	}
	cfg, err := tuning.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// syntheticCost stands in for the cost of actually running one traversal. It
// assigns LinkedCells a lower baseline than the other containers and adds
// bounded per-call noise, so a run produces a non-trivial but repeatable
// ranking across configurations.
func syntheticCost(c tuning.Configuration, baseline float64, rng *rand.Rand) float64 {
	cost := baseline
	if c.Container == tuning.LinkedCells {
		cost *= 0.6
	}
	if c.DataLayout == tuning.SoA {
		cost *= 0.9
	}
	if c.Newton3 == tuning.Newton3Enabled {
		cost *= 0.8
	}
	cost *= 1.0 + 0.1*(rng.Float64()-0.5)
	return math.Max(cost, 0)
}
