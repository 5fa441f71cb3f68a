package main

import (
	"fmt"
	"os"

	"github.com/Lodek/vcube/pkg/config"
	"github.com/Lodek/vcube/pkg/reporting"
	"github.com/Lodek/vcube/pkg/vcube/simulator"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Run a VCube diagnosis simulation",
	Long:  `Loads configuration, validates it, and runs one simulation to completion.`,
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().Int("process-count", 0, "number of simulated processes (required)")
	runCmd.Flags().Float64("false-negative-probability", -1, "false-negative probability in [0,1] (required)")
	runCmd.Flags().Float64("max-time", 0, "virtual-clock deadline (default 200.0)")
	runCmd.Flags().Float64("test-period", 0, "interval between a process's test rounds (default 10.0)")
	runCmd.Flags().Uint64("seed", 0, "PRNG seed (omit for entropy-seeded, reported in the log)")
	runCmd.Flags().String("format", "text", "result output format (text, json)")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = "./config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("process-count") {
		cfg.Simulation.ProcessCount, _ = cmd.Flags().GetInt("process-count")
	}
	if cmd.Flags().Changed("false-negative-probability") {
		cfg.Simulation.FalseNegativeProbability, _ = cmd.Flags().GetFloat64("false-negative-probability")
	}
	if cmd.Flags().Changed("max-time") {
		cfg.Simulation.MaxTime, _ = cmd.Flags().GetFloat64("max-time")
	}
	if cmd.Flags().Changed("test-period") {
		cfg.Simulation.TestPeriod, _ = cmd.Flags().GetFloat64("test-period")
	}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		cfg.Simulation.Seed = &seed
	}

	if cmd.Flags().Changed("format") {
		cfg.Reporting.Format, _ = cmd.Flags().GetString("format")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logLevel := reporting.LogLevelInfo
	if verbose {
		logLevel = reporting.LogLevelDebug
	}

	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  logLevel,
		Format: reporting.LogFormat(cfg.Framework.LogFormat),
		Output: os.Stderr,
	})

	logger.Info("vcube-sim starting", "version", version,
		"process_count", cfg.Simulation.ProcessCount,
		"false_negative_probability", cfg.Simulation.FalseNegativeProbability,
		"max_time", cfg.Simulation.MaxTime,
		"test_period", cfg.Simulation.TestPeriod)

	sim, err := simulator.New(cfg.Simulation, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize simulator: %w", err)
	}

	result := sim.Run()

	return reporting.WriteResult(os.Stdout, reporting.ResultFormat(cfg.Reporting.Format), result)
}
