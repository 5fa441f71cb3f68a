// Package config loads and validates the simulator's configuration:
// defaults overlaid by an optional YAML file whose ${VAR} references are
// expanded from the environment, with the same Load/Validate/Save
// shape used across this codebase's other config loaders.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the simulator's full configuration.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Framework  FrameworkConfig  `yaml:"framework"`
	Reporting  ReportingConfig  `yaml:"reporting"`
}

// SimulationConfig carries the simulation's external inputs.
type SimulationConfig struct {
	// ProcessCount is the number of simulated processes (N >= 2). The
	// cluster-index-set construction is hypercube arithmetic, so N must
	// be a power of two.
	ProcessCount int `yaml:"process_count"`

	// FalseNegativeProbability is the chance a test of an up process
	// incorrectly reports it faulty, in [0, 1].
	FalseNegativeProbability float64 `yaml:"false_negative_probability"`

	// MaxTime is the virtual-clock deadline.
	MaxTime float64 `yaml:"max_time"`

	// TestPeriod is the interval between a process's test rounds.
	TestPeriod float64 `yaml:"test_period"`

	// Seed pins the PRNG for a reproducible run. Nil means seed from
	// entropy.
	Seed *uint64 `yaml:"seed,omitempty"`
}

// FrameworkConfig contains general framework settings.
type FrameworkConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// ReportingConfig contains result-output settings.
type ReportingConfig struct {
	OutputDir string `yaml:"output_dir"`
	Format    string `yaml:"format"`
}

const (
	DefaultMaxTime    = 200.0
	DefaultTestPeriod = 10.0
)

// DefaultConfig returns a configuration with the framework's defaults
// applied; ProcessCount and FalseNegativeProbability have no default and
// must be supplied by the caller before Validate. Both start outside their
// valid ranges (0 and -1), so Validate rejects a configuration that never
// sets them.
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			FalseNegativeProbability: -1,
			MaxTime:                  DefaultMaxTime,
			TestPeriod:               DefaultTestPeriod,
		},
		Framework: FrameworkConfig{
			LogLevel:  "info",
			LogFormat: "text",
		},
		Reporting: ReportingConfig{
			OutputDir: "./reports",
			Format:    "text",
		},
	}
}

// Load loads configuration from a YAML file layered over DefaultConfig.
// A missing path is not an error: the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration's constraints.
// Configuration errors are reported here, before any simulation state is
// allocated.
func (c *Config) Validate() error {
	if c.Simulation.ProcessCount < 2 {
		return fmt.Errorf("simulation.process_count must be at least 2, got %d", c.Simulation.ProcessCount)
	}

	if c.Simulation.ProcessCount&(c.Simulation.ProcessCount-1) != 0 {
		return fmt.Errorf("simulation.process_count must be a power of two, got %d", c.Simulation.ProcessCount)
	}

	if c.Simulation.FalseNegativeProbability < 0 || c.Simulation.FalseNegativeProbability > 1 {
		return fmt.Errorf("simulation.false_negative_probability must be in [0, 1], got %f", c.Simulation.FalseNegativeProbability)
	}

	if c.Simulation.MaxTime <= 0 {
		return fmt.Errorf("simulation.max_time must be positive, got %f", c.Simulation.MaxTime)
	}

	if c.Simulation.TestPeriod <= 0 {
		return fmt.Errorf("simulation.test_period must be positive, got %f", c.Simulation.TestPeriod)
	}

	return nil
}
