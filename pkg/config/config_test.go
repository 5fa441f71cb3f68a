package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Lodek/vcube/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Defaults(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, config.DefaultMaxTime, cfg.Simulation.MaxTime)
	assert.Equal(t, config.DefaultTestPeriod, cfg.Simulation.TestPeriod)
	assert.Nil(t, cfg.Simulation.Seed)
}

func TestValidate_RejectsTooFewProcesses(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Simulation.ProcessCount = 1
	cfg.Simulation.FalseNegativeProbability = 0.1

	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonPowerOfTwoProcessCount(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Simulation.FalseNegativeProbability = 0.1

	for _, n := range []int{3, 5, 6, 7, 9} {
		cfg.Simulation.ProcessCount = n
		assert.Errorf(t, cfg.Validate(), "process_count %d should be rejected", n)
	}
}

func TestValidate_AcceptsPowerOfTwoProcessCount(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Simulation.FalseNegativeProbability = 0.1

	for _, n := range []int{2, 4, 8, 16} {
		cfg.Simulation.ProcessCount = n
		assert.NoErrorf(t, cfg.Validate(), "process_count %d should be accepted", n)
	}
}

func TestValidate_RejectsOutOfRangeProbability(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Simulation.ProcessCount = 4

	for _, p := range []float64{-0.1, 1.1} {
		cfg.Simulation.FalseNegativeProbability = p
		assert.Errorf(t, cfg.Validate(), "probability %v should be rejected", p)
	}
}

func TestValidate_AcceptsBoundaryProbabilities(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Simulation.ProcessCount = 4

	for _, p := range []float64{0, 1} {
		cfg.Simulation.FalseNegativeProbability = p
		assert.NoErrorf(t, cfg.Validate(), "probability %v should be accepted", p)
	}
}

func TestValidate_RejectsNonPositiveTimes(t *testing.T) {
	base := config.DefaultConfig()
	base.Simulation.ProcessCount = 4
	base.Simulation.FalseNegativeProbability = 0.1

	cfg := *base
	cfg.Simulation.MaxTime = 0
	assert.Error(t, cfg.Validate(), "max_time = 0 should be rejected")

	cfg = *base
	cfg.Simulation.TestPeriod = -1
	assert.Error(t, cfg.Validate(), "negative test_period should be rejected")
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMaxTime, cfg.Simulation.MaxTime)
}

func TestLoad_ExpandsEnvAndOverridesDefaults(t *testing.T) {
	t.Setenv("VCUBE_TEST_PROCESS_COUNT", "6")

	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "simulation:\n  process_count: ${VCUBE_TEST_PROCESS_COUNT}\n  false_negative_probability: 0.25\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Simulation.ProcessCount)
	assert.Equal(t, 0.25, cfg.Simulation.FalseNegativeProbability)
	// untouched defaults should survive the partial override.
	assert.Equal(t, config.DefaultMaxTime, cfg.Simulation.MaxTime)
}

func TestSave_RoundTrips(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Simulation.ProcessCount = 8
	cfg.Simulation.FalseNegativeProbability = 0.05

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Simulation.ProcessCount)
	assert.Equal(t, 0.05, loaded.Simulation.FalseNegativeProbability)
}
