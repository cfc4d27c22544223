package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			Steps:           50,
			ActionThreshold: 1000,
			MaxUnits:        10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50, cfg.Simulation.Steps)
	assert.Equal(t, 1000, cfg.Simulation.ActionThreshold)
	assert.Equal(t, 10, cfg.Simulation.MaxUnits)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
simulation:
  steps: 20
  action_threshold: 500
logging:
  level: debug
  format: json
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Simulation.Steps)
	assert.Equal(t, 500, cfg.Simulation.ActionThreshold)
	assert.Equal(t, 10, cfg.Simulation.MaxUnits, "unset keys fall back to defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  steps: 20\n"), 0644))
	t.Setenv("TURNSIM_SIMULATION_STEPS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Simulation.Steps)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  steps: 0\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation.steps")
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("simulation.action_threshold", 250)
	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Simulation.ActionThreshold)
}

func TestValidateSimulation_ReportsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.Steps = 0
	cfg.Simulation.ActionThreshold = -1
	cfg.Simulation.MaxUnits = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation.steps")
	assert.Contains(t, err.Error(), "simulation.action_threshold")
	assert.Contains(t, err.Error(), "simulation.max_units")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

// Property-based tests

func TestPropertyPositiveBoundsAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Simulation.Steps = rapid.IntRange(1, 10000).Draw(t, "steps")
		cfg.Simulation.ActionThreshold = rapid.IntRange(1, 1000000).Draw(t, "threshold")
		cfg.Simulation.MaxUnits = rapid.IntRange(1, 100).Draw(t, "max_units")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid simulation bounds rejected: %v", err)
		}
	})
}

func TestPropertyNonPositiveThresholdRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Simulation.ActionThreshold = rapid.IntRange(-1000, 0).Draw(t, "threshold")
		if cfg.Validate() == nil {
			t.Fatalf("threshold %d accepted", cfg.Simulation.ActionThreshold)
		}
	})
}
