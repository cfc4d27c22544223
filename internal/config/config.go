// Package config provides Viper-based configuration loading for the turn-order simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SimulationConfig holds the bounds of one simulation run.
type SimulationConfig struct {
	// Steps is the number of calculation steps each run performs.
	Steps int `mapstructure:"steps"`
	// ActionThreshold is the action value at which a unit acts.
	ActionThreshold int `mapstructure:"action_threshold"`
	// MaxUnits caps the roster size accepted from a scenario.
	MaxUnits int `mapstructure:"max_units"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Default returns the configuration produced when no file or environment
// overrides are present.
//
// Postcondition: Default().Validate() == nil.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshal of scalar defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.Steps < 1 {
		errs = append(errs, fmt.Sprintf("simulation.steps must be >= 1, got %d", s.Steps))
	}
	if s.ActionThreshold < 1 {
		errs = append(errs, fmt.Sprintf("simulation.action_threshold must be >= 1, got %d", s.ActionThreshold))
	}
	if s.MaxUnits < 1 {
		errs = append(errs, fmt.Sprintf("simulation.max_units must be >= 1, got %d", s.MaxUnits))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with TURNSIM_ prefix
	v.SetEnvPrefix("TURNSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.steps", 50)
	v.SetDefault("simulation.action_threshold", 1000)
	v.SetDefault("simulation.max_units", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
