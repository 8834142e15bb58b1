// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is the resolved envstrap configuration.
	Config struct {
		// BaseDir is the root directory for all provisioned state.
		BaseDir string `mapstructure:"base_dir"`
		// EnvName overrides the environment name from the spec file.
		EnvName string `mapstructure:"env_name"`
		// SpecPath is the declarative environment spec file.
		SpecPath string `mapstructure:"spec_path"`
		// BinarySource is the shipped manager binary.
		BinarySource string `mapstructure:"binary_source"`

		Create CreateConfig `mapstructure:"create"`
		UI     UIConfig     `mapstructure:"ui"`
	}

	// CreateConfig tunes the environment-creation step.
	CreateConfig struct {
		TimeoutMinutes      int `mapstructure:"timeout_minutes"`
		RetryAttempts       int `mapstructure:"retry_attempts"`
		RetryBackoffSeconds int `mapstructure:"retry_backoff_seconds"`
	}

	// UIConfig holds terminal output preferences.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose"`
	}

	// InvalidConfigError is returned when a loaded config fails validation
	// rules the CUE schema cannot express. It wraps ErrInvalidConfig.
	InvalidConfigError struct {
		Field  string
		Reason string
	}
)

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Create: CreateConfig{
			TimeoutMinutes:      30,
			RetryAttempts:       3,
			RetryBackoffSeconds: 5,
		},
	}
}

// Timeout returns the creation attempt bound as a duration.
func (c CreateConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMinutes) * time.Minute
}

// RetryBackoff returns the base backoff as a duration.
func (c CreateConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffSeconds) * time.Second
}

// Validate applies rules the schema cannot express (the schema already
// bounds the numeric fields for file-sourced values; env-sourced values
// bypass CUE and land here).
func (c *Config) Validate() error {
	if c.Create.TimeoutMinutes <= 0 {
		return &InvalidConfigError{Field: "create.timeout_minutes", Reason: "must be positive"}
	}
	if c.Create.RetryAttempts < 1 {
		return &InvalidConfigError{Field: "create.retry_attempts", Reason: "must be at least 1"}
	}
	if c.Create.RetryBackoffSeconds < 0 {
		return &InvalidConfigError{Field: "create.retry_backoff_seconds", Reason: "must not be negative"}
	}
	return nil
}
