// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateCUE renders the configuration as a CUE document, ready to be
// written as a config file.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// envstrap configuration file\n\n")

	if cfg.BaseDir != "" {
		sb.WriteString(fmt.Sprintf("base_dir: %q\n", cfg.BaseDir))
	}
	if cfg.EnvName != "" {
		sb.WriteString(fmt.Sprintf("env_name: %q\n", cfg.EnvName))
	}
	if cfg.SpecPath != "" {
		sb.WriteString(fmt.Sprintf("spec_path: %q\n", cfg.SpecPath))
	}
	if cfg.BinarySource != "" {
		sb.WriteString(fmt.Sprintf("binary_source: %q\n", cfg.BinarySource))
	}

	sb.WriteString("\ncreate: {\n")
	sb.WriteString(fmt.Sprintf("\ttimeout_minutes:       %d\n", cfg.Create.TimeoutMinutes))
	sb.WriteString(fmt.Sprintf("\tretry_attempts:        %d\n", cfg.Create.RetryAttempts))
	sb.WriteString(fmt.Sprintf("\tretry_backoff_seconds: %d\n", cfg.Create.RetryBackoffSeconds))
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}

// CreateDefaultConfig writes a default config file if one does not already
// exist.
func CreateDefaultConfig() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(cfgPath); err == nil {
		return nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
