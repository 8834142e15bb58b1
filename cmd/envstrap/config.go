// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"envstrap-cli/internal/config"
	"envstrap-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `envstrap config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage envstrap configuration",
		Long: `Manage envstrap configuration.

Configuration is stored in:
  - Linux: ~/.config/envstrap/config.cue
  - macOS: ~/Library/Application Support/envstrap/config.cue
  - Windows: %APPDATA%\envstrap\config.cue

Every value can also be set through ENVSTRAP_* environment variables
(for example ENVSTRAP_BASE_DIR), which take precedence over the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	return cfgCmd
}

func showConfig() error {
	loaded, err := config.Load()
	if err != nil {
		if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render("dark"); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return err
	}

	keyStyle := PathStyle
	valueStyle := SuccessStyle
	renderOrUnset := func(v string) string {
		if v == "" {
			return SubtitleStyle.Render("(not set)")
		}
		return valueStyle.Render(v)
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if path, pathErr := config.ConfigFilePath(); pathErr == nil && fileExistsCheck(path) {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("base_dir"), renderOrUnset(loaded.BaseDir))
	fmt.Printf("%s: %s\n", keyStyle.Render("env_name"), renderOrUnset(loaded.EnvName))
	fmt.Printf("%s: %s\n", keyStyle.Render("spec_path"), renderOrUnset(loaded.SpecPath))
	fmt.Printf("%s: %s\n", keyStyle.Render("binary_source"), renderOrUnset(loaded.BinarySource))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("create"))
	fmt.Printf("  timeout_minutes: %s\n", valueStyle.Render(fmt.Sprintf("%d", loaded.Create.TimeoutMinutes)))
	fmt.Printf("  retry_attempts: %s\n", valueStyle.Render(fmt.Sprintf("%d", loaded.Create.RetryAttempts)))
	fmt.Printf("  retry_backoff_seconds: %s\n", valueStyle.Render(fmt.Sprintf("%d", loaded.Create.RetryBackoffSeconds)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", loaded.UI.Verbose)))

	return nil
}

func initConfigFile() error {
	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", path)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
