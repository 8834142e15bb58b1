// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"envstrap-cli/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// baseDirFlag overrides the configured base directory
	baseDirFlag string

	// cfg is the loaded configuration, populated by initRootConfig.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "envstrap",
		Short: "Idempotent installer-environment provisioning",
		Long: TitleStyle.Render("envstrap") + SubtitleStyle.Render(" - idempotent installer-environment provisioning") + `

envstrap ensures a package-manager binary and a named isolated environment
exist under a base directory, creating them from a declarative spec when
absent, and hands the activated environment to a downstream installer.

Re-running is always safe: satisfied steps are skipped, and the expensive
environment creation happens at most once.

` + SubtitleStyle.Render("Examples:") + `
  envstrap up                       Provision (or verify) the environment
  envstrap status                   Show how far provisioning has gotten
  envstrap env --format shell       Print activation exports
  envstrap run -- installer.py      Run the installer inside the environment`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/envstrap/config.cue)")
	rootCmd.PersistentFlags().StringVar(&baseDirFlag, "base-dir", "", "base directory for provisioned state (overrides config and ENVSTRAP_BASE_DIR)")

	// Add subcommands
	rootCmd.AddCommand(newUpCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in the config file and ENVSTRAP_* variables.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if loaded != nil {
		cfg = loaded
	}

	if cfg.UI.Verbose {
		verbose = true
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// resolvedBaseDir applies flag > config precedence (config already folds in
// ENVSTRAP_BASE_DIR).
func resolvedBaseDir() string {
	if baseDirFlag != "" {
		return baseDirFlag
	}
	return cfg.BaseDir
}
