// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"time"

	"envstrap-cli/internal/bootstrap"

	"github.com/spf13/cobra"
)

// newUpCommand creates the `envstrap up` command.
func newUpCommand() *cobra.Command {
	var (
		specPath   string
		binaryPath string
		envName    string
		timeout    time.Duration
	)

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Provision the installer environment",
		Long: `Provision the installer environment under the base directory.

Installs the bundled environment manager binary, initializes its shell
integration, and creates the environment declared in the spec file. All
steps are idempotent: re-running skips whatever is already in place, so
this is also the way to verify an existing setup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			opts, err := bootstrapOptions(specPath, binaryPath, envName, timeout)
			if err != nil {
				return reportBootstrapError(err)
			}
			opts.Stdout = os.Stdout
			opts.Stderr = os.Stderr

			activation, err := bootstrap.New().EnsureEnvironment(cmd.Context(), opts)
			if err != nil {
				return reportBootstrapError(err)
			}

			fmt.Println(SuccessStyle.Render("✓") + " Environment ready")
			fmt.Printf("  %s %s\n", SubtitleStyle.Render("name:"), activation.EnvName)
			fmt.Printf("  %s %s\n", SubtitleStyle.Render("prefix:"), PathStyle.Render(activation.EnvDir))
			fmt.Printf("  %s %s\n", SubtitleStyle.Render("root prefix:"), PathStyle.Render(activation.RootPrefix))
			return nil
		},
	}

	upCmd.Flags().StringVar(&specPath, "spec", "", "environment spec file (default: <base-dir>/installer/yaml/environment.yaml)")
	upCmd.Flags().StringVar(&binaryPath, "binary", "", "manager binary to install (default: <base-dir>/installer/bin)")
	upCmd.Flags().StringVar(&envName, "name", "", "environment name (default: the name declared in the spec)")
	upCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-attempt creation timeout (default: 30m)")

	return upCmd
}

// bootstrapOptions folds flags over the loaded configuration into bootstrap
// options. Flag > env/config > built-in default, with defaults left to the
// bootstrapper where it owns them.
func bootstrapOptions(specPath, binaryPath, envName string, timeout time.Duration) (bootstrap.Options, error) {
	baseDir := resolvedBaseDir()
	if baseDir == "" {
		return bootstrap.Options{}, &bootstrap.ConfigurationError{
			Field:  "base_dir",
			Reason: "not set; pass --base-dir, set ENVSTRAP_BASE_DIR, or configure base_dir",
		}
	}

	opts := bootstrap.Options{
		BaseDir:      baseDir,
		SpecPath:     cfg.SpecPath,
		BinarySource: cfg.BinarySource,
		EnvName:      cfg.EnvName,

		CreateTimeout: cfg.Create.Timeout(),
		RetryAttempts: cfg.Create.RetryAttempts,
		RetryBackoff:  cfg.Create.RetryBackoff(),
	}

	if specPath != "" {
		opts.SpecPath = specPath
	}
	if binaryPath != "" {
		opts.BinarySource = binaryPath
	}
	if envName != "" {
		opts.EnvName = envName
	}
	if timeout > 0 {
		opts.CreateTimeout = timeout
	}

	return opts, nil
}
