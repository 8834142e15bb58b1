// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"envstrap-cli/internal/bootstrap"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"
)

// newEnvCommand creates the `envstrap env` command.
func newEnvCommand() *cobra.Command {
	var format string

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Print the activation environment",
		Long: `Print the activation environment for the installer environment.

Runs the idempotent provisioning first (a no-op when everything is in
place), then prints the variables a process needs to run inside the
environment. Nothing in the current shell is modified; apply the output
yourself:

  eval "$(envstrap env --format shell)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "shell" && format != "json" {
				return fmt.Errorf("invalid --format %q: must be 'shell' or 'json'", format)
			}

			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			opts, err := bootstrapOptions("", "", "", 0)
			if err != nil {
				return reportBootstrapError(err)
			}
			// Progress goes to stderr so stdout stays machine-consumable.
			opts.Stdout = os.Stderr
			opts.Stderr = os.Stderr

			activation, err := bootstrap.New().EnsureEnvironment(cmd.Context(), opts)
			if err != nil {
				return reportBootstrapError(err)
			}

			return writeActivation(os.Stdout, activation, format)
		},
	}

	envCmd.Flags().StringVar(&format, "format", "shell", "output format: shell or json")

	return envCmd
}

// writeActivation serializes the activation. Shell output is POSIX export
// statements; json is a flat object of the variables plus the resolved paths.
func writeActivation(w io.Writer, activation *bootstrap.Activation, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			EnvName    string            `json:"env_name"`
			EnvDir     string            `json:"env_dir"`
			RootPrefix string            `json:"root_prefix"`
			Vars       map[string]string `json:"vars"`
		}{
			EnvName:    activation.EnvName,
			EnvDir:     activation.EnvDir,
			RootPrefix: activation.RootPrefix,
			Vars:       activation.Vars(),
		})
	}

	for _, kv := range activation.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		line, err := exportLine(key, value)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// exportLine renders one POSIX export statement with the value quoted so it
// survives shell evaluation verbatim.
func exportLine(key, value string) (string, error) {
	quoted, err := syntax.Quote(value, syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("quote %s for shell: %w", key, err)
	}
	return "export " + key + "=" + quoted, nil
}
