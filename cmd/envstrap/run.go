// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"envstrap-cli/internal/bootstrap"
	"envstrap-cli/internal/platform"

	"github.com/spf13/cobra"
)

// newRunCommand creates the `envstrap run` command.
func newRunCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Run a command inside the installer environment",
		Long: `Run a command with the installer environment activated.

Provisions the environment first (a no-op when everything is in place),
then executes the command with the activation variables applied, so
executable resolution prefers binaries inside the environment. The child
process inherits this terminal, and its exit code becomes envstrap's.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			opts, err := bootstrapOptions("", "", "", 0)
			if err != nil {
				return reportBootstrapError(err)
			}
			// Provisioning progress goes to stderr; stdout belongs to the child.
			opts.Stdout = os.Stderr
			opts.Stderr = os.Stderr

			activation, err := bootstrap.New().EnsureEnvironment(cmd.Context(), opts)
			if err != nil {
				return reportBootstrapError(err)
			}

			childPath, err := resolveCommand(args[0], activation.Vars()["PATH"])
			if err != nil {
				return reportBootstrapError(err)
			}

			child := exec.CommandContext(cmd.Context(), childPath, args[1:]...)
			activation.ApplyTo(child)
			child.Stdin = os.Stdin
			child.Stdout = os.Stdout
			child.Stderr = os.Stderr

			if err := child.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					return &ExitError{Code: exitErr.ExitCode(), Err: err}
				}
				return &ExitError{Code: 1, Err: err}
			}
			return nil
		},
	}

	// Everything after -- belongs to the child command.
	runCmd.Flags().SetInterspersed(false)

	return runCmd
}

// resolveCommand finds name on the activation's PATH. The default exec
// lookup resolves against the parent process environment before cmd.Env is
// even consulted, which would miss tools that exist only inside the
// environment (or silently pick a system copy over the environment's one).
func resolveCommand(name, pathEnv string) (string, error) {
	if strings.ContainsAny(name, "/"+string(os.PathSeparator)) {
		return name, nil
	}

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if runtime.GOOS != platform.Windows && info.Mode()&0o111 == 0 {
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("%s: executable file not found in the activated environment's PATH", name)
}
