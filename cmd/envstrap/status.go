// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"envstrap-cli/internal/bootstrap"

	"github.com/spf13/cobra"
)

// newStatusCommand creates the `envstrap status` command.
func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show provisioning progress for the base directory",
		Long: `Show how far provisioning has gotten under the base directory.

Reads only the filesystem; nothing is provisioned or modified. The state
is derived from what actually exists on disk, so it stays accurate even
after a run was interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			baseDir := resolvedBaseDir()
			if baseDir == "" {
				return reportBootstrapError(&bootstrap.ConfigurationError{
					Field:  "base_dir",
					Reason: "not set; pass --base-dir, set ENVSTRAP_BASE_DIR, or configure base_dir",
				})
			}

			layout := bootstrap.NewLayout(baseDir)
			state := bootstrap.Inspect(layout)

			fmt.Println(TitleStyle.Render("Provisioning status"))
			fmt.Println()
			fmt.Printf("%s %s\n", SubtitleStyle.Render("base dir:"), PathStyle.Render(layout.BaseDir))
			fmt.Printf("%s %s\n", SubtitleStyle.Render("state:"), renderState(state))
			fmt.Println()

			printStep("root prefix", state >= bootstrap.StateRootPrefixReady, layout.RootPrefix())
			printStep("manager binary", state >= bootstrap.StateBinaryInstalled, layout.BinaryPath())
			printStep("shell integration", state >= bootstrap.StateShellHookInitialized, layout.ShellMarkerDir())
			printStep("environment", state >= bootstrap.StateEnvironmentCreated, layout.EnvDir())

			if receipt, err := bootstrap.LoadReceipt(layout.ReceiptPath()); err == nil {
				fmt.Println()
				fmt.Println(TitleStyle.Render("Last provisioning run"))
				fmt.Printf("  %s %s\n", SubtitleStyle.Render("env name:"), receipt.EnvName)
				fmt.Printf("  %s %s\n", SubtitleStyle.Render("manager version:"), receipt.ManagerVersion)
				fmt.Printf("  %s %s\n", SubtitleStyle.Render("first provisioned:"), receipt.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				fmt.Printf("  %s %s\n", SubtitleStyle.Render("last verified:"), receipt.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
			}

			return nil
		},
	}
}

func renderState(state bootstrap.State) string {
	if state >= bootstrap.StateEnvironmentCreated {
		return SuccessStyle.Render(state.String())
	}
	if state == bootstrap.StateUninitialized {
		return SubtitleStyle.Render(state.String())
	}
	return WarningStyle.Render(state.String())
}

func printStep(name string, done bool, path string) {
	mark := SubtitleStyle.Render("·")
	if done {
		mark = SuccessStyle.Render("✓")
	}
	fmt.Printf("  %s %-18s %s\n", mark, name, SubtitleStyle.Render(path))
}
