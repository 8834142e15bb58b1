// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for envstrap.
//
// This package implements the Cobra command hierarchy: the root command,
// the provisioning commands (up, run), the inspection commands (status,
// env, config), and shell completion.
package cmd
