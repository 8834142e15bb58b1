// SPDX-License-Identifier: MPL-2.0

// Package config loads envstrap configuration.
//
// Configuration merges three layers, lowest precedence first: built-in
// defaults, a CUE config file (validated against the embedded schema), and
// ENVSTRAP_* environment variables. Command-line flags override all of them
// at the call site.
package config
