// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ManagerBinaryName returns the platform-specific file name of the
// environment manager binary.
func ManagerBinaryName() string {
	return ManagerBinaryNameFor(runtime.GOOS)
}

// ManagerBinaryNameFor returns the manager binary name for a given GOOS.
// This is a pure function so tests can cover all platforms from any host.
func ManagerBinaryNameFor(goos string) string {
	if goos == Windows {
		return "micromamba.exe"
	}
	return "micromamba"
}

// EnvBinSubdirs returns the subdirectories of an environment prefix that
// hold executables, in PATH precedence order. Conda-style environments use
// bare prefix + Scripts + Library\bin on Windows and bin elsewhere.
func EnvBinSubdirs(goos string) []string {
	if goos == Windows {
		return []string{"", "Scripts", "Library\\bin"}
	}
	return []string{"bin"}
}
