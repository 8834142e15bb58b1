// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"path/filepath"

	"envstrap-cli/internal/platform"
)

// Fixed sub-paths under the base directory. These match the layout the
// downstream installer expects and are not configurable.
const (
	envSubdir        = "env"
	rootPrefixName   = "mamba"
	envDirName       = "installer_env"
	stagingDirName   = ".installer_env.staging"
	lockFileName     = ".envstrap.lock"
	receiptFileName  = "receipt.toml"
	shellMarkerEtc   = "etc"
	shellMarkerHooks = "profile.d"
)

// Layout resolves every provisioned path from the base directory. All paths
// are computed once at process start; nothing is cached on disk beyond the
// filesystem side effects themselves.
type Layout struct {
	BaseDir string
}

// NewLayout creates a Layout for baseDir with the path cleaned.
func NewLayout(baseDir string) Layout {
	return Layout{BaseDir: filepath.Clean(baseDir)}
}

// EnvRoot is the parent of the root prefix and environment directory.
func (l Layout) EnvRoot() string {
	return filepath.Join(l.BaseDir, envSubdir)
}

// RootPrefix is the manager's private runtime directory.
func (l Layout) RootPrefix() string {
	return filepath.Join(l.EnvRoot(), rootPrefixName)
}

// EnvDir is the target environment directory.
func (l Layout) EnvDir() string {
	return filepath.Join(l.EnvRoot(), envDirName)
}

// StagingDir is the temporary sibling the environment is created into before
// being atomically renamed to EnvDir. A sibling (same filesystem) keeps the
// rename atomic.
func (l Layout) StagingDir() string {
	return filepath.Join(l.EnvRoot(), stagingDirName)
}

// BinaryPath is where the manager binary is installed. The copy is
// overwritten on every run so the active binary always matches the shipped
// version.
func (l Layout) BinaryPath() string {
	return filepath.Join(l.RootPrefix(), platform.ManagerBinaryName())
}

// ShellMarkerDir is the directory the manager's one-time shell integration
// creates. Its existence gates re-initialization.
func (l Layout) ShellMarkerDir() string {
	return filepath.Join(l.RootPrefix(), shellMarkerEtc, shellMarkerHooks)
}

// LockPath is the advisory lock file serializing provisioning runs for this
// base directory.
func (l Layout) LockPath() string {
	return filepath.Join(l.BaseDir, lockFileName)
}

// ReceiptPath is the provisioning receipt recording what was installed.
func (l Layout) ReceiptPath() string {
	return filepath.Join(l.RootPrefix(), receiptFileName)
}

// DefaultSpecPath is where the installer payload ships the environment spec.
func (l Layout) DefaultSpecPath() string {
	return filepath.Join(l.BaseDir, "installer", "yaml", "environment.yaml")
}

// DefaultBinarySource is where the installer payload ships the per-platform
// manager binary.
func (l Layout) DefaultBinarySource() string {
	return filepath.Join(l.BaseDir, "installer", "bin", platform.ManagerBinaryName())
}
