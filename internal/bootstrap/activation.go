// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"envstrap-cli/internal/manager"
	"envstrap-cli/internal/platform"
)

// Activation is the explicit result of a successful bootstrap: the full set
// of environment variables a child process needs so executable resolution
// prefers binaries inside the environment. Nothing here mutates the current
// process; callers apply the activation where they choose.
type Activation struct {
	// RootPrefix is the manager's private runtime directory.
	RootPrefix string
	// EnvDir is the activated environment directory.
	EnvDir string
	// EnvName is the environment's declared name.
	EnvName string

	vars map[string]string
}

func newActivation(layout Layout, envName string, vars map[string]string) *Activation {
	merged := make(map[string]string, len(vars)+4)
	maps.Copy(merged, vars)

	merged["MAMBA_ROOT_PREFIX"] = layout.RootPrefix()
	merged["MAMBA_EXE"] = layout.BinaryPath()
	merged["CONDA_PREFIX"] = layout.EnvDir()
	merged["CONDA_DEFAULT_ENV"] = envName
	merged["PATH"] = prependEnvPaths(merged["PATH"], layout.EnvDir(), runtime.GOOS)

	return &Activation{
		RootPrefix: layout.RootPrefix(),
		EnvDir:     layout.EnvDir(),
		EnvName:    envName,
		vars:       merged,
	}
}

// Vars returns a copy of the activation's environment variables.
func (a *Activation) Vars() map[string]string {
	out := make(map[string]string, len(a.vars))
	maps.Copy(out, a.vars)
	return out
}

// Environ returns the activation as sorted "KEY=VALUE" strings, ready for
// exec.Cmd.Env.
func (a *Activation) Environ() []string {
	return manager.EnvToSlice(a.vars)
}

// ApplyTo sets the activation as cmd's environment, replacing any previously
// configured one.
func (a *Activation) ApplyTo(cmd *exec.Cmd) {
	cmd.Env = a.Environ()
}

// prependEnvPaths puts the environment's executable directories ahead of the
// existing PATH so resolution prefers binaries inside the environment.
// Directories already present are not duplicated.
func prependEnvPaths(path, envDir, goos string) string {
	sep := string(os.PathListSeparator)
	existing := strings.Split(path, sep)

	var parts []string
	for _, sub := range platform.EnvBinSubdirs(goos) {
		dir := envDir
		if sub != "" {
			dir = filepath.Join(envDir, sub)
		}
		if !slices.Contains(existing, dir) {
			parts = append(parts, dir)
		}
	}

	if path == "" {
		return strings.Join(parts, sep)
	}
	return strings.Join(append(parts, path), sep)
}
