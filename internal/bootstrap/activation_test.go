// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"envstrap-cli/internal/platform"
)

func TestActivationVarsAreCopies(t *testing.T) {
	t.Parallel()

	layout := NewLayout("/base")
	a := newActivation(layout, "installer_env", map[string]string{"PATH": "/usr/bin"})

	vars := a.Vars()
	vars["CONDA_PREFIX"] = "tampered"

	if a.Vars()["CONDA_PREFIX"] != layout.EnvDir() {
		t.Error("Vars() exposed internal map")
	}
}

func TestActivationApplyTo(t *testing.T) {
	t.Parallel()

	layout := NewLayout("/base")
	a := newActivation(layout, "installer_env", map[string]string{"PATH": "/usr/bin"})

	cmd := exec.Command("installer")
	a.ApplyTo(cmd)

	if !slices.Contains(cmd.Env, "CONDA_DEFAULT_ENV=installer_env") {
		t.Errorf("cmd.Env missing activation var: %v", cmd.Env)
	}
}

func TestPrependEnvPathsLinux(t *testing.T) {
	t.Parallel()

	got := prependEnvPaths("/usr/bin:/bin", "/base/env/installer_env", platform.Linux)
	want := "/base/env/installer_env/bin:/usr/bin:/bin"
	if got != want {
		t.Errorf("prependEnvPaths = %q, want %q", got, want)
	}
}

func TestPrependEnvPathsNoDuplicates(t *testing.T) {
	t.Parallel()

	envBin := filepath.Join("/e", "bin")
	existing := envBin + string(os.PathListSeparator) + "/usr/bin"

	got := prependEnvPaths(existing, "/e", platform.Linux)
	if got != existing {
		t.Errorf("prependEnvPaths = %q, duplicated an entry", got)
	}
}

func TestPrependEnvPathsWindowsOrder(t *testing.T) {
	t.Parallel()

	got := prependEnvPaths("", "/e", platform.Windows)
	parts := strings.Split(got, string(os.PathListSeparator))
	if len(parts) != 3 || parts[0] != "/e" {
		t.Errorf("windows path parts = %v, want prefix-first triple", parts)
	}
}

func TestEnvironSorted(t *testing.T) {
	t.Parallel()

	a := newActivation(NewLayout("/base"), "e", map[string]string{"PATH": "/usr/bin"})
	env := a.Environ()
	if !slices.IsSorted(env) {
		t.Errorf("Environ() not sorted: %v", env)
	}
}
