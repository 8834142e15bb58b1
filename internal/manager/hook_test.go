// SPDX-License-Identifier: MPL-2.0

package manager

import (
	"context"
	"slices"
	"strings"
	"testing"
)

func TestApplyHookExportsVars(t *testing.T) {
	t.Parallel()

	script := `
export MAMBA_ROOT_PREFIX=/base/env/mamba
export MAMBA_EXE="$MAMBA_ROOT_PREFIX/micromamba"
PATH="/base/env/mamba/bin:$PATH"
export PATH
`
	base := []string{"PATH=/usr/bin", "HOME=/home/u"}

	env, err := ApplyHook(context.Background(), script, base)
	if err != nil {
		t.Fatalf("ApplyHook() error: %v", err)
	}

	if env["MAMBA_ROOT_PREFIX"] != "/base/env/mamba" {
		t.Errorf("MAMBA_ROOT_PREFIX = %q", env["MAMBA_ROOT_PREFIX"])
	}
	if env["MAMBA_EXE"] != "/base/env/mamba/micromamba" {
		t.Errorf("MAMBA_EXE = %q", env["MAMBA_EXE"])
	}
	if env["PATH"] != "/base/env/mamba/bin:/usr/bin" {
		t.Errorf("PATH = %q", env["PATH"])
	}
	// Base vars untouched by the hook survive.
	if env["HOME"] != "/home/u" {
		t.Errorf("HOME = %q", env["HOME"])
	}
}

func TestApplyHookParseError(t *testing.T) {
	t.Parallel()

	_, err := ApplyHook(context.Background(), "if then fi", nil)
	if err == nil || !strings.Contains(err.Error(), "parse activation hook") {
		t.Errorf("ApplyHook() error = %v, want parse error", err)
	}
}

func TestApplyHookDoesNotLeakUnexported(t *testing.T) {
	t.Parallel()

	env, err := ApplyHook(context.Background(), "local_tmp=/scratch", []string{"PATH=/usr/bin"})
	if err != nil {
		t.Fatalf("ApplyHook() error: %v", err)
	}
	if _, ok := env["local_tmp"]; ok {
		t.Error("unexported shell variable leaked into activation env")
	}
}

func TestEnvToSliceSorted(t *testing.T) {
	t.Parallel()

	got := EnvToSlice(map[string]string{"B": "2", "A": "1", "C": "3"})
	want := []string{"A=1", "B=2", "C=3"}
	if !slices.Equal(got, want) {
		t.Errorf("EnvToSlice = %v, want %v", got, want)
	}
}
