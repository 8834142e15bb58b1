// SPDX-License-Identifier: MPL-2.0

package cmd

import "testing"

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestBootstrapOptionsPrecedence(t *testing.T) {
	// Not parallel: mutates the package-level cfg and baseDirFlag.
	origCfg, origFlag := *cfg, baseDirFlag
	t.Cleanup(func() {
		*cfg, baseDirFlag = origCfg, origFlag
	})

	cfg.BaseDir = "/from/config"
	cfg.SpecPath = "/from/config/spec.yaml"
	cfg.EnvName = "cfg-env"
	baseDirFlag = ""

	opts, err := bootstrapOptions("", "", "", 0)
	if err != nil {
		t.Fatalf("bootstrapOptions() error = %v", err)
	}
	if opts.BaseDir != "/from/config" {
		t.Errorf("BaseDir = %q, want config value", opts.BaseDir)
	}
	if opts.SpecPath != "/from/config/spec.yaml" {
		t.Errorf("SpecPath = %q, want config value", opts.SpecPath)
	}
	if opts.EnvName != "cfg-env" {
		t.Errorf("EnvName = %q, want config value", opts.EnvName)
	}

	baseDirFlag = "/from/flag"
	opts, err = bootstrapOptions("/from/flag/spec.yaml", "/from/flag/micromamba", "flag-env", 0)
	if err != nil {
		t.Fatalf("bootstrapOptions() error = %v", err)
	}
	if opts.BaseDir != "/from/flag" {
		t.Errorf("BaseDir = %q, want flag to win over config", opts.BaseDir)
	}
	if opts.SpecPath != "/from/flag/spec.yaml" {
		t.Errorf("SpecPath = %q, want flag to win over config", opts.SpecPath)
	}
	if opts.BinarySource != "/from/flag/micromamba" {
		t.Errorf("BinarySource = %q, want flag value", opts.BinarySource)
	}
	if opts.EnvName != "flag-env" {
		t.Errorf("EnvName = %q, want flag to win over config", opts.EnvName)
	}
}

func TestBootstrapOptionsMissingBaseDir(t *testing.T) {
	origCfg, origFlag := *cfg, baseDirFlag
	t.Cleanup(func() {
		*cfg, baseDirFlag = origCfg, origFlag
	})

	cfg.BaseDir = ""
	baseDirFlag = ""

	if _, err := bootstrapOptions("", "", "", 0); err == nil {
		t.Fatal("bootstrapOptions() with no base dir: want error, got nil")
	}
}
