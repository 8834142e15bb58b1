// SPDX-License-Identifier: MPL-2.0

package specfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "environment.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write spec fixture: %v", err)
	}
	return path
}

func TestLoadValidSpec(t *testing.T) {
	t.Parallel()

	path := writeSpec(t, `
name: installer_env
channels:
  - conda-forge
  - defaults
dependencies:
  - python=3.8
  - numpy
  - pip:
      - torch
`)

	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if spec.Name != "installer_env" {
		t.Errorf("Name = %q, want installer_env", spec.Name)
	}
	if len(spec.Channels) != 2 || spec.Channels[0] != "conda-forge" {
		t.Errorf("Channels = %v", spec.Channels)
	}
	if len(spec.Dependencies) != 3 {
		t.Fatalf("Dependencies = %v, want 3 entries", spec.Dependencies)
	}
	if spec.Dependencies[0].Raw != "python=3.8" || spec.Dependencies[0].Nested {
		t.Errorf("first dependency = %+v", spec.Dependencies[0])
	}
	if spec.Dependencies[2].Raw != "pip" || !spec.Dependencies[2].Nested {
		t.Errorf("pip dependency = %+v", spec.Dependencies[2])
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrSpecNotFound) {
		t.Errorf("Load() error = %v, want ErrSpecNotFound", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeSpec(t, "name: [unclosed")

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("Load() error = %v, want ErrInvalidSpec", err)
	}
}

func TestLoadMissingName(t *testing.T) {
	t.Parallel()

	path := writeSpec(t, `
channels: [conda-forge]
dependencies: [python]
`)

	_, err := Load(path)
	var invalidErr *InvalidSpecError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("Load() error = %v, want InvalidSpecError", err)
	}
	if invalidErr.Reason != "missing environment name" {
		t.Errorf("Reason = %q", invalidErr.Reason)
	}
}

func TestLoadEmptyDependencies(t *testing.T) {
	t.Parallel()

	path := writeSpec(t, `
name: installer_env
channels: [conda-forge]
dependencies: []
`)

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("Load() error = %v, want ErrInvalidSpec", err)
	}
}

func TestDependencyString(t *testing.T) {
	t.Parallel()

	plain := Dependency{Raw: "numpy"}
	if plain.String() != "numpy" {
		t.Errorf("String() = %q", plain.String())
	}

	nested := Dependency{Raw: "pip", Nested: true}
	if nested.String() != "pip (nested)" {
		t.Errorf("String() = %q", nested.String())
	}
}
