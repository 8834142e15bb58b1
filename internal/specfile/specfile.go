// SPDX-License-Identifier: MPL-2.0

package specfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrSpecNotFound is the sentinel error wrapped when the spec file does not exist.
	ErrSpecNotFound = errors.New("environment spec not found")

	// ErrInvalidSpec is the sentinel error wrapped by InvalidSpecError.
	ErrInvalidSpec = errors.New("invalid environment spec")
)

type (
	// Spec is the declarative description of an isolated environment.
	// Unknown fields are preserved only in the file itself; envstrap decodes
	// just what it validates and reports.
	Spec struct {
		// Name is the environment's declared name.
		Name string `yaml:"name"`
		// Channels lists the package sources, in priority order.
		Channels []string `yaml:"channels"`
		// Dependencies lists the requested packages. Entries may be plain
		// version constraints or nested installer-specific maps; nested
		// entries are summarized rather than expanded.
		Dependencies []Dependency `yaml:"dependencies"`
	}

	// Dependency is a single dependencies entry. Plain string entries decode
	// into Raw; nested map entries (e.g. a pip: sub-list) decode their key
	// into Raw with Nested set.
	Dependency struct {
		Raw    string
		Nested bool
	}

	// InvalidSpecError is returned when a spec file parses but fails
	// validation. It wraps ErrInvalidSpec for errors.Is() compatibility.
	InvalidSpecError struct {
		Path   string
		Reason string
	}
)

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidSpec, e.Path, e.Reason)
}

func (e *InvalidSpecError) Unwrap() error {
	return ErrInvalidSpec
}

// UnmarshalYAML accepts both scalar and single-key map dependency entries.
func (d *Dependency) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		d.Raw = value.Value
		return nil
	case yaml.MappingNode:
		if len(value.Content) < 2 {
			return fmt.Errorf("empty dependency map at line %d", value.Line)
		}
		d.Raw = value.Content[0].Value
		d.Nested = true
		return nil
	default:
		return fmt.Errorf("unsupported dependency entry at line %d", value.Line)
	}
}

// String returns the entry as written, with nested sub-lists summarized.
func (d Dependency) String() string {
	if d.Nested {
		return d.Raw + " (nested)"
	}
	return d.Raw
}

// Load reads and validates a spec file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSpecNotFound, path)
		}
		return nil, fmt.Errorf("read environment spec %s: %w", path, err)
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, &InvalidSpecError{Path: path, Reason: err.Error()}
	}

	if spec.Name == "" {
		return nil, &InvalidSpecError{Path: path, Reason: "missing environment name"}
	}
	if len(spec.Dependencies) == 0 {
		return nil, &InvalidSpecError{Path: path, Reason: "empty dependency list"}
	}

	return &spec, nil
}
