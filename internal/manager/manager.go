// SPDX-License-Identifier: MPL-2.0

package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrManagerInvocation is the sentinel error wrapped by InvocationError.
var ErrManagerInvocation = errors.New("manager invocation failed")

type (
	// Manager defines the operations envstrap needs from the environment
	// manager binary.
	Manager interface {
		// Name returns the manager name (e.g., "micromamba").
		Name() string
		// BinaryPath returns the path of the binary being invoked.
		BinaryPath() string
		// Version runs the manager's version query as a smoke test and
		// returns the reported version string.
		Version(ctx context.Context) (string, error)
		// ShellInit performs the one-time shell integration setup under
		// rootPrefix. Callers must gate this on the integration marker;
		// re-running it has side effects.
		ShellInit(ctx context.Context, rootPrefix string) error
		// HookScript returns the manager's shell activation hook script
		// for rootPrefix. The script is evaluated, never sourced into the
		// current process.
		HookScript(ctx context.Context, rootPrefix string) (string, error)
		// CreateEnv creates an environment at opts.Prefix from the
		// declarative spec file. This is the expensive, network-dependent
		// operation.
		CreateEnv(ctx context.Context, opts CreateEnvOptions) error
	}

	// CreateEnvOptions configures an environment creation.
	CreateEnvOptions struct {
		// RootPrefix is the manager's private runtime directory.
		RootPrefix string
		// Prefix is the target environment directory.
		Prefix string
		// SpecFile is the declarative spec describing the environment.
		SpecFile string
		// Stdout and Stderr receive the manager's progress output.
		// Stderr output is additionally captured for error reporting.
		Stdout io.Writer
		Stderr io.Writer
	}

	// InvocationError is returned when the manager binary exits non-zero or
	// cannot be started. It wraps ErrManagerInvocation for errors.Is().
	InvocationError struct {
		// Operation names the failed manager operation (e.g., "create env").
		Operation string
		// Args are the full arguments the binary was invoked with.
		Args []string
		// ExitCode is the binary's exit code, or -1 if it never ran.
		ExitCode int
		// Stderr is the captured standard error output, trimmed.
		Stderr string
		// Cause is the underlying exec error, if any.
		Cause error
	}
)

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%v: %s (exit code %d)", ErrManagerInvocation, e.Operation, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *InvocationError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrManagerInvocation
}

// Is reports sentinel identity so errors.Is(err, ErrManagerInvocation) holds
// even when Cause is set.
func (e *InvocationError) Is(target error) bool {
	return target == ErrManagerInvocation
}
