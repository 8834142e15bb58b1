// SPDX-License-Identifier: MPL-2.0

package manager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Compile-time interface check
var _ Manager = (*MicromambaCLI)(nil)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// MicromambaCLIOption configures a MicromambaCLI.
	MicromambaCLIOption func(*MicromambaCLI)

	// MicromambaCLI invokes the micromamba binary through os/exec.
	//
	// The manager binary is self-contained; every operation shells out and
	// captures stderr so failures carry a diagnostic instead of being
	// silently ignored.
	MicromambaCLI struct {
		binaryPath  string
		execCommand ExecCommandFunc
		logger      *log.Logger
	}
)

// WithExecCommand overrides the exec.Cmd factory. Tests use this to record
// invocations without running a real binary.
func WithExecCommand(fn ExecCommandFunc) MicromambaCLIOption {
	return func(c *MicromambaCLI) {
		c.execCommand = fn
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) MicromambaCLIOption {
	return func(c *MicromambaCLI) {
		c.logger = logger
	}
}

// NewMicromambaCLI creates a Manager that drives the binary at binaryPath.
func NewMicromambaCLI(binaryPath string, opts ...MicromambaCLIOption) *MicromambaCLI {
	c := &MicromambaCLI{
		binaryPath:  binaryPath,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.Default().WithPrefix("micromamba")
	}
	return c
}

// Name returns the manager name.
func (c *MicromambaCLI) Name() string {
	return "micromamba"
}

// BinaryPath returns the path of the binary being invoked.
func (c *MicromambaCLI) BinaryPath() string {
	return c.binaryPath
}

// Version runs `micromamba --version` and returns the trimmed output.
func (c *MicromambaCLI) Version(ctx context.Context) (string, error) {
	out, err := c.runCapture(ctx, "query version", versionArgs())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ShellInit runs the one-time `micromamba shell init` for rootPrefix.
func (c *MicromambaCLI) ShellInit(ctx context.Context, rootPrefix string) error {
	_, err := c.runCapture(ctx, "initialize shell hook", shellInitArgs(rootPrefix))
	return err
}

// HookScript returns the activation hook script for rootPrefix.
func (c *MicromambaCLI) HookScript(ctx context.Context, rootPrefix string) (string, error) {
	return c.runCapture(ctx, "emit shell hook", shellHookArgs(rootPrefix))
}

// CreateEnv runs `micromamba create` with the declarative spec file.
// Progress output streams to opts.Stdout/opts.Stderr while stderr is also
// captured for the error path.
func (c *MicromambaCLI) CreateEnv(ctx context.Context, opts CreateEnvOptions) error {
	args := createEnvArgs(opts)
	c.logger.Debug("creating environment", "prefix", opts.Prefix, "spec", opts.SpecFile)

	cmd := c.execCommand(ctx, c.binaryPath, args...)

	var stderrBuf bytes.Buffer
	cmd.Stdout = opts.Stdout
	cmd.Stderr = &stderrBuf
	if opts.Stderr != nil {
		cmd.Stderr = io.MultiWriter(opts.Stderr, &stderrBuf)
	}

	if err := cmd.Run(); err != nil {
		return c.invocationError("create env", args, err, stderrBuf.String())
	}
	return nil
}

// runCapture runs the binary with args, returning stdout. Stderr is captured
// and attached to the returned InvocationError on failure.
func (c *MicromambaCLI) runCapture(ctx context.Context, operation string, args []string) (string, error) {
	c.logger.Debug("invoking manager", "operation", operation, "args", strings.Join(args, " "))

	cmd := c.execCommand(ctx, c.binaryPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", c.invocationError(operation, args, err, stderr.String())
	}
	return stdout.String(), nil
}

func (c *MicromambaCLI) invocationError(operation string, args []string, err error, stderr string) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
		err = nil // exit code and stderr say it all
	}
	return &InvocationError{
		Operation: operation,
		Args:      append([]string{c.binaryPath}, args...),
		ExitCode:  exitCode,
		Stderr:    stderr,
		Cause:     err,
	}
}

// --- Argument builders ---
//
// Kept as pure functions so argument construction is testable without
// running anything.

func versionArgs() []string {
	return []string{"--version"}
}

func shellInitArgs(rootPrefix string) []string {
	return []string{"shell", "init", "--shell", "bash", "--root-prefix", rootPrefix}
}

func shellHookArgs(rootPrefix string) []string {
	return []string{"shell", "hook", "--shell", "posix", "--root-prefix", rootPrefix}
}

func createEnvArgs(opts CreateEnvOptions) []string {
	return []string{
		"create", "--yes",
		"--root-prefix", opts.RootPrefix,
		"--prefix", opts.Prefix,
		"--file", opts.SpecFile,
	}
}

// String describes the CLI for logs.
func (c *MicromambaCLI) String() string {
	return fmt.Sprintf("micromamba(%s)", c.binaryPath)
}
