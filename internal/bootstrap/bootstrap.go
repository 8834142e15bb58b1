// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"envstrap-cli/internal/manager"
	"envstrap-cli/internal/specfile"

	"github.com/charmbracelet/log"
)

const (
	// DefaultCreateTimeout bounds a single environment-creation attempt.
	// Creation downloads packages, so this is generous.
	DefaultCreateTimeout = 30 * time.Minute
	// DefaultRetryAttempts is how many times the network-dependent creation
	// step is tried. Only creation is retried; every other step is local
	// and deterministic.
	DefaultRetryAttempts = 3
	// DefaultRetryBackoff is the base backoff between creation attempts.
	DefaultRetryBackoff = 5 * time.Second
)

type (
	// Options are the inputs to EnsureEnvironment.
	Options struct {
		// BaseDir is the root directory for all provisioned state. Required.
		BaseDir string
		// SpecPath is the declarative environment spec. Empty selects the
		// payload default under BaseDir.
		SpecPath string
		// BinarySource is the shipped manager binary. Empty selects the
		// payload default under BaseDir.
		BinarySource string
		// EnvName overrides the environment name from the spec file.
		EnvName string

		// CreateTimeout bounds each creation attempt. Zero means
		// DefaultCreateTimeout.
		CreateTimeout time.Duration
		// RetryAttempts for the creation step. Zero means DefaultRetryAttempts.
		RetryAttempts int
		// RetryBackoff between creation attempts. Zero means DefaultRetryBackoff.
		RetryBackoff time.Duration

		// Stdout and Stderr receive the manager's progress output. Nil
		// discards it.
		Stdout io.Writer
		Stderr io.Writer

		// Environ is the base environment the activation hook is applied
		// over. Nil means os.Environ().
		Environ []string
	}

	// ManagerFactory builds a Manager for the installed binary path.
	ManagerFactory func(binaryPath string) manager.Manager

	// BootstrapperOption configures a Bootstrapper.
	BootstrapperOption func(*Bootstrapper)

	// Bootstrapper runs the idempotent provisioning procedure.
	Bootstrapper struct {
		newManager ManagerFactory
		logger     *log.Logger
	}
)

// WithManagerFactory overrides how the Manager is constructed. Tests inject
// mock managers through this.
func WithManagerFactory(factory ManagerFactory) BootstrapperOption {
	return func(b *Bootstrapper) {
		b.newManager = factory
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) BootstrapperOption {
	return func(b *Bootstrapper) {
		b.logger = logger
	}
}

// New creates a Bootstrapper.
func New(opts ...BootstrapperOption) *Bootstrapper {
	b := &Bootstrapper{}
	for _, opt := range opts {
		opt(b)
	}
	if b.newManager == nil {
		b.newManager = func(binaryPath string) manager.Manager {
			return manager.NewMicromambaCLI(binaryPath)
		}
	}
	if b.logger == nil {
		b.logger = log.Default().WithPrefix("bootstrap")
	}
	return b
}

// EnsureEnvironment provisions the manager binary and the installer
// environment under opts.BaseDir, returning the resulting Activation.
//
// The procedure is idempotent: a second call with identical inputs repeats
// only the cheap steps (binary copy, smoke test, hook application) and skips
// shell-hook initialization and environment creation when already satisfied.
// Any failed step aborts the remainder; a failed creation never leaves a
// half-populated environment directory behind.
func (b *Bootstrapper) EnsureEnvironment(ctx context.Context, opts Options) (*Activation, error) {
	if opts.BaseDir == "" {
		return nil, &ConfigurationError{Field: "base_dir", Reason: "must not be empty"}
	}

	layout := NewLayout(opts.BaseDir)
	if opts.SpecPath == "" {
		opts.SpecPath = layout.DefaultSpecPath()
	}
	if opts.BinarySource == "" {
		opts.BinarySource = layout.DefaultBinarySource()
	}

	spec, err := b.validate(layout, opts)
	if err != nil {
		return nil, err
	}

	envName := opts.EnvName
	if envName == "" {
		envName = spec.Name
	}

	// Serialize concurrent callers before the first existence check; the
	// whole procedure is check-then-act.
	lock, err := acquireLock(layout.LockPath())
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	b.logger.Debug("starting from state", "state", Inspect(layout))

	// Step 1: root prefix. MkdirAll is itself idempotent.
	if err := os.MkdirAll(layout.RootPrefix(), 0o755); err != nil {
		return nil, provisioningErr(StepRootPrefix, err)
	}

	// Step 2: binary copy, unconditionally overwriting.
	if err := InstallBinary(opts.BinarySource, layout.BinaryPath()); err != nil {
		return nil, provisioningErr(StepInstallBinary, err)
	}

	mgr := b.newManager(layout.BinaryPath())

	// Step 3: smoke test. The original bootstrap ignored this exit code;
	// here a broken binary is a hard failure with its stderr attached.
	version, err := mgr.Version(ctx)
	if err != nil {
		return nil, provisioningErr(StepSmokeTest, err)
	}
	b.logger.Debug("manager binary verified", "version", version)

	// Step 4: one-time shell integration, gated on the marker directory.
	// Re-running init is side-effecting, so the gate matters.
	if !dirExists(layout.ShellMarkerDir()) {
		if err := mgr.ShellInit(ctx, layout.RootPrefix()); err != nil {
			return nil, provisioningErr(StepShellInit, err)
		}
		b.logger.Info("shell integration initialized", "root_prefix", layout.RootPrefix())
	}

	// Step 5: evaluate the activation hook into an explicit env map.
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	hookScript, err := mgr.HookScript(ctx, layout.RootPrefix())
	if err != nil {
		return nil, provisioningErr(StepApplyHook, err)
	}
	hookEnv, err := manager.ApplyHook(ctx, hookScript, environ)
	if err != nil {
		return nil, provisioningErr(StepApplyHook, err)
	}

	// Step 6: environment creation, the expensive network-dependent step
	// and the only one skipped when already satisfied.
	if !dirExists(layout.EnvDir()) {
		if err := b.createEnvironment(ctx, mgr, layout, opts); err != nil {
			return nil, err
		}
		b.logger.Info("environment created", "prefix", layout.EnvDir(), "name", envName)
	} else {
		b.logger.Debug("environment already exists, skipping creation", "prefix", layout.EnvDir())
	}

	// Step 7: activation. Purely computed; the caller decides where the
	// variables are applied.
	activation := newActivation(layout, envName, hookEnv)

	b.writeReceipt(layout, opts, envName, version)

	return activation, nil
}

// validate checks all resolved inputs, returning ConfigurationError before
// any provisioning side effect.
func (b *Bootstrapper) validate(layout Layout, opts Options) (*specfile.Spec, error) {
	spec, err := specfile.Load(opts.SpecPath)
	if err != nil {
		return nil, &ConfigurationError{
			Field:  "spec_path",
			Path:   opts.SpecPath,
			Reason: err.Error(),
		}
	}

	if info, err := os.Stat(opts.BinarySource); err != nil || info.IsDir() {
		reason := "is a directory"
		if err != nil {
			reason = err.Error()
		}
		return nil, &ConfigurationError{
			Field:  "binary_source",
			Path:   opts.BinarySource,
			Reason: reason,
		}
	}

	// The lock file lives directly under the base dir, so the dir must
	// exist before acquisition.
	if err := os.MkdirAll(layout.BaseDir, 0o755); err != nil {
		return nil, &ConfigurationError{
			Field:  "base_dir",
			Path:   layout.BaseDir,
			Reason: err.Error(),
		}
	}

	return spec, nil
}

// createEnvironment stages creation in a temporary sibling directory and
// renames it into place on success, so an aborted or failed creation leaves
// the environment directory absent rather than half-populated. Only this
// step gets a retry policy; transient network failures during package
// download are the expected failure mode.
func (b *Bootstrapper) createEnvironment(ctx context.Context, mgr manager.Manager, layout Layout, opts Options) error {
	timeout := opts.CreateTimeout
	if timeout == 0 {
		timeout = DefaultCreateTimeout
	}
	attempts := opts.RetryAttempts
	if attempts == 0 {
		attempts = DefaultRetryAttempts
	}
	backoff := opts.RetryBackoff
	if backoff == 0 {
		backoff = DefaultRetryBackoff
	}

	staging := layout.StagingDir()

	err := manager.RetryInvocation(ctx, attempts, backoff, func(attempt int) error {
		if attempt > 0 {
			b.logger.Warn("retrying environment creation", "attempt", attempt+1)
		}

		// A previous attempt's partial staging dir must not poison this one.
		if err := os.RemoveAll(staging); err != nil {
			return fmt.Errorf("clear staging directory: %w", err)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return mgr.CreateEnv(attemptCtx, manager.CreateEnvOptions{
			RootPrefix: layout.RootPrefix(),
			Prefix:     staging,
			SpecFile:   opts.SpecPath,
			Stdout:     opts.Stdout,
			Stderr:     opts.Stderr,
		})
	})
	if err != nil {
		_ = os.RemoveAll(staging)
		return provisioningErr(StepCreateEnv, err)
	}

	if err := os.Rename(staging, layout.EnvDir()); err != nil {
		_ = os.RemoveAll(staging)
		return provisioningErr(StepCreateEnv, fmt.Errorf("promote staged environment: %w", err))
	}
	return nil
}

// writeReceipt records the run in the root prefix. The receipt is
// informational; failing to write it does not fail the bootstrap.
func (b *Bootstrapper) writeReceipt(layout Layout, opts Options, envName, version string) {
	binaryHash, err := FileHash(layout.BinaryPath())
	if err != nil {
		b.logger.Warn("skipping receipt: binary hash failed", "error", err)
		return
	}
	specHash, err := FileHash(opts.SpecPath)
	if err != nil {
		b.logger.Warn("skipping receipt: spec hash failed", "error", err)
		return
	}

	receipt := Receipt{
		EnvName:        envName,
		ManagerVersion: version,
		BinaryHash:     binaryHash,
		SpecHash:       specHash,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := WriteReceipt(layout.ReceiptPath(), receipt); err != nil {
		b.logger.Warn("receipt write failed", "error", err)
	}
}
