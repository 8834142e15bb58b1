// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the sentinel error wrapped by ConfigurationError.
	ErrConfiguration = errors.New("configuration error")

	// ErrProvisioning is the sentinel error wrapped by ProvisioningError.
	ErrProvisioning = errors.New("provisioning error")

	// ErrRace is the sentinel error wrapped by RaceError.
	ErrRace = errors.New("concurrent provisioning detected")
)

// Step names the bootstrap step that failed, for diagnostics and exit
// messages. Input validation and lock acquisition have their own error
// types (ConfigurationError, RaceError), so only the provisioning steps
// proper appear here.
type Step string

const (
	StepRootPrefix    Step = "create root prefix"
	StepInstallBinary Step = "install manager binary"
	StepSmokeTest     Step = "verify manager binary"
	StepShellInit     Step = "initialize shell integration"
	StepApplyHook     Step = "apply activation hook"
	StepCreateEnv     Step = "create environment"
)

type (
	// ConfigurationError reports bad or missing inputs. It wraps
	// ErrConfiguration for errors.Is() compatibility.
	ConfigurationError struct {
		// Field is the offending input (e.g., "spec_path").
		Field string
		// Path is the resolved filesystem path, when applicable.
		Path string
		// Reason explains what is wrong with the value.
		Reason string
	}

	// ProvisioningError reports a failed bootstrap step. It wraps
	// ErrProvisioning and carries the step name so callers can surface
	// exactly where the procedure aborted.
	ProvisioningError struct {
		Step  Step
		Cause error
	}

	// RaceError reports that another process holds the provisioning lock
	// for the same base directory. It wraps ErrRace.
	RaceError struct {
		LockPath string
		Cause    error
	}
)

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%v: %s", ErrConfiguration, e.Field)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("%v: step %q: %v", ErrProvisioning, e.Step, e.Cause)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Cause
}

// Is reports sentinel identity so errors.Is(err, ErrProvisioning) holds even
// though Unwrap exposes the step's cause.
func (e *ProvisioningError) Is(target error) bool {
	return target == ErrProvisioning
}

func (e *RaceError) Error() string {
	return fmt.Sprintf("%v: lock %s is held by another process", ErrRace, e.LockPath)
}

func (e *RaceError) Unwrap() error {
	return ErrRace
}

// provisioningErr wraps cause with the failing step, passing nil through.
func provisioningErr(step Step, cause error) error {
	if cause == nil {
		return nil
	}
	return &ProvisioningError{Step: step, Cause: cause}
}
