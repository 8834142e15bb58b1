// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"envstrap-cli/internal/bootstrap"
	"envstrap-cli/internal/issue"
	"envstrap-cli/internal/manager"
	"envstrap-cli/internal/specfile"
)

// formatErrorForDisplay renders an error for the terminal, expanding
// ActionableError suggestions and, in verbose mode, the full cause chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var actionable *issue.ActionableError
	if errors.As(err, &actionable) {
		return actionable.Format(verbose)
	}
	return err.Error()
}

// issueFor maps a bootstrap failure to its catalog entry, or nil when the
// error has no dedicated guidance.
func issueFor(err error) *issue.Issue {
	switch {
	case errors.Is(err, bootstrap.ErrRace):
		return issue.Get(issue.BaseDirLockedId)
	case errors.Is(err, specfile.ErrSpecNotFound), errors.Is(err, specfile.ErrInvalidSpec):
		return issue.Get(issue.SpecFileNotFoundId)
	case errors.Is(err, manager.ErrManagerInvocation):
		return issue.Get(issue.ManagerInvocationFailedId)
	}

	var cfgErr *bootstrap.ConfigurationError
	if errors.As(err, &cfgErr) {
		switch cfgErr.Field {
		case "binary_source":
			return issue.Get(issue.BinarySourceNotFoundId)
		case "spec_path":
			return issue.Get(issue.SpecFileNotFoundId)
		case "base_dir":
			return issue.Get(issue.BaseDirNotWritableId)
		}
	}

	var provErr *bootstrap.ProvisioningError
	if errors.As(err, &provErr) && provErr.Step == bootstrap.StepRootPrefix {
		return issue.Get(issue.BaseDirNotWritableId)
	}

	return nil
}

// reportBootstrapError prints the error with its failing step and any
// catalog guidance, then returns an ExitError for Execute.
func reportBootstrapError(err error) error {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if iss := issueFor(err); iss != nil {
		if rendered, renderErr := iss.Render("dark"); renderErr == nil {
			fmt.Fprintln(os.Stderr, rendered)
		}
	}

	return &ExitError{Code: 1, Err: err}
}
