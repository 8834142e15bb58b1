// SPDX-License-Identifier: MPL-2.0

package manager

import (
	"context"
	"errors"
	"testing"
	"time"
)

func invocationFailure(op string) error {
	return &InvocationError{Operation: op, ExitCode: 1, Stderr: "download interrupted"}
}

func TestRetryInvocationSucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	err := RetryInvocation(context.Background(), 3, time.Millisecond, func(int) error {
		calls++
		if calls < 3 {
			return invocationFailure("create")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RetryInvocation() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryInvocationStopsOnNonInvocationError(t *testing.T) {
	t.Parallel()

	permanent := errors.New("staging directory not writable")
	calls := 0
	err := RetryInvocation(context.Background(), 5, time.Millisecond, func(int) error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("error = %v, want permanent", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryInvocationExhaustionReturnsLastError(t *testing.T) {
	t.Parallel()

	calls := 0
	err := RetryInvocation(context.Background(), 2, time.Millisecond, func(int) error {
		calls++
		return invocationFailure("create")
	})
	if !errors.Is(err, ErrManagerInvocation) {
		t.Errorf("error = %v, want ErrManagerInvocation", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryInvocationRespectsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := RetryInvocation(ctx, 5, time.Millisecond, func(int) error {
		calls++
		cancel()
		return invocationFailure("create")
	})
	// The invocation error would normally be retried, but cancellation
	// suppresses further attempts.
	if !errors.Is(err, ErrManagerInvocation) {
		t.Errorf("error = %v, want the aborted attempt's error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
