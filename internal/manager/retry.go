// SPDX-License-Identifier: MPL-2.0

package manager

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryInvocation runs op up to maxAttempts times with exponential backoff,
// retrying only manager invocation failures (ErrManagerInvocation). Package
// downloads during environment creation flake; any other error is permanent
// and returned immediately. Cancellation wins over the retry policy: once
// ctx is done, no further attempt is made and the current error is returned.
// On exhaustion the last invocation error is returned.
func RetryInvocation(
	ctx context.Context,
	maxAttempts int,
	baseBackoff time.Duration,
	op func(attempt int) error,
) error {
	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("retry aborted: %w", err)
			}
			time.Sleep(baseBackoff * time.Duration(1<<(attempt-1)))
		}

		err := op(attempt)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !errors.Is(err, ErrManagerInvocation) {
			return err
		}
		lastErr = err
	}
	return lastErr
}
