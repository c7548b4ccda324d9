package common

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrMaxRetries indicates that all retry attempts have been exhausted.
var ErrMaxRetries = errors.New("max retries exceeded")

// RetryOptions configures WithRetry.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 100 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 5 * time.Second
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 2.0
	}
	return o
}

// backoff returns the wait before attempt n+1, capped at MaxDelay.
func (o RetryOptions) backoff(n int) time.Duration {
	d := float64(o.InitialDelay) * math.Pow(o.Multiplier, float64(n-1))
	if d > float64(o.MaxDelay) {
		return o.MaxDelay
	}
	return time.Duration(d)
}

// WithRetry runs operation until it succeeds, fails permanently, or runs out
// of attempts. Only errors for which IsRetryable reports true are retried.
func WithRetry(ctx context.Context, operation func() error, opts RetryOptions) error {
	opts = opts.withDefaults()

	var err error
	for attempt := 1; ; attempt++ {
		if err = operation(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt >= opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempt, err)
		}

		wait := opts.backoff(attempt)
		LogDebug("retrying after transient failure", Fields{
			"attempt":      attempt,
			"max_attempts": opts.MaxAttempts,
			"wait":         wait.String(),
			"error":        err.Error(),
		})

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
