package cache

import (
	"context"
	"errors"
	"time"
)

// Fetch retry policy. Level hosts rate-limit aggressively, so the wait
// doubles after every failed attempt.
const (
	retryAttempts   = 3
	retryFirstDelay = time.Second
)

// RetryableError marks a failure worth repeating, such as a timeout or a
// 5xx response from a level host. Errors left unwrapped are treated as
// permanent and stop the retry loop on first sight.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as retryable. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries a RetryableError in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn until it succeeds, fails permanently, or uses up
// the attempt budget, in which case the last retryable error is returned.
// Cancelling ctx aborts the wait between attempts with the context's error.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryFirstDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) || attempt == retryAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
