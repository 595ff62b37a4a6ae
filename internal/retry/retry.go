// Package retry implements the bounded, jittered retry wrapper that
// surrounds every statement susceptible to deadlocks under the singleton
// subquery's non-atomicity (reservation's MySQL path, lock reclamation,
// job save/destroy).
package retry

import (
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// MaxAttempts is the number of retries permitted after the first failure
// (11 total attempts), matching the "maxAttempts = 10" parameter from the
// source algorithm.
const MaxAttempts = 10

// RetryError wraps the last error seen by OnDeadlock, whether it was a
// deadlock-exhaustion or any other error that passed through the wrapper.
// Callers distinguish kinds by inspecting Message, not by type-switching on
// the wrapped cause.
type RetryError struct {
	Message string
	cause   error
}

func (e *RetryError) Error() string { return e.Message }

// Unwrap exposes the original error for errors.Is/errors.As.
func (e *RetryError) Unwrap() error { return e.cause }

func wrap(err error) *RetryError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RetryError); ok {
		return re
	}
	return &RetryError{Message: err.Error(), cause: err}
}

// jitterBackOff produces a uniform 0-100ms delay per attempt, no exponential
// growth, matching "sleep rand() * 0.1 seconds" from the source algorithm.
type jitterBackOff struct{}

func (jitterBackOff) NextBackOff() time.Duration {
	return time.Duration(rand.Float64() * float64(100*time.Millisecond))
}

func (jitterBackOff) Reset() {}

// OnDeadlock executes fn. If fn returns an error matching IsDeadlockError,
// it sleeps a uniform jitter and retries, up to MaxAttempts additional
// times. Any other error (or final exhaustion) is wrapped in RetryError and
// returned; fn succeeding at any point returns nil.
func OnDeadlock(fn func() error) error {
	bo := backoff.WithMaxRetries(jitterBackOff{}, MaxAttempts)

	operation := func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if IsDeadlockError(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	if err := backoff.Retry(operation, bo); err != nil {
		return wrap(err)
	}
	return nil
}
