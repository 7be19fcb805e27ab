package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/CrazyVinc/web-scraper/pkg/failure"
	"github.com/CrazyVinc/web-scraper/pkg/timeutil"
)

// Observer is notified before each retry is slept on.
type Observer func(retryNumber int, delay time.Duration, err failure.ClassifiedError)

// ShouldRetry reports whether retry number retryNumber (1-based) is still allowed.
func ShouldRetry(retryNumber int, maxRetries int) bool {
	return retryNumber <= maxRetries
}

// DelayFor returns how long to wait before retry number retryNumber.
func DelayFor(retryNumber int, retryParam RetryParam) time.Duration {
	return timeutil.LinearBackoffDelay(retryNumber, retryParam.BackoffParam)
}

// Retry executes the provided function with retry logic.
// The function is invoked once, then re-invoked up to MaxRetries more times
// while it keeps failing with a retryable error, waiting DelayFor(n) before
// retry n. observe may be nil.
//
// Type parameter T represents the return type of the function being retried.
func Retry[T any](
	ctx context.Context,
	retryParam RetryParam,
	sleeper timeutil.Sleeper,
	observe Observer,
	fn func() (T, failure.ClassifiedError),
) Result[T] {
	var zero T

	if retryParam.MaxRetries < 0 {
		return Result[T]{
			value: zero,
			err: &RetryError{
				Message:   fmt.Sprintf("max retries cannot be negative, got %d", retryParam.MaxRetries),
				Cause:     ErrNegativeRetries,
				Retryable: true,
			},
		}
	}

	attempts := 0
	for {
		result, err := fn()
		attempts++

		if err == nil {
			return Result[T]{value: result, attempts: attempts}
		}

		if !isErrorRetryable(err) {
			return Result[T]{value: zero, err: err, attempts: attempts}
		}

		retryNumber := attempts
		if !ShouldRetry(retryNumber, retryParam.MaxRetries) {
			return Result[T]{
				value: zero,
				err: &RetryError{
					Message:   fmt.Sprintf("exhausted %d attempts. Last error: %v", attempts, err),
					Cause:     ErrExhaustedAttempts,
					Retryable: true, // This is recoverable at scheduler level
					Last:      err,
				},
				attempts: attempts,
			}
		}

		delay := DelayFor(retryNumber, retryParam)
		if observe != nil {
			observe(retryNumber, delay, err)
		}
		if sleepErr := sleeper.Sleep(ctx, delay); sleepErr != nil {
			return Result[T]{
				value: zero,
				err: &RetryError{
					Message:   fmt.Sprintf("stopped after %d attempts: %v. Last error: %v", attempts, sleepErr, err),
					Cause:     ErrInterrupted,
					Retryable: true,
					Last:      err,
				},
				attempts: attempts,
			}
		}
	}
}

// isErrorRetryable checks if an error should be retried.
// Errors that do not say otherwise are retried.
func isErrorRetryable(err failure.ClassifiedError) bool {
	type hasRetryable interface {
		IsRetryable() bool
	}
	if r, ok := err.(hasRetryable); ok {
		return r.IsRetryable()
	}
	return true
}
