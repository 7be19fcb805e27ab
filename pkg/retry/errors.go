package retry

import (
	"fmt"

	"github.com/CrazyVinc/web-scraper/pkg/failure"
)

type RetryErrorCause string

const (
	ErrNegativeRetries   RetryErrorCause = "negative retries"
	ErrExhaustedAttempts RetryErrorCause = "exhausted attempt"
	ErrInterrupted       RetryErrorCause = "interrupted"
)

type RetryError struct {
	Message   string
	Retryable bool
	Cause     RetryErrorCause
	Last      error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("retry error: %s, %s", e.Cause, e.Message)
}

func (e *RetryError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *RetryError) IsRetryable() bool {
	return e.Retryable
}

// Unwrap exposes the last error returned by the retried function.
func (e *RetryError) Unwrap() error {
	return e.Last
}

// Is allows errors.Is to match RetryError types
func (e *RetryError) Is(target error) bool {
	_, ok := target.(*RetryError)
	return ok
}
