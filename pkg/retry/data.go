package retry

import (
	"time"

	"github.com/CrazyVinc/web-scraper/pkg/timeutil"
)

// DefaultStep is the linear backoff unit: retry n waits n * DefaultStep.
const DefaultStep = 5 * time.Second

// RetryParam holds the parameters for retry logic.
// These parameters are passed from outside (e.g., config) and should not
// be known by the retry handler internally.
type RetryParam struct {
	MaxRetries   int
	BackoffParam timeutil.BackoffParam
}

// NewRetryParam creates a new RetryParam with the given settings.
func NewRetryParam(
	maxRetries int,
	backoffParam timeutil.BackoffParam,
) RetryParam {
	return RetryParam{
		MaxRetries:   maxRetries,
		BackoffParam: backoffParam,
	}
}

// Result carries the outcome of a retried call.
type Result[T any] struct {
	value    T
	err      error
	attempts int
}

func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Err() error {
	return r.err
}

// Attempts is the number of times the function was invoked.
func (r Result[T]) Attempts() int {
	return r.attempts
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

func (r Result[T]) IsFailure() bool {
	return r.err != nil
}
