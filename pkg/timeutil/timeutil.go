package timeutil

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is used when no duration string is provided.
const DefaultTimeout = 10 * time.Second

// ErrInvalidDuration is returned for duration strings outside the supported grammar.
var ErrInvalidDuration = fmt.Errorf("invalid time format")

// accepted: "500", "500ms", "1.5s", "5m", "1h" (unit is case-insensitive)
var durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)(ms|s|m|h)?$`)

// ParseMilliseconds converts a human readable duration string into milliseconds.
// A plain number is taken as milliseconds. Empty input is an error; callers that
// want a fallback use ParseDuration.
func ParseMilliseconds(raw string) (float64, error) {
	match := durationPattern.FindStringSubmatch(raw)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}

	switch strings.ToLower(match[2]) {
	case "s":
		return value * 1000, nil
	case "m":
		return value * 60_000, nil
	case "h":
		return value * 3_600_000, nil
	default:
		// "ms" or no unit
		return value, nil
	}
}

// ParseDuration is ParseMilliseconds returning a time.Duration, with fallback
// used when raw is empty. Whitespace is not trimmed and fails the grammar.
func ParseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	ms, err := ParseMilliseconds(raw)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

// LinearBackoffDelay returns attempt * step, capped at the max duration when one is set.
// Attempts below 1 yield no delay.
func LinearBackoffDelay(attempt int, backoffParam BackoffParam) time.Duration {
	if attempt < 1 {
		return 0
	}
	delay := time.Duration(attempt) * backoffParam.Step()
	if maxDelay := backoffParam.MaxDuration(); maxDelay > 0 && delay > maxDelay {
		return maxDelay
	}
	return delay
}

// Sleeper abstracts waiting so retry backoff can be observed in tests.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper blocks on a timer, returning early with the context error on cancellation.
type RealSleeper struct{}

func NewRealSleeper() *RealSleeper {
	return &RealSleeper{}
}

func (r *RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
