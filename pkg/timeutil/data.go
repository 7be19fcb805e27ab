package timeutil

import "time"

// Linear backoff parameters
// example:
//
//	step := 5 * time.Second  // attempt 1 waits 5s, attempt 2 waits 10s, ...
//	maxDuration := 0         // no cap
type BackoffParam struct {
	step        time.Duration
	maxDuration time.Duration
}

func NewBackoffParam(
	step time.Duration,
	maxDuration time.Duration,
) BackoffParam {
	return BackoffParam{
		step:        step,
		maxDuration: maxDuration,
	}
}

func (b *BackoffParam) Step() time.Duration {
	return b.step
}

// MaxDuration is the cap applied to the computed delay. Zero means uncapped.
func (b *BackoffParam) MaxDuration() time.Duration {
	return b.maxDuration
}
