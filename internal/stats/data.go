package stats

import (
	"strconv"
	"time"
)

// AnomalyRecord is a discovered link whose last character is an uppercase
// ASCII letter, together with the page it appeared on.
type AnomalyRecord struct {
	Link    string
	FoundOn string
}

// Stats is the immutable summary of one crawl run.
type Stats struct {
	Elapsed        time.Duration
	MaxDepth       int
	VisitedCount   int
	SucceededCount int
	FailedCount    int
	Anomalies      []AnomalyRecord
}

func (s Stats) ElapsedMs() int64 {
	return s.Elapsed.Milliseconds()
}

// ElapsedSeconds is Elapsed in seconds with millisecond resolution.
func (s Stats) ElapsedSeconds() float64 {
	return float64(s.Elapsed.Milliseconds()) / 1000
}

func (s Stats) AnomalyCount() int {
	return len(s.Anomalies)
}

// MaxDepthLabel renders the depth bound, where 0 means no bound.
func (s Stats) MaxDepthLabel() string {
	if s.MaxDepth <= 0 {
		return "Unlimited"
	}
	return strconv.Itoa(s.MaxDepth)
}
