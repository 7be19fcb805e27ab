package stats

import "time"

/*
Collector accumulates crawl events.

It is fed by the scheduler's event loop only, so it holds no lock.
It never looks at the queue or the visited set.
*/
type Collector struct {
	maxDepth  int
	visited   int
	succeeded int
	failed    int
	anomalies []AnomalyRecord
}

func NewCollector(maxDepth int) *Collector {
	return &Collector{
		maxDepth:  maxDepth,
		anomalies: []AnomalyRecord{},
	}
}

// OnVisited counts a URL admitted for dispatch.
func (c *Collector) OnVisited() {
	c.visited++
}

func (c *Collector) OnSucceeded() {
	c.succeeded++
}

// OnFailed counts a page whose fetch or extraction failed permanently.
func (c *Collector) OnFailed() {
	c.failed++
}

// OnAnomaly appends a record. The same link found on several pages is
// recorded once per page.
func (c *Collector) OnAnomaly(link string, foundOn string) {
	c.anomalies = append(c.anomalies, AnomalyRecord{Link: link, FoundOn: foundOn})
}

func (c *Collector) Failed() int {
	return c.failed
}

// Finalize snapshots the counters. The collector may keep being used
// afterwards without affecting the returned Stats.
func (c *Collector) Finalize(start time.Time, end time.Time) Stats {
	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	anomalies := make([]AnomalyRecord, len(c.anomalies))
	copy(anomalies, c.anomalies)
	return Stats{
		Elapsed:        elapsed,
		MaxDepth:       c.maxDepth,
		VisitedCount:   c.visited,
		SucceededCount: c.succeeded,
		FailedCount:    c.failed,
		Anomalies:      anomalies,
	}
}
