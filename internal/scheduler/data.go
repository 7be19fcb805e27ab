package scheduler

import (
	"time"

	"github.com/CrazyVinc/web-scraper/internal/frontier"
	"github.com/CrazyVinc/web-scraper/internal/scope"
	"github.com/CrazyVinc/web-scraper/internal/stats"
	"github.com/CrazyVinc/web-scraper/pkg/failure"
)

// CrawlingExecution is what one ExecuteCrawl call produced.
type CrawlingExecution struct {
	SessionID string
	Stats     stats.Stats
	// DispatchOrder lists admitted URLs in the order their fetches started.
	DispatchOrder []string
	// Interrupted is set when the context ended before the crawl drained.
	Interrupted bool
	// DroppedPending counts queued items discarded because of the interruption.
	DroppedPending int
}

// crawlSession is the mutable state of a single run. Only the event loop
// goroutine touches it.
type crawlSession struct {
	ledger         *frontier.Ledger
	collector      *stats.Collector
	filter         scope.Filter
	startedAt      time.Time
	terminated     bool
	interrupted    bool
	droppedPending int
	dispatchOrder  []string
}

// pageOutcome is sent back to the event loop by a dispatched fetch.
type pageOutcome struct {
	item  frontier.WorkItem
	links []string
	err   failure.ClassifiedError
}
