package scheduler

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/CrazyVinc/web-scraper/internal/config"
	"github.com/CrazyVinc/web-scraper/internal/extractor"
	"github.com/CrazyVinc/web-scraper/internal/fetcher"
	"github.com/CrazyVinc/web-scraper/internal/frontier"
	"github.com/CrazyVinc/web-scraper/internal/metadata"
	"github.com/CrazyVinc/web-scraper/internal/scope"
	"github.com/CrazyVinc/web-scraper/internal/stats"
	"github.com/CrazyVinc/web-scraper/pkg/timeutil"
	"github.com/CrazyVinc/web-scraper/pkg/urlutil"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

/*
 Scheduler is the sole control-plane authority of the crawl.

 Admission guarantees:
 - Scheduler is the ONLY component allowed to decide whether a URL
   may enter the ledger.
 - Scope, forbidden-pattern and depth checks happen at discovery, before
   a link is queued.
 - A URL joins the visited set when it is admitted for dispatch, before
   its fetch starts. Re-discovering it while the fetch is outstanding
   does not queue it again.
 - Pipeline stages may detect and classify failure, but must never decide
   continuation or abortion. Retries happen inside the fetcher under the
   policy the scheduler hands it.

 Concurrency model:
 - One event loop goroutine owns the ledger and the stats collector.
 - Every dispatched page runs fetch + extraction on its own goroutine and
   reports back on a completion channel.
 - At most MaxConcurrentRequests pages are in flight.

 Metadata emission is observational only and MUST NOT influence
 scheduling, retries, or crawl termination.

 Scheduler Responsibilities:
 - Coordinate crawl lifecycle
 - Enforce the concurrency cap and the depth limit
 - Manage graceful shutdown
 - Aggregate crawl statistics
*/

type Scheduler struct {
	cfg            config.Config
	sessionID      string
	metadataSink   metadata.MetadataSink
	crawlFinalizer metadata.CrawlFinalizer
	htmlFetcher    fetcher.Fetcher
	linkExtractor  extractor.Extractor
}

func NewScheduler(cfg config.Config, logger zerolog.Logger) Scheduler {
	sessionID := uuid.NewString()
	recorder := metadata.NewRecorder(logger, sessionID)
	htmlFetcher := fetcher.NewHtmlFetcher(&recorder, timeutil.NewRealSleeper())
	linkExtractor := extractor.NewLinkExtractor(&recorder)
	return Scheduler{
		cfg:            cfg,
		sessionID:      sessionID,
		metadataSink:   &recorder,
		crawlFinalizer: &recorder,
		htmlFetcher:    &htmlFetcher,
		linkExtractor:  &linkExtractor,
	}
}

// NewSchedulerWithDeps creates a Scheduler with injected dependencies for testing.
// This constructor allows tests to provide fake fetchers, extractors and metadata
// sinks to verify behavior without relying on real infrastructure.
func NewSchedulerWithDeps(
	cfg config.Config,
	metadataSink metadata.MetadataSink,
	crawlFinalizer metadata.CrawlFinalizer,
	htmlFetcher fetcher.Fetcher,
	linkExtractor extractor.Extractor,
) Scheduler {
	return Scheduler{
		cfg:            cfg,
		sessionID:      uuid.NewString(),
		metadataSink:   metadataSink,
		crawlFinalizer: crawlFinalizer,
		htmlFetcher:    htmlFetcher,
		linkExtractor:  linkExtractor,
	}
}

// SessionID identifies this scheduler's run in logs.
func (s *Scheduler) SessionID() string {
	return s.sessionID
}

// ExecuteCrawl crawls from the configured base URL until nothing is queued
// and nothing is in flight, then returns the final statistics.
//
// Cancelling ctx stops new dispatches and discards the queue; the call still
// waits for in-flight pages and reports what was gathered.
func (s *Scheduler) ExecuteCrawl(ctx context.Context) CrawlingExecution {
	session := &crawlSession{
		ledger:    frontier.NewLedger(),
		collector: stats.NewCollector(s.cfg.MaxDepth()),
		filter:    scope.NewFilter(s.cfg.BaseURL(), s.cfg.ForbiddenPatterns()),
		startedAt: time.Now(),
	}
	// buffered to the cap so a finished page never blocks on the loop
	results := make(chan pageOutcome, s.cfg.MaxConcurrentRequests())

	session.ledger.Enqueue(frontier.NewWorkItem(s.cfg.BaseURL(), 0))
	s.refill(ctx, session, results)

	for !session.ledger.IsDrained() {
		outcome := <-results
		s.complete(session, outcome)
		s.refill(ctx, session, results)
	}

	return s.terminate(session)
}

// refill dispatches queued work while capacity allows.
func (s *Scheduler) refill(ctx context.Context, session *crawlSession, results chan<- pageOutcome) {
	if session.terminated {
		return
	}
	if ctx.Err() != nil {
		session.interrupted = true
		session.droppedPending += session.ledger.DropPending()
		return
	}

	for {
		item, ok := session.ledger.DequeueIfCapacity(s.cfg.MaxConcurrentRequests())
		if !ok {
			return
		}
		if !s.admit(session, item) {
			continue
		}
		s.dispatch(ctx, session, item, results)
	}
}

// admit is the last gate before a fetch: depth, then the visited set.
func (s *Scheduler) admit(session *crawlSession, item frontier.WorkItem) bool {
	if !s.withinDepth(item.Depth()) {
		return false
	}
	return session.ledger.TryAdmit(item.URL())
}

func (s *Scheduler) withinDepth(depth int) bool {
	maxDepth := s.cfg.MaxDepth()
	return maxDepth == 0 || depth <= maxDepth
}

func (s *Scheduler) dispatch(ctx context.Context, session *crawlSession, item frontier.WorkItem, results chan<- pageOutcome) {
	session.ledger.MarkActive()
	session.collector.OnVisited()
	session.dispatchOrder = append(session.dispatchOrder, item.URL())
	s.metadataSink.RecordDispatch(item.URL(), item.Depth(), session.ledger.Active(), session.ledger.Pending())

	go func() {
		results <- s.process(ctx, item)
	}()
}

// process runs on its own goroutine and must not touch the session.
func (s *Scheduler) process(ctx context.Context, item frontier.WorkItem) pageOutcome {
	pageURL, err := url.Parse(item.URL())
	if err != nil {
		fetchErr := &fetcher.FetchError{
			Message:   fmt.Sprintf("unparseable url: %v", err),
			Retryable: false,
			Cause:     fetcher.ErrCauseInvalidRequest,
		}
		s.metadataSink.RecordError(
			time.Now(),
			"scheduler",
			"Scheduler.process",
			metadata.CauseUnknown,
			fetchErr.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, item.URL()),
				metadata.NewAttr(metadata.AttrDepth, strconv.Itoa(item.Depth())),
			},
		)
		return pageOutcome{item: item, err: fetchErr}
	}

	fetchParam := fetcher.NewFetchParam(*pageURL, s.cfg.UserAgent(), s.cfg.Timeout())
	fetchResult, fetchErr := s.htmlFetcher.Fetch(ctx, item.Depth(), fetchParam, s.cfg.RetryParam())
	if fetchErr != nil {
		// logged by the fetcher
		return pageOutcome{item: item, err: fetchErr}
	}

	extraction, extractErr := s.linkExtractor.Extract(s.cfg.BaseURL(), fetchResult.Body())
	if extractErr != nil {
		return pageOutcome{item: item, err: extractErr}
	}
	return pageOutcome{item: item, links: extraction.Links}
}

func (s *Scheduler) complete(session *crawlSession, outcome pageOutcome) {
	session.ledger.MarkDone()

	if outcome.err != nil {
		// every failure is permanent here: retries already happened in the fetcher
		session.collector.OnFailed()
		return
	}

	session.collector.OnSucceeded()
	s.metadataSink.RecordDiscovery(outcome.item.URL(), len(outcome.links))
	s.discover(session, outcome.item, outcome.links)
}

// discover records anomalies for every link found on item's page, exactly as
// found, then queues the followable ones.
func (s *Scheduler) discover(session *crawlSession, item frontier.WorkItem, links []string) {
	nextDepth := item.Depth() + 1
	for _, link := range links {
		if session.filter.Classify(link).Anomalous {
			session.collector.OnAnomaly(link, item.URL())
		}

		target, ok := urlutil.FollowTarget(link)
		if !ok {
			continue
		}
		if !session.filter.Classify(target).Follow || !s.withinDepth(nextDepth) || session.ledger.Seen(target) {
			continue
		}
		session.ledger.Enqueue(frontier.NewWorkItem(target, nextDepth))
		s.metadataSink.RecordEnqueue(target, nextDepth)
	}
}

func (s *Scheduler) terminate(session *crawlSession) CrawlingExecution {
	session.terminated = true
	summary := session.collector.Finalize(session.startedAt, time.Now())

	s.crawlFinalizer.RecordFinalCrawlStats(
		summary.VisitedCount,
		summary.SucceededCount,
		summary.FailedCount,
		summary.AnomalyCount(),
		summary.Elapsed,
	)

	return CrawlingExecution{
		SessionID:      s.sessionID,
		Stats:          summary,
		DispatchOrder:  session.dispatchOrder,
		Interrupted:    session.interrupted,
		DroppedPending: session.droppedPending,
	}
}
