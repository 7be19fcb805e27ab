package metadata

import (
	"time"

	"github.com/rs/zerolog"
)

/*
Metadata is write-only.
No component may read metadata to influence crawl decisions.

Recorder turns crawl events into structured log lines.
It must not:
- perform I/O decisions
- affect control flow

Events from concurrent fetches are logged in the order they reach the
logger; no causal ordering across pages is implied.
*/
type Recorder struct {
	runID  string
	logger zerolog.Logger
}

func NewRecorder(logger zerolog.Logger, runID string) Recorder {
	return Recorder{
		runID:  runID,
		logger: logger.With().Str("run_id", runID).Logger(),
	}
}

func (r *Recorder) RunID() string {
	return r.runID
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	event := r.logger.Error().
		Time("observed_at", observedAt).
		Str("package", packageName).
		Str("action", action).
		Stringer("cause", cause)
	for _, attr := range attrs {
		event = event.Str(string(attr.Key), attr.Value)
	}
	event.Msg(details)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	attempts int,
	crawlDepth int,
) {
	r.logger.Debug().
		Str("url", fetchUrl).
		Int("status", httpStatus).
		Dur("duration", duration).
		Int("attempts", attempts).
		Int("depth", crawlDepth).
		Msg("fetched")
}

func (r *Recorder) RecordRetry(fetchUrl string, retryNumber int, delay time.Duration, details string) {
	r.logger.Warn().
		Str("url", fetchUrl).
		Dur("delay", delay).
		Str("error", details).
		Msgf("Retry attempt #%d", retryNumber)
}

func (r *Recorder) RecordDispatch(pageURL string, depth int, active int, queued int) {
	r.logger.Info().
		Str("url", pageURL).
		Int("depth", depth).
		Int("active", active).
		Int("queue", queued).
		Msg("Crawling")
}

func (r *Recorder) RecordDiscovery(pageURL string, found int) {
	r.logger.Info().
		Str("url", pageURL).
		Int("links", found).
		Msgf("Found %d links", found)
}

func (r *Recorder) RecordEnqueue(link string, depth int) {
	r.logger.Debug().
		Str("url", link).
		Int("depth", depth).
		Msg("Added to queue")
}

/*
RecordFinalCrawlStats records a terminal, derived summary of a completed crawl.

Contract:
  - MUST be called exactly once per crawl execution.
  - MUST be called only after the crawl is drained.
  - Recorded stats MUST NOT influence control flow or scheduling.
*/
func (r *Recorder) RecordFinalCrawlStats(
	totalPages int,
	succeededPages int,
	failedPages int,
	anomalousLinks int,
	duration time.Duration,
) {
	r.logger.Info().
		Int("pages", totalPages).
		Int("succeeded", succeededPages).
		Int("failed", failedPages).
		Int("anomalous_links", anomalousLinks).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("crawl finished")
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		attempts int,
		crawlDepth int,
	)
	RecordRetry(fetchUrl string, retryNumber int, delay time.Duration, details string)
	RecordDispatch(pageURL string, depth int, active int, queued int)
	RecordDiscovery(pageURL string, found int)
	RecordEnqueue(link string, depth int)
}

type CrawlFinalizer interface {
	RecordFinalCrawlStats(
		totalPages int,
		succeededPages int,
		failedPages int,
		anomalousLinks int,
		duration time.Duration,
	)
}

// NoopSink, struct that implements metadata.MetadataSink but does nothing
// Scheduler (or Test) can decide whether to inject Recorder or NoopSink
// Purpose is to make metadata orthogonal
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	attempts int,
	crawlDepth int,
) {
}

func (n *NoopSink) RecordRetry(fetchUrl string, retryNumber int, delay time.Duration, details string) {
}

func (n *NoopSink) RecordDispatch(pageURL string, depth int, active int, queued int) {}

func (n *NoopSink) RecordDiscovery(pageURL string, found int) {}

func (n *NoopSink) RecordEnqueue(link string, depth int) {}

func (n *NoopSink) RecordFinalCrawlStats(
	totalPages int,
	succeededPages int,
	failedPages int,
	anomalousLinks int,
	duration time.Duration,
) {
}
