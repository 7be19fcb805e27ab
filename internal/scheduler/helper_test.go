package scheduler_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/CrazyVinc/web-scraper/internal/config"
	"github.com/CrazyVinc/web-scraper/internal/extractor"
	"github.com/CrazyVinc/web-scraper/internal/fetcher"
	"github.com/CrazyVinc/web-scraper/internal/metadata"
	"github.com/CrazyVinc/web-scraper/internal/scheduler"
	"github.com/CrazyVinc/web-scraper/pkg/failure"
	"github.com/CrazyVinc/web-scraper/pkg/retry"
	"github.com/stretchr/testify/require"
)

// page builds an HTML body linking to every given href.
func page(hrefs ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, href := range hrefs {
		fmt.Fprintf(&b, `<a href="%s">link</a>`, href)
	}
	b.WriteString("</body></html>")
	return b.String()
}

// siteFetcher serves pages from memory. URLs missing from pages fail.
// It records call counts and the peak number of concurrent calls.
type siteFetcher struct {
	pages   map[string]string
	latency time.Duration
	// release, when set, holds every fetch until it is closed
	release chan struct{}

	mu       sync.Mutex
	calls    map[string]int
	inFlight atomic.Int32
	peak     atomic.Int32
}

func newSiteFetcher(pages map[string]string) *siteFetcher {
	return &siteFetcher{
		pages: pages,
		calls: map[string]int{},
	}
}

func (f *siteFetcher) Fetch(
	ctx context.Context,
	crawlDepth int,
	fetchParam fetcher.FetchParam,
	retryParam retry.RetryParam,
) (fetcher.FetchResult, failure.ClassifiedError) {
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if current <= peak || f.peak.CompareAndSwap(peak, current) {
			break
		}
	}

	pageURL := fetchParam.URL()
	key := pageURL.String()
	f.mu.Lock()
	f.calls[key]++
	f.mu.Unlock()

	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return fetcher.FetchResult{}, &fetcher.FetchError{Message: ctx.Err().Error(), Retryable: true, Cause: fetcher.ErrCauseNetworkFailure}
		}
	}
	if f.latency > 0 {
		time.Sleep(f.latency)
	}

	body, ok := f.pages[key]
	if !ok {
		return fetcher.FetchResult{}, &fetcher.FetchError{
			Message:    "status code 404",
			Retryable:  true,
			Cause:      fetcher.ErrCauseHTTPStatus,
			StatusCode: 404,
		}
	}
	return fetcher.NewFetchResultForTest(pageURL, []byte(body), 200, 1), nil
}

func (f *siteFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *siteFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// recordingSink captures the scheduler-level events; it is shared with fetch goroutines.
type recordingSink struct {
	metadata.NoopSink

	mu         sync.Mutex
	dispatched []string
	enqueued   []string
	errors     []string
}

func (s *recordingSink) RecordDispatch(pageURL string, depth int, active int, queued int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatched = append(s.dispatched, pageURL)
}

func (s *recordingSink) RecordEnqueue(link string, depth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueued = append(s.enqueued, fmt.Sprintf("%s@%d", link, depth))
}

func (s *recordingSink) RecordError(
	_ time.Time,
	_ string,
	_ string,
	_ metadata.ErrorCause,
	details string,
	_ []metadata.Attribute,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, details)
}

func (s *recordingSink) enqueuedItems() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.enqueued...)
}

// mockFinalizer is a test double that captures final crawl statistics
type mockFinalizer struct {
	calls         int
	recordedStats capturedStats
}

type capturedStats struct {
	totalPages     int
	succeededPages int
	failedPages    int
	anomalousLinks int
	duration       time.Duration
}

func (m *mockFinalizer) RecordFinalCrawlStats(
	totalPages int,
	succeededPages int,
	failedPages int,
	anomalousLinks int,
	duration time.Duration,
) {
	m.calls++
	m.recordedStats = capturedStats{
		totalPages:     totalPages,
		succeededPages: succeededPages,
		failedPages:    failedPages,
		anomalousLinks: anomalousLinks,
		duration:       duration,
	}
}

type testCrawl struct {
	scheduler *scheduler.Scheduler
	fetcher   *siteFetcher
	sink      *recordingSink
	finalizer *mockFinalizer
}

func newTestCrawl(t *testing.T, builder *config.Config, site *siteFetcher) testCrawl {
	t.Helper()
	cfg, err := builder.Build()
	require.NoError(t, err)

	sink := &recordingSink{}
	finalizer := &mockFinalizer{}
	linkExtractor := extractor.NewLinkExtractor(sink)
	s := scheduler.NewSchedulerWithDeps(cfg, sink, finalizer, site, &linkExtractor)
	return testCrawl{
		scheduler: &s,
		fetcher:   site,
		sink:      sink,
		finalizer: finalizer,
	}
}
