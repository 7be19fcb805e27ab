package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/CrazyVinc/web-scraper/internal/metadata"
	"github.com/CrazyVinc/web-scraper/pkg/failure"
	"github.com/CrazyVinc/web-scraper/pkg/retry"
	"github.com/CrazyVinc/web-scraper/pkg/timeutil"
)

/*
Responsibilities

- Perform HTTP GET requests
- Apply headers and a per-attempt timeout
- Retry failed attempts with linear backoff
- Classify responses

Fetch Semantics

- Any 2xx response body is returned, whatever its content type
- Other statuses are failures and are retried like transport errors
- Bodies are read up to MaxBodyBytes
- Every page fetch is logged with metadata

The fetcher never parses content; it only returns bytes and metadata.
*/

// MaxBodyBytes bounds how much of a response body is read.
const MaxBodyBytes = 10 << 20

type HtmlFetcher struct {
	metadataSink metadata.MetadataSink
	sleeper      timeutil.Sleeper
	httpClient   *http.Client
}

func NewHtmlFetcher(
	metadataSink metadata.MetadataSink,
	sleeper timeutil.Sleeper,
) HtmlFetcher {
	return HtmlFetcher{
		metadataSink: metadataSink,
		sleeper:      sleeper,
		httpClient:   &http.Client{},
	}
}

// Init swaps the underlying HTTP client.
func (h *HtmlFetcher) Init(httpClient *http.Client) {
	h.httpClient = httpClient
}

func (h *HtmlFetcher) Fetch(
	ctx context.Context,
	crawlDepth int,
	fetchParam FetchParam,
	retryParam retry.RetryParam,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "HtmlFetcher.Fetch"
	startTime := time.Now()
	fetchUrl := fetchParam.fetchUrl.String()

	observe := func(retryNumber int, delay time.Duration, err failure.ClassifiedError) {
		h.metadataSink.RecordRetry(fetchUrl, retryNumber, delay, err.Error())
	}
	fetchTask := func() (FetchResult, failure.ClassifiedError) {
		return h.performFetch(ctx, fetchParam)
	}

	result := retry.Retry(ctx, retryParam, h.sleeper, observe, fetchTask)
	duration := time.Since(startTime)

	if result.IsSuccess() {
		page := result.Value()
		page.attempts = result.Attempts()
		h.metadataSink.RecordFetch(fetchUrl, page.Code(), duration, page.attempts, crawlDepth)
		return page, nil
	}

	err := result.Err()
	h.metadataSink.RecordFetch(fetchUrl, statusOf(err), duration, result.Attempts(), crawlDepth)

	var retryErr *retry.RetryError
	if errors.As(err, &retryErr) {
		h.recordRetryError(callerMethod, fetchParam.fetchUrl, result.Attempts(), retryErr)
		return FetchResult{}, retryErr
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		h.recordFetchError(callerMethod, fetchParam.fetchUrl, fetchErr)
		return FetchResult{}, fetchErr
	}

	// retry.Retry only hands back what fetchTask produced or a RetryError
	return FetchResult{}, &FetchError{Message: err.Error(), Cause: ErrCauseNetworkFailure}
}

// statusOf digs the last HTTP status out of a failed fetch, or 0 when no response arrived.
func statusOf(err error) int {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.StatusCode
	}
	return 0
}

func (h *HtmlFetcher) recordFetchError(callerMethod string, fetchUrl url.URL, err *FetchError) {
	h.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		mapFetchErrorToMetadataCause(err),
		err.Error(),
		errorAttrs(fetchUrl, err),
	)
}

func (h *HtmlFetcher) recordRetryError(callerMethod string, fetchUrl url.URL, attempts int, err *retry.RetryError) {
	h.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		metadata.CauseRetryFailure,
		err.Error(),
		append(
			errorAttrs(fetchUrl, err),
			metadata.NewAttr(metadata.AttrAttempts, fmt.Sprintf("%d", attempts)),
		),
	)
}

func errorAttrs(fetchUrl url.URL, err error) []metadata.Attribute {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, fetchUrl.String()),
	}
	if status := statusOf(err); status > 0 {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrHTTPStatus, fmt.Sprintf("%d", status)))
	}
	return attrs
}

func (h *HtmlFetcher) performFetch(ctx context.Context, fetchParam FetchParam) (FetchResult, failure.ClassifiedError) {
	attemptCtx := ctx
	if fetchParam.timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, fetchParam.timeout)
		defer cancel()
	}

	fetchUrl := fetchParam.fetchUrl
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, fetchUrl.String(), nil)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseInvalidRequest,
		}
	}

	for key, value := range requestHeaders(fetchParam.userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		cause := ErrCauseNetworkFailure
		if errors.Is(err, context.DeadlineExceeded) {
			cause = ErrCauseTimeout
		}
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     cause,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodyBytes))
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("status code %d", resp.StatusCode),
			Retryable:  true,
			Cause:      ErrCauseHTTPStatus,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		cause := ErrCauseReadResponseBodyError
		if errors.Is(err, context.DeadlineExceeded) {
			cause = ErrCauseTimeout
		}
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("failed to read response body: %v", err),
			Retryable:  true,
			Cause:      cause,
			StatusCode: resp.StatusCode,
		}
	}

	return FetchResult{
		url:  fetchUrl,
		body: body,
		meta: ResponseMeta{
			statusCode:          resp.StatusCode,
			transferredSizeByte: uint64(len(body)),
			responseHeaders:     resp.Header.Clone(),
		},
	}, nil
}

func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
	}
}
