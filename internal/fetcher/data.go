package fetcher

import (
	"net/http"
	"net/url"
	"time"
)

// HTTP boundary

type FetchParam struct {
	fetchUrl  url.URL
	userAgent string
	timeout   time.Duration
}

// NewFetchParam describes one page request. A non-positive timeout disables
// the per-attempt deadline.
func NewFetchParam(fetchUrl url.URL, userAgent string, timeout time.Duration) FetchParam {
	return FetchParam{
		fetchUrl:  fetchUrl,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

func (p FetchParam) URL() url.URL {
	return p.fetchUrl
}

func (p FetchParam) UserAgent() string {
	return p.userAgent
}

func (p FetchParam) Timeout() time.Duration {
	return p.timeout
}

type FetchResult struct {
	url      url.URL
	body     []byte
	attempts int
	meta     ResponseMeta
}

func (f *FetchResult) URL() url.URL {
	return f.url
}

func (f *FetchResult) Body() []byte {
	return f.body
}

func (f *FetchResult) Code() int {
	return f.meta.statusCode
}

func (f *FetchResult) SizeByte() uint64 {
	return f.meta.transferredSizeByte
}

func (f *FetchResult) Headers() http.Header {
	return f.meta.responseHeaders
}

// Attempts is how many requests it took to obtain the body.
func (f *FetchResult) Attempts() int {
	return f.attempts
}

type ResponseMeta struct {
	statusCode          int
	transferredSizeByte uint64
	responseHeaders     http.Header
}

// NewFetchResultForTest creates a FetchResult for testing purposes.
// This allows test packages to construct FetchResult values without
// accessing unexported fields directly.
func NewFetchResultForTest(
	fetchUrl url.URL,
	body []byte,
	statusCode int,
	attempts int,
) FetchResult {
	return FetchResult{
		url:      fetchUrl,
		body:     body,
		attempts: attempts,
		meta: ResponseMeta{
			statusCode:          statusCode,
			transferredSizeByte: uint64(len(body)),
			responseHeaders:     http.Header{},
		},
	}
}
