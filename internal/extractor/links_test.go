package extractor_test

import (
	"testing"
	"time"

	"github.com/CrazyVinc/web-scraper/internal/extractor"
	"github.com/CrazyVinc/web-scraper/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorRecordingSink struct {
	metadata.NoopSink
	causes []metadata.ErrorCause
	attrs  [][]metadata.Attribute
}

func (s *errorRecordingSink) RecordError(
	_ time.Time,
	_ string,
	_ string,
	cause metadata.ErrorCause,
	_ string,
	attrs []metadata.Attribute,
) {
	s.causes = append(s.causes, cause)
	s.attrs = append(s.attrs, attrs)
}

func extract(t *testing.T, baseURL string, body string) []string {
	t.Helper()
	e := extractor.NewLinkExtractor(&metadata.NoopSink{})
	result, err := e.Extract(baseURL, []byte(body))
	require.Nil(t, err)
	return result.Links
}

func TestExtract_ResolvesAgainstBaseURL(t *testing.T) {
	body := `<html><body>
		<a href="/root">root</a>
		<a href="child">child</a>
		<a href="../up">up</a>
		<a href="https://other.com/x">other</a>
	</body></html>`

	links := extract(t, "https://ex.com", body)
	assert.Equal(t, []string{
		"https://ex.com/root",
		"https://ex.com/child",
		"https://ex.com/up",
		"https://other.com/x",
	}, links)
}

func TestExtract_BaseURLWithPath(t *testing.T) {
	links := extract(t, "https://ex.com/docs/", `<a href="guide">g</a><a href="/top">t</a>`)
	assert.Equal(t, []string{"https://ex.com/docs/guide", "https://ex.com/top"}, links)
}

func TestExtract_IgnoresBaseHref(t *testing.T) {
	body := `<html><head><base href="https://ex.com/v2/"></head>
		<body><a href="guide">guide</a></body></html>`

	links := extract(t, "https://ex.com", body)
	assert.Equal(t, []string{"https://ex.com/guide"}, links)
}

func TestExtract_KeepsLinksAsFound(t *testing.T) {
	body := `<a href="/page#TOP">fragment</a>
		<a href="mailto:INFO@EX.COM">mail</a>
		<a href="javascript:void(0)">js</a>
		<a href="ftp://ex.com/file">ftp</a>
		<a href="#section">anchor</a>
		<a href="">empty</a>
		<a href="  /spaced  ">spaced</a>
		<a href="http://[::1">broken</a>
		<a>no href</a>`

	links := extract(t, "https://ex.com", body)
	assert.Equal(t, []string{
		"https://ex.com/page#TOP",
		"mailto:INFO@EX.COM",
		"javascript:void(0)",
		"ftp://ex.com/file",
		"https://ex.com#section",
		"https://ex.com",
		"https://ex.com/spaced",
		"http://[::1",
	}, links)
}

func TestExtract_KeepsDuplicatesInOrder(t *testing.T) {
	body := `<a href="/B">one</a><a href="/a">two</a><a href="/B">three</a>`

	links := extract(t, "https://ex.com", body)
	assert.Equal(t, []string{"https://ex.com/B", "https://ex.com/a", "https://ex.com/B"}, links)
}

func TestExtract_NoAnchors(t *testing.T) {
	links := extract(t, "https://ex.com", `plain text, not really html`)
	assert.NotNil(t, links)
	assert.Empty(t, links)
}

func TestExtract_RelativeBaseURLIsError(t *testing.T) {
	sink := &errorRecordingSink{}
	e := extractor.NewLinkExtractor(sink)

	_, err := e.Extract("/not/absolute", []byte(`<a href="/x">x</a>`))
	require.NotNil(t, err)

	var extractionErr *extractor.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, extractor.ErrCauseInvalidBaseURL, extractionErr.Cause)
	assert.False(t, extractionErr.IsRetryable())

	require.Len(t, sink.causes, 1)
	assert.Equal(t, metadata.CauseContentInvalid, sink.causes[0])
	assert.Contains(t, sink.attrs[0], metadata.NewAttr(metadata.AttrURL, "/not/absolute"))
}
