package metadata_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/CrazyVinc/web-scraper/internal/metadata"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestRecorder_RecordErrorCarriesURLAndRunID(t *testing.T) {
	var buf bytes.Buffer
	recorder := metadata.NewRecorder(zerolog.New(&buf), "run-1")

	recorder.RecordError(
		time.Now(),
		"fetcher",
		"HtmlFetcher.Fetch",
		metadata.CauseNetworkFailure,
		"connection refused",
		[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, "https://ex.com/a")},
	)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "run-1", lines[0]["run_id"])
	assert.Equal(t, "https://ex.com/a", lines[0]["url"])
	assert.Equal(t, "network_failure", lines[0]["cause"])
	assert.Equal(t, "connection refused", lines[0]["message"])
}

func TestRecorder_RecordRetryMessage(t *testing.T) {
	var buf bytes.Buffer
	recorder := metadata.NewRecorder(zerolog.New(&buf), "run-1")

	recorder.RecordRetry("https://ex.com", 2, 10*time.Second, "timeout")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "Retry attempt #2", lines[0]["message"])
}

func TestRecorder_DispatchAndDiscovery(t *testing.T) {
	var buf bytes.Buffer
	recorder := metadata.NewRecorder(zerolog.New(&buf).Level(zerolog.InfoLevel), "run-1")

	recorder.RecordDispatch("https://ex.com/a", 1, 2, 5)
	recorder.RecordDiscovery("https://ex.com/a", 4)
	recorder.RecordEnqueue("https://ex.com/b", 2) // debug, filtered out

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "Crawling", lines[0]["message"])
	assert.EqualValues(t, 2, lines[0]["active"])
	assert.EqualValues(t, 5, lines[0]["queue"])
	assert.Equal(t, "Found 4 links", lines[1]["message"])
}

func TestRecorder_FinalStats(t *testing.T) {
	var buf bytes.Buffer
	recorder := metadata.NewRecorder(zerolog.New(&buf), "run-1")

	recorder.RecordFinalCrawlStats(3, 2, 1, 1, 1500*time.Millisecond)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.EqualValues(t, 3, lines[0]["pages"])
	assert.EqualValues(t, 1500, lines[0]["duration_ms"])
}

func TestErrorCause_String(t *testing.T) {
	assert.Equal(t, "unknown", metadata.CauseUnknown.String())
	assert.Equal(t, "retry_failure", metadata.CauseRetryFailure.String())
	assert.Equal(t, "unknown", metadata.ErrorCause(99).String())
}
