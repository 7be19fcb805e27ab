package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/CrazyVinc/web-scraper/internal/stats"
)

// Format names a report encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat and New for unsupported formats.
var ErrUnknownFormat = fmt.Errorf("unknown report format")

// Writer renders the final crawl summary.
type Writer interface {
	Write(summary stats.Stats) error
}

// ParseFormat accepts a format name case-insensitively. Blank means markdown.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// New returns the Writer for format, writing to output.
func New(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
