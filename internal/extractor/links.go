package extractor

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/CrazyVinc/web-scraper/internal/metadata"
	"github.com/CrazyVinc/web-scraper/pkg/failure"
	"github.com/CrazyVinc/web-scraper/pkg/urlutil"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Parse HTML into a DOM tree
- Collect the href of every anchor
- Resolve each href against the crawl's base URL

Every anchor yields exactly one link, in document order. Fragments and
schemes are kept as written so anomaly checks see the link as found;
hrefs that cannot be parsed are returned trimmed but unresolved.

The extractor does not filter; deciding what to follow belongs to the scheduler.
*/

type Extractor interface {
	Extract(baseURL string, htmlByte []byte) (ExtractionResult, failure.ClassifiedError)
}

type LinkExtractor struct {
	metadataSink metadata.MetadataSink
}

func NewLinkExtractor(
	metadataSink metadata.MetadataSink,
) LinkExtractor {
	return LinkExtractor{
		metadataSink: metadataSink,
	}
}

func (l *LinkExtractor) Extract(
	baseURL string,
	htmlByte []byte,
) (ExtractionResult, failure.ClassifiedError) {
	result, err := l.extract(baseURL, htmlByte)
	if err != nil {
		l.metadataSink.RecordError(
			time.Now(),
			"extractor",
			"LinkExtractor.Extract",
			mapExtractionErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, baseURL),
			},
		)
		return ExtractionResult{}, err
	}
	return result, nil
}

func (l *LinkExtractor) extract(baseURL string, htmlByte []byte) (ExtractionResult, *ExtractionError) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return ExtractionResult{}, &ExtractionError{
			Message:   fmt.Sprintf("base url %q is not absolute", baseURL),
			Retryable: false,
			Cause:     ErrCauseInvalidBaseURL,
		}
	}

	root, err := html.Parse(bytes.NewReader(htmlByte))
	if err != nil {
		return ExtractionResult{}, &ExtractionError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: false,
			Cause:     ErrCauseMalformedHTML,
		}
	}
	doc := goquery.NewDocumentFromNode(root)

	links := []string{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		link, err := urlutil.Resolve(baseURL, href)
		if err != nil {
			link = href
		}
		links = append(links, link)
	})

	return ExtractionResult{Links: links}, nil
}
