// Package scope decides which discovered links the crawler may follow.
//
// All checks are plain string operations over the link as discovered:
// scope is a prefix match against the base URL and forbidden patterns are
// prefix matches against absolute URLs resolved once at startup.
package scope

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/CrazyVinc/web-scraper/pkg/urlutil"
)

type Reason string

const (
	ReasonInScope    Reason = "in scope"
	ReasonOutOfScope Reason = "out of scope"
	ReasonForbidden  Reason = "forbidden"
)

// Decision is the classification of one discovered link.
type Decision struct {
	// Follow is true when the link may be queued, depth permitting.
	Follow bool
	// Anomalous is independent of Follow.
	Anomalous bool
	Reason    Reason
}

// InScope reports whether link starts with baseURL.
func InScope(link, baseURL string) bool {
	return strings.HasPrefix(link, baseURL)
}

// IsForbidden reports whether link starts with any of the patterns.
func IsForbidden(link string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.HasPrefix(link, pattern) {
			return true
		}
	}
	return false
}

// IsAnomalous reports whether the last character of link is an ASCII uppercase letter.
func IsAnomalous(link string) bool {
	if link == "" {
		return false
	}
	last := link[len(link)-1]
	return last >= 'A' && last <= 'Z'
}

// ResolvePatterns resolves each pattern against baseURL into an absolute URL prefix.
func ResolvePatterns(baseURL string, patterns []string) ([]string, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	resolved := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		absolute, err := urlutil.Resolve(baseURL, pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve forbidden pattern %q: %w", pattern, err)
		}
		resolved = append(resolved, absolute)
	}
	return resolved, nil
}

// Filter bundles the base URL and the resolved forbidden patterns.
type Filter struct {
	baseURL   string
	forbidden []string
}

func NewFilter(baseURL string, forbidden []string) Filter {
	patterns := make([]string, len(forbidden))
	copy(patterns, forbidden)
	return Filter{
		baseURL:   baseURL,
		forbidden: patterns,
	}
}

func (f Filter) Classify(link string) Decision {
	decision := Decision{Anomalous: IsAnomalous(link)}
	switch {
	case !InScope(link, f.baseURL):
		decision.Reason = ReasonOutOfScope
	case IsForbidden(link, f.forbidden):
		decision.Reason = ReasonForbidden
	default:
		decision.Reason = ReasonInScope
		decision.Follow = true
	}
	return decision
}
