package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/CrazyVinc/web-scraper/internal/report"
	"github.com/CrazyVinc/web-scraper/internal/scope"
	"github.com/CrazyVinc/web-scraper/pkg/retry"
	"github.com/CrazyVinc/web-scraper/pkg/timeutil"
)

const (
	DefaultMaxConcurrentRequests = 5
	DefaultRetries               = 3
	DefaultUserAgent             = "web-scraper/1.0"
	DefaultLogLevel              = "info"
)

type Config struct {
	//===============
	//  Crawl scope
	//===============
	// Seed of the crawl and prefix every followed link must start with.
	baseURL string
	// Absolute URL prefixes that are never followed. Resolved against baseURL by Build.
	forbiddenPatterns []string

	//===============
	// Limits
	//===============
	// Maximum number of page fetches in flight at once
	maxConcurrentRequests int
	// Maximum number of hyperlink hops from the base URL. 0 means unlimited
	maxDepth int

	//===============
	// Fetch
	//===============
	// Deadline of a single request attempt. 0 disables it
	timeout time.Duration
	// Retries after the first failed attempt
	retries int
	// Linear backoff unit: retry n waits n * retryStep
	retryStep time.Duration
	// Upper bound for a single backoff wait. 0 means no bound
	retryMaxDelay time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string

	//===============
	// Output
	//===============
	logLevel     string
	logFile      string
	reportFormat report.Format
}

// WithDefault creates a new Config with the provided base URL and default values for all other fields.
// baseURL is mandatory; Build rejects an empty or relative one.
func WithDefault(baseURL string) *Config {
	defaultConfig := Config{
		baseURL:               baseURL,
		forbiddenPatterns:     []string{},
		maxConcurrentRequests: DefaultMaxConcurrentRequests,
		maxDepth:              0,
		timeout:               timeutil.DefaultTimeout,
		retries:               DefaultRetries,
		retryStep:             retry.DefaultStep,
		retryMaxDelay:         0,
		userAgent:             DefaultUserAgent,
		logLevel:              DefaultLogLevel,
		reportFormat:          report.FormatMarkdown,
	}
	return &defaultConfig
}

func (c *Config) WithBaseURL(baseURL string) *Config {
	c.baseURL = baseURL
	return c
}

// WithForbiddenPatterns takes patterns as written by the user, absolute or relative.
func (c *Config) WithForbiddenPatterns(patterns []string) *Config {
	c.forbiddenPatterns = patterns
	return c
}

func (c *Config) WithMaxConcurrentRequests(n int) *Config {
	c.maxConcurrentRequests = n
	return c
}

func (c *Config) WithMaxDepth(depth int) *Config {
	c.maxDepth = depth
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithRetries(retries int) *Config {
	c.retries = retries
	return c
}

func (c *Config) WithRetryStep(step time.Duration) *Config {
	c.retryStep = step
	return c
}

func (c *Config) WithRetryMaxDelay(maxDelay time.Duration) *Config {
	c.retryMaxDelay = maxDelay
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) WithLogFile(path string) *Config {
	c.logFile = path
	return c
}

func (c *Config) WithReportFormat(format report.Format) *Config {
	c.reportFormat = format
	return c
}

func (c *Config) Build() (Config, error) {
	if c.baseURL == "" {
		return Config{}, ErrMissingBaseURL
	}
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return Config{}, fmt.Errorf("%w: %q must be an absolute http(s) url", ErrInvalidBaseURL, c.baseURL)
	}

	if c.maxConcurrentRequests < 1 {
		return Config{}, fmt.Errorf("%w: max concurrent requests must be positive, got %d", ErrInvalidConfig, c.maxConcurrentRequests)
	}
	if c.maxDepth < 0 {
		return Config{}, fmt.Errorf("%w: max depth cannot be negative, got %d", ErrInvalidConfig, c.maxDepth)
	}
	if c.retries < 0 {
		return Config{}, fmt.Errorf("%w: retries cannot be negative, got %d", ErrInvalidConfig, c.retries)
	}
	if c.timeout < 0 || c.retryStep < 0 || c.retryMaxDelay < 0 {
		return Config{}, fmt.Errorf("%w: durations cannot be negative", ErrInvalidTimeout)
	}
	format, err := report.ParseFormat(string(c.reportFormat))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	resolved, err := scope.ResolvePatterns(c.baseURL, c.forbiddenPatterns)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidForbiddenPatterns, err)
	}

	built := *c
	built.forbiddenPatterns = resolved
	built.reportFormat = format
	return built, nil
}

func (c Config) BaseURL() string {
	return c.baseURL
}

// ForbiddenPatterns returns the resolved, absolute prefixes.
func (c Config) ForbiddenPatterns() []string {
	patterns := make([]string, len(c.forbiddenPatterns))
	copy(patterns, c.forbiddenPatterns)
	return patterns
}

func (c Config) MaxConcurrentRequests() int {
	return c.maxConcurrentRequests
}

func (c Config) MaxDepth() int {
	return c.maxDepth
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) Retries() int {
	return c.retries
}

func (c Config) RetryStep() time.Duration {
	return c.retryStep
}

func (c Config) RetryMaxDelay() time.Duration {
	return c.retryMaxDelay
}

// RetryParam is the retry policy handed to the fetcher for every page.
func (c Config) RetryParam() retry.RetryParam {
	return retry.NewRetryParam(
		c.retries,
		timeutil.NewBackoffParam(c.retryStep, c.retryMaxDelay),
	)
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) LogLevel() string {
	return c.logLevel
}

func (c Config) LogFile() string {
	return c.logFile
}

func (c Config) ReportFormat() report.Format {
	return c.reportFormat
}
