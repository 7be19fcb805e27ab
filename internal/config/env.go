package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/CrazyVinc/web-scraper/internal/report"
	"github.com/CrazyVinc/web-scraper/pkg/timeutil"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvBaseURL               = "BASE_URL"
	EnvMaxConcurrentRequests = "MAX_CONCURRENT_REQUESTS"
	EnvMaxDepth              = "MAX_DEPTH"
	EnvForbiddenPatterns     = "FORBIDDEN_PATTERNS"
	EnvMaxTimeout            = "MAX_TIMEOUT"
	EnvRetries               = "RETRIES"
	EnvRetryMaxDelay         = "RETRY_MAX_DELAY"
	EnvUserAgent             = "USER_AGENT"
	EnvLogLevel              = "LOG_LEVEL"
	EnvLogFile               = "LOG_FILE"
	EnvReportFormat          = "REPORT_FORMAT"
)

var envKeys = []string{
	EnvBaseURL,
	EnvMaxConcurrentRequests,
	EnvMaxDepth,
	EnvForbiddenPatterns,
	EnvMaxTimeout,
	EnvRetries,
	EnvRetryMaxDelay,
	EnvUserAgent,
	EnvLogLevel,
	EnvLogFile,
	EnvReportFormat,
}

// LoadEnvFile copies variables from a dotenv file into the process environment.
// Variables already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrEnvFileFail, path, err)
	}
	return nil
}

// FromEnv builds a Config from the process environment.
func FromEnv() (Config, error) {
	builder, err := EnvBuilder()
	if err != nil {
		return Config{}, err
	}
	return builder.Build()
}

// EnvBuilder reads the process environment into a builder so callers can
// override single values before Build. Malformed durations and pattern
// lists fail here; everything else is validated by Build.
func EnvBuilder() (*Config, error) {
	v := viper.New()
	for _, key := range envKeys {
		// BindEnv only errors when called without a key
		_ = v.BindEnv(key)
	}
	v.SetDefault(EnvUserAgent, DefaultUserAgent)
	v.SetDefault(EnvLogLevel, DefaultLogLevel)
	v.SetDefault(EnvReportFormat, string(report.FormatMarkdown))

	patterns, err := parsePatterns(v.GetString(EnvForbiddenPatterns))
	if err != nil {
		return nil, err
	}

	timeout, err := timeutil.ParseDuration(v.GetString(EnvMaxTimeout), timeutil.DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTimeout, EnvMaxTimeout, err)
	}

	retryMaxDelay, err := timeutil.ParseDuration(v.GetString(EnvRetryMaxDelay), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTimeout, EnvRetryMaxDelay, err)
	}

	concurrency := intOr(v.GetString(EnvMaxConcurrentRequests), DefaultMaxConcurrentRequests)
	if concurrency < 1 {
		concurrency = DefaultMaxConcurrentRequests
	}

	maxDepth := intOr(v.GetString(EnvMaxDepth), 0)
	if maxDepth < 0 {
		maxDepth = 0
	}

	retries := intOr(v.GetString(EnvRetries), DefaultRetries)
	if retries < 0 {
		retries = DefaultRetries
	}

	return WithDefault(strings.TrimSpace(v.GetString(EnvBaseURL))).
		WithForbiddenPatterns(patterns).
		WithMaxConcurrentRequests(concurrency).
		WithMaxDepth(maxDepth).
		WithTimeout(timeout).
		WithRetries(retries).
		WithRetryMaxDelay(retryMaxDelay).
		WithUserAgent(v.GetString(EnvUserAgent)).
		WithLogLevel(v.GetString(EnvLogLevel)).
		WithLogFile(v.GetString(EnvLogFile)).
		WithReportFormat(report.Format(v.GetString(EnvReportFormat))), nil
}

func parsePatterns(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var patterns []string
	if err := json.Unmarshal([]byte(raw), &patterns); err != nil {
		return nil, fmt.Errorf("%w: %s must be a JSON array of strings: %v", ErrInvalidForbiddenPatterns, EnvForbiddenPatterns, err)
	}
	if patterns == nil {
		patterns = []string{}
	}
	return patterns, nil
}

// intOr parses raw as a base-10 integer, returning fallback for blank or non-numeric input.
func intOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}
