package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/CrazyVinc/web-scraper/internal/build"
	"github.com/CrazyVinc/web-scraper/internal/config"
	"github.com/CrazyVinc/web-scraper/internal/logging"
	"github.com/CrazyVinc/web-scraper/internal/report"
	"github.com/CrazyVinc/web-scraper/internal/scheduler"
	"github.com/CrazyVinc/web-scraper/pkg/timeutil"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile               string
	baseURL               string
	maxDepth              int
	maxConcurrentRequests int
	retries               int
	timeout               string
	userAgent             string
	logLevel              string
	logFile               string
	format                string
	noColor               bool
}

// NewRootCmd creates the web-scraper command. Settings come from the
// environment (optionally a dotenv file); flags override single values.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "web-scraper",
		Short: "A bounded-concurrency same-origin web crawler.",
		Long: `web-scraper crawls every page reachable from BASE_URL whose address
starts with BASE_URL, skipping forbidden prefixes, with a bounded number of
requests in flight. It reports how many pages were scanned and failed and
which discovered links end in an uppercase letter.

Configuration is read from the environment (BASE_URL, MAX_CONCURRENT_REQUESTS,
MAX_DEPTH, FORBIDDEN_PATTERNS, MAX_TIMEOUT, RETRIES, ...) and from a .env file.`,
		Version:       build.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrawl(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment (missing file is ignored)")
	flags.StringVar(&opts.baseURL, "base-url", "", "base URL to crawl (overrides BASE_URL)")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum link depth from the base URL, 0 for unlimited (overrides MAX_DEPTH)")
	flags.IntVar(&opts.maxConcurrentRequests, "max-concurrent-requests", config.DefaultMaxConcurrentRequests, "maximum fetches in flight (overrides MAX_CONCURRENT_REQUESTS)")
	flags.IntVar(&opts.retries, "retries", config.DefaultRetries, "retries after a failed fetch (overrides RETRIES)")
	flags.StringVar(&opts.timeout, "timeout", "", "per-request timeout such as 500ms, 10s or 1m (overrides MAX_TIMEOUT)")
	flags.StringVar(&opts.userAgent, "user-agent", "", "User-Agent header (overrides USER_AGENT)")
	flags.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn or error (overrides LOG_LEVEL)")
	flags.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this rotating file (overrides LOG_FILE)")
	flags.StringVar(&opts.format, "format", "", "report format: markdown or json (overrides REPORT_FORMAT)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored log output")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command until it finishes or the process is interrupted.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}

func runCrawl(cmd *cobra.Command, opts *rootOptions) error {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
	}

	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}

	logOpts := logging.DefaultOptions()
	logOpts.Level = cfg.LogLevel()
	logOpts.File = cfg.LogFile()
	logOpts.Console = cmd.ErrOrStderr()
	logOpts.NoColor = opts.noColor
	logger, closer, err := logging.New(logOpts)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	reportWriter, err := report.New(cfg.ReportFormat(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	s := scheduler.NewScheduler(cfg, logger)
	logger.Info().
		Str("run_id", s.SessionID()).
		Str("base_url", cfg.BaseURL()).
		Int("max_concurrent_requests", cfg.MaxConcurrentRequests()).
		Int("max_depth", cfg.MaxDepth()).
		Strs("forbidden_patterns", cfg.ForbiddenPatterns()).
		Dur("timeout", cfg.Timeout()).
		Int("retries", cfg.Retries()).
		Msg("starting crawl")

	execution := s.ExecuteCrawl(cmd.Context())
	if execution.Interrupted {
		logger.Warn().
			Str("run_id", execution.SessionID).
			Int("dropped", execution.DroppedPending).
			Msg("crawl interrupted, reporting partial results")
	}

	return reportWriter.Write(execution.Stats)
}

// buildConfig layers explicitly set flags over the environment.
func buildConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	builder, err := config.EnvBuilder()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		builder = builder.WithBaseURL(opts.baseURL)
	}
	if flags.Changed("max-depth") {
		builder = builder.WithMaxDepth(opts.maxDepth)
	}
	if flags.Changed("max-concurrent-requests") {
		builder = builder.WithMaxConcurrentRequests(opts.maxConcurrentRequests)
	}
	if flags.Changed("retries") {
		builder = builder.WithRetries(opts.retries)
	}
	if flags.Changed("timeout") {
		timeout, err := timeutil.ParseDuration(opts.timeout, timeutil.DefaultTimeout)
		if err != nil {
			return config.Config{}, fmt.Errorf("%w: --timeout: %v", config.ErrInvalidTimeout, err)
		}
		builder = builder.WithTimeout(timeout)
	}
	if flags.Changed("user-agent") {
		builder = builder.WithUserAgent(opts.userAgent)
	}
	if flags.Changed("log-level") {
		builder = builder.WithLogLevel(opts.logLevel)
	}
	if flags.Changed("log-file") {
		builder = builder.WithLogFile(opts.logFile)
	}
	if flags.Changed("format") {
		builder = builder.WithReportFormat(report.Format(opts.format))
	}

	return builder.Build()
}
