package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BenjaminSRussell/ziphound/internal/crawler"
	"github.com/BenjaminSRussell/ziphound/internal/export"
	httpx "github.com/BenjaminSRussell/ziphound/internal/http"
	"github.com/BenjaminSRussell/ziphound/internal/logging"
	"github.com/BenjaminSRussell/ziphound/internal/parser"
	"github.com/BenjaminSRussell/ziphound/internal/storage"
	"github.com/BenjaminSRussell/ziphound/internal/types"
)

var (
	baseURL   string
	extension string
	workers   int
	delay     float64
	timeout   int

	userAgent string
	browser   string

	outputFile string
	dataDir    string
	logFile    string
	logLevel   string

	respectRobots bool
	enableSQLite  bool
	enableTLS     bool
	proxyURL      string
	maxRetries    int
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl a file index and write the target URL list",
	RunE: func(cmd *cobra.Command, args []string) error {
		config := types.Config{
			BaseURL:       baseURL,
			Extension:     extension,
			Workers:       workers,
			Delay:         time.Duration(delay * float64(time.Second)),
			Timeout:       time.Duration(timeout) * time.Second,
			UserAgent:     userAgent,
			Browser:       browser,
			OutputFile:    outputFile,
			DataDir:       dataDir,
			LogFile:       logFile,
			LogLevel:      logLevel,
			RespectRobots: respectRobots,
			EnableSQLite:  enableSQLite,
			EnableTLS:     enableTLS,
			ProxyURL:      proxyURL,
			MaxRetries:    maxRetries,
		}

		return runCrawl(cmd, config)
	},
}

func runCrawl(cmd *cobra.Command, config types.Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(config.LogLevel, config.LogFile)
	if err != nil {
		return err
	}
	defer log.Sync()

	fetcher, err := httpx.NewFetcher(config)
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}

	classifier := parser.NewListingParser(config.Extension)

	store, err := storage.New(config.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	var sqlStore *storage.SQLiteStore
	if config.EnableSQLite {
		sqlStore, err = storage.NewSQLiteStore(config.DataDir + "/crawl.db")
		if err != nil {
			return fmt.Errorf("failed to initialize SQLite storage: %w", err)
		}
		defer sqlStore.Close()
	}

	c, err := crawler.New(config, log, fetcher, classifier, crawler.WithPageLog(store))
	if err != nil {
		return fmt.Errorf("failed to create crawler: %w", err)
	}

	// The command context is canceled by the signal handler in main;
	// the crawler drains gracefully and we flush whatever was found.
	targets, stats, err := c.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	if err := store.SaveTargets(targets); err != nil {
		log.Warn("failed to save targets to data dir", zap.Error(err))
	}
	if sqlStore != nil {
		if err := sqlStore.SaveTargets(targets); err != nil {
			log.Warn("failed to save targets to SQLite", zap.Error(err))
		}
	}

	if err := export.WriteText(targets, config.OutputFile); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Found %d %s files (visited %d pages, %d errors) in %v\n",
		stats.Targets, config.NormalizedExtension(), stats.Visited, stats.Errors,
		stats.Elapsed.Round(time.Millisecond))
	fmt.Printf("Results saved to: %s\n", config.OutputFile)

	if stats.Interrupted {
		return ErrInterrupted
	}
	return nil
}

func init() {
	crawlCmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL of the file index (required)")
	crawlCmd.Flags().StringVar(&extension, "ext", "zip", "Target file extension")
	crawlCmd.Flags().IntVar(&workers, "workers", 5, "Number of concurrent workers")
	crawlCmd.Flags().Float64Var(&delay, "delay", 0.5, "Minimum seconds between requests, shared across workers")
	crawlCmd.Flags().IntVar(&timeout, "timeout", 30, "Request timeout in seconds")
	crawlCmd.Flags().StringVar(&userAgent, "user-agent", "", "Override the User-Agent header")
	crawlCmd.Flags().StringVar(&browser, "browser", "chrome", "Browser header profile: chrome/firefox/safari/edge")
	crawlCmd.Flags().StringVar(&outputFile, "output", "zip_links.txt", "Output file for the target URL list")
	crawlCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Data storage directory")
	crawlCmd.Flags().StringVar(&logFile, "log-file", "", "Also write logs to this file")
	crawlCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug/info/warn/error")
	crawlCmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "Respect robots.txt")
	crawlCmd.Flags().BoolVar(&enableSQLite, "enable-sqlite", false, "Also store crawl history in SQLite")
	crawlCmd.Flags().BoolVar(&enableTLS, "enable-tls-fingerprint", false, "Use a browser TLS fingerprint for HTTPS")
	crawlCmd.Flags().StringVar(&proxyURL, "proxy", "", "Proxy URL for all requests")
	crawlCmd.Flags().IntVar(&maxRetries, "max-retries", 1, "Re-queue attempts for transient fetch failures")

	crawlCmd.MarkFlagRequired("base-url")
}
