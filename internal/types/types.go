package types

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds crawler configuration
type Config struct {
	BaseURL   string
	Extension string
	Workers   int
	Delay     time.Duration
	Timeout   time.Duration

	UserAgent string
	Browser   string

	OutputFile string
	DataDir    string
	LogFile    string
	LogLevel   string

	RespectRobots bool
	EnableSQLite  bool
	EnableTLS     bool
	ProxyURL      string
	MaxRetries    int
}

// Validate checks the configuration before a crawl starts.
// Any error returned here is fatal; the crawl never begins.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("base URL must be absolute http(s), got %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL has no host: %q", c.BaseURL)
	}

	if strings.TrimLeft(c.Extension, ".") == "" {
		return fmt.Errorf("target extension is required")
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Workers > 1000 {
		return fmt.Errorf("workers too high (max 1000), got %d", c.Workers)
	}

	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative, got %v", c.Delay)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got %d", c.MaxRetries)
	}
	if c.MaxRetries > 10 {
		return fmt.Errorf("max retries too high (max 10), got %d", c.MaxRetries)
	}

	if c.ProxyURL != "" {
		if _, err := url.Parse(c.ProxyURL); err != nil {
			return fmt.Errorf("invalid proxy URL %q: %w", c.ProxyURL, err)
		}
	}

	return nil
}

// NormalizedExtension returns the target extension without a leading dot,
// lowercased for case-insensitive matching.
func (c Config) NormalizedExtension() string {
	return strings.ToLower(strings.TrimLeft(c.Extension, "."))
}

// Stats contains crawl statistics
type Stats struct {
	Visited     int
	Errors      int
	Targets     int
	OutOfScope  int
	Elapsed     time.Duration
	Interrupted bool
}

// PageRecord contains information about a fetched directory listing
type PageRecord struct {
	URL        string    `json:"url"`
	StatusCode int       `json:"status_code"`
	LinkCount  int       `json:"link_count"`
	Targets    int       `json:"targets"`
	FetchedAt  time.Time `json:"fetched_at"`
	Error      string    `json:"error,omitempty"`
}
