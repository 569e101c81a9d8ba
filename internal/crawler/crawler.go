package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BenjaminSRussell/ziphound/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fetcher retrieves a single page. Implementations must surface non-2xx
// responses and transport failures as errors so the engine can count and
// retry them uniformly.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (body []byte, statusCode int, err error)
}

// Classifier extracts links from a listing page and splits them into
// subdirectories and target files. Malformed HTML yields an empty
// listing, never an error.
type Classifier interface {
	Classify(htmlBody []byte, pageURL string) types.Listing
}

// PageLog receives a record for every fetched page. Optional.
type PageLog interface {
	SavePage(record types.PageRecord) error
}

// Crawler walks a file-index tree from a base URL and collects target
// file URLs. Workers share a frontier, a rate limiter and a collector;
// each of those is internally synchronized and no worker ever holds two
// locks at once.
type Crawler struct {
	config     types.Config
	log        *zap.Logger
	fetcher    Fetcher
	classifier Classifier
	pageLog    PageLog

	frontier  *Frontier
	scope     *ScopeGuard
	limiter   *Limiter
	collector *Collector
}

// Option configures optional crawler collaborators.
type Option func(*Crawler)

// WithPageLog attaches a per-page record sink, typically the storage
// layer.
func WithPageLog(pl PageLog) Option {
	return func(c *Crawler) {
		c.pageLog = pl
	}
}

// New creates a crawler. The configuration is validated here; a config
// error is fatal and the crawl never starts.
func New(config types.Config, log *zap.Logger, fetcher Fetcher, classifier Classifier, opts ...Option) (*Crawler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	scope, err := NewScopeGuard(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build scope guard: %w", err)
	}

	c := &Crawler{
		config:     config,
		log:        log,
		fetcher:    fetcher,
		classifier: classifier,
		frontier:   NewFrontier(config.MaxRetries),
		scope:      scope,
		limiter:    NewLimiter(config.Delay),
		collector:  NewCollector(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Run seeds the frontier and drives the worker pool until the frontier
// closes or ctx is canceled. It returns the sorted target URLs and the
// crawl statistics. Per-URL failures never abort the crawl; only startup
// problems produce an error.
func (c *Crawler) Run(ctx context.Context) ([]string, types.Stats, error) {
	start := time.Now()

	seed := NormalizeURL(c.config.BaseURL)
	if !c.frontier.TryEnqueue(seed) {
		return nil, types.Stats{}, fmt.Errorf("failed to seed frontier with %q", seed)
	}

	c.log.Info("starting crawl",
		zap.String("base_url", seed),
		zap.String("extension", c.config.NormalizedExtension()),
		zap.Int("workers", c.config.Workers),
		zap.Duration("delay", c.config.Delay))

	// Cancellation closes the frontier so workers blocked in Dequeue
	// wake up and exit without draining the backlog.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			c.frontier.Close()
		case <-watchDone:
		}
	}()

	g := new(errgroup.Group)
	for i := 0; i < c.config.Workers; i++ {
		g.Go(func() error {
			c.worker(ctx)
			return nil
		})
	}
	_ = g.Wait()
	close(watchDone)

	targets, stats := c.collector.Snapshot()
	stats.Elapsed = time.Since(start)
	stats.Interrupted = ctx.Err() != nil

	c.log.Info("crawl finished",
		zap.Int("visited", stats.Visited),
		zap.Int("errors", stats.Errors),
		zap.Int("targets", stats.Targets),
		zap.Int("out_of_scope", stats.OutOfScope),
		zap.Duration("elapsed", stats.Elapsed),
		zap.Bool("interrupted", stats.Interrupted))

	return targets, stats, nil
}

// worker loops over the frontier until it closes. Every error is local:
// it is logged, counted and the worker moves on.
func (c *Crawler) worker(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		pageURL, ok := c.frontier.Dequeue()
		if !ok {
			return
		}

		if err := c.limiter.Acquire(ctx); err != nil {
			// Canceled while waiting for a slot. No fetch was
			// started, so the URL just fails over to the
			// shutdown path.
			c.frontier.MarkFailed(pageURL, false)
			return
		}

		c.processPage(ctx, pageURL)
	}
}

// processPage fetches one listing page, feeds discovered directories
// back into the frontier and records target files.
func (c *Crawler) processPage(ctx context.Context, pageURL string) {
	record := types.PageRecord{URL: pageURL, FetchedAt: time.Now()}

	body, status, err := c.fetcher.Fetch(ctx, pageURL)
	record.StatusCode = status
	if err != nil {
		c.collector.RecordError()
		requeued := c.frontier.MarkFailed(pageURL, retriableError(ctx, err))
		record.Error = err.Error()
		c.savePage(record)
		c.log.Warn("fetch failed",
			zap.String("url", pageURL),
			zap.Int("status", status),
			zap.Bool("will_retry", requeued),
			zap.Error(err))
		return
	}

	c.collector.RecordVisit()
	c.log.Debug("crawled listing", zap.String("url", pageURL))

	listing := c.classifier.Classify(body, pageURL)
	record.LinkCount = len(listing.Directories) + len(listing.Targets)
	record.Targets = len(listing.Targets)

	for _, dir := range listing.Directories {
		if !c.scope.InScope(dir) {
			c.collector.RecordOutOfScope()
			c.log.Debug("dropped out-of-scope link", zap.String("url", dir))
			continue
		}
		c.frontier.TryEnqueue(dir)
	}

	for _, target := range listing.Targets {
		if !c.scope.InScope(target) {
			c.collector.RecordOutOfScope()
			continue
		}
		if c.collector.RecordTarget(target) {
			c.log.Debug("found target", zap.String("url", target))
		}
	}

	c.savePage(record)
	c.frontier.MarkDone(pageURL)
}

// retriableError decides whether a fetch failure deserves a re-queue.
// Errors that know their own transience (the fetcher's FetchError) are
// asked directly; anything else is assumed transient unless the crawl
// itself is shutting down.
func retriableError(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return false
	}
	var r interface{ Retriable() bool }
	if errors.As(err, &r) {
		return r.Retriable()
	}
	return true
}

func (c *Crawler) savePage(record types.PageRecord) {
	if c.pageLog == nil {
		return
	}
	if err := c.pageLog.SavePage(record); err != nil {
		c.log.Warn("failed to save page record",
			zap.String("url", record.URL),
			zap.Error(err))
	}
}
