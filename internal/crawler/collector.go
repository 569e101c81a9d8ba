package crawler

import (
	"sort"
	"sync"

	"github.com/BenjaminSRussell/ziphound/internal/types"
)

// Collector accumulates discovered target URLs and crawl counters.
// Safe for concurrent use by every worker. Targets are deduplicated by
// URL, so the same file linked from several listings counts once.
type Collector struct {
	mu sync.Mutex

	targets    map[string]struct{}
	visited    int
	errors     int
	outOfScope int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		targets: make(map[string]struct{}),
	}
}

// RecordTarget adds a target URL to the result set. Returns true if the
// URL was not already recorded.
func (c *Collector) RecordTarget(rawURL string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.targets[rawURL]; dup {
		return false
	}
	c.targets[rawURL] = struct{}{}
	return true
}

// RecordVisit counts a successfully fetched page.
func (c *Collector) RecordVisit() {
	c.mu.Lock()
	c.visited++
	c.mu.Unlock()
}

// RecordError counts a failed fetch.
func (c *Collector) RecordError() {
	c.mu.Lock()
	c.errors++
	c.mu.Unlock()
}

// RecordOutOfScope counts a discovered link dropped by the scope guard.
// Not an error, kept for diagnostics.
func (c *Collector) RecordOutOfScope() {
	c.mu.Lock()
	c.outOfScope++
	c.mu.Unlock()
}

// Snapshot returns the collected targets sorted lexicographically,
// together with the counters. Sorting keeps output deterministic
// regardless of worker scheduling.
func (c *Collector) Snapshot() ([]string, types.Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	targets := make([]string, 0, len(c.targets))
	for t := range c.targets {
		targets = append(targets, t)
	}
	sort.Strings(targets)

	stats := types.Stats{
		Visited:    c.visited,
		Errors:     c.errors,
		Targets:    len(targets),
		OutOfScope: c.outOfScope,
	}
	return targets, stats
}
