package crawler

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	// Bloom filter sized for ~1M URLs with 1% false positive rate.
	// The filter only short-circuits map lookups for unseen URLs; the
	// state map remains the source of truth for membership.
	bloomFilterCapacity = 1_000_000
	bloomFilterFPRate   = 0.01
)

// VisitState tracks the lifecycle of a URL in the frontier.
// A URL absent from the state map is unseen.
type VisitState uint8

const (
	StateQueued VisitState = iota + 1
	StateInFlight
	StateDone
	StateFailed
)

// Frontier manages the pending URL queue with deduplication and
// in-flight accounting. It is the single dedup choke point: every
// discovered URL, including the seed, goes through TryEnqueue.
//
// The frontier closes itself when the pending queue is empty and no URL
// is in flight. That check happens under the same lock as the in-flight
// decrement, so a worker finishing the last item closes the frontier
// exactly once and never prematurely.
type Frontier struct {
	mu   sync.Mutex
	cond *sync.Cond

	states   map[string]VisitState
	attempts map[string]int
	pending  []string
	seen     *bloom.BloomFilter

	inFlight   int
	maxRetries int
	closed     bool
}

// NewFrontier creates an empty frontier. maxRetries is the number of
// times a failed URL is re-queued before being marked failed for good.
func NewFrontier(maxRetries int) *Frontier {
	f := &Frontier{
		states:     make(map[string]VisitState),
		attempts:   make(map[string]int),
		seen:       bloom.NewWithEstimates(bloomFilterCapacity, bloomFilterFPRate),
		maxRetries: maxRetries,
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// TryEnqueue adds a URL if it has never been seen before. Returns true
// when this call was the first to discover the URL; all concurrent
// callers with the same URL see false.
func (f *Frontier) TryEnqueue(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false
	}

	urlBytes := []byte(rawURL)
	if f.seen.Test(urlBytes) {
		// Possible bloom false positive, confirm against the map.
		if _, dup := f.states[rawURL]; dup {
			return false
		}
	}

	f.seen.Add(urlBytes)
	f.states[rawURL] = StateQueued
	f.pending = append(f.pending, rawURL)
	f.cond.Signal()
	return true
}

// Dequeue blocks until a URL is available or the frontier is closed.
// The returned URL is marked in flight; the caller must follow up with
// MarkDone or MarkFailed.
func (f *Frontier) Dequeue() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for !f.closed && len(f.pending) == 0 {
		f.cond.Wait()
	}

	// Closed wins over remaining items so cancellation stops the
	// crawl without draining the backlog.
	if f.closed {
		return "", false
	}

	rawURL := f.pending[0]
	f.pending = f.pending[1:]
	f.states[rawURL] = StateInFlight
	f.inFlight++
	return rawURL, true
}

// MarkDone records a successful fetch and closes the frontier if this
// was the last outstanding item.
func (f *Frontier) MarkDone(rawURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.states[rawURL] = StateDone
	f.inFlight--
	f.closeIfDrained()
}

// MarkFailed records a failed fetch. Transient failures re-queue the
// URL up to maxRetries times; after that, or for permanent failures,
// the URL is failed for good. Returns true when the URL was re-queued.
func (f *Frontier) MarkFailed(rawURL string, retriable bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inFlight--

	if retriable && !f.closed && f.attempts[rawURL] < f.maxRetries {
		f.attempts[rawURL]++
		f.states[rawURL] = StateQueued
		f.pending = append(f.pending, rawURL)
		f.cond.Signal()
		return true
	}

	f.states[rawURL] = StateFailed
	f.closeIfDrained()
	return false
}

// Close shuts the frontier down immediately. Blocked Dequeue calls
// return false and remaining pending items are abandoned. Used for
// cooperative cancellation.
func (f *Frontier) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.cond.Broadcast()
}

// closeIfDrained must be called with the lock held.
func (f *Frontier) closeIfDrained() {
	if !f.closed && len(f.pending) == 0 && f.inFlight == 0 {
		f.closed = true
		f.cond.Broadcast()
	}
}

// State reports the visit state of a URL. The second return is false
// for URLs the frontier has never seen.
func (f *Frontier) State(rawURL string) (VisitState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.states[rawURL]
	return s, ok
}

// PendingLen returns the number of queued URLs.
func (f *Frontier) PendingLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// InFlight returns the number of URLs currently being processed.
func (f *Frontier) InFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}
