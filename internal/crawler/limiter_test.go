package crawler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterEnforcesGlobalInterval(t *testing.T) {
	const (
		interval     = 10 * time.Millisecond
		workers      = 10
		acquisitions = 50
	)

	l := NewLimiter(interval)
	ctx := context.Background()

	var (
		mu     sync.Mutex
		grants []time.Time
		wg     sync.WaitGroup
	)

	start := time.Now()
	perWorker := acquisitions / workers
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				require.NoError(t, l.Acquire(ctx))
				mu.Lock()
				grants = append(grants, time.Now())
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	require.Len(t, grants, acquisitions)

	// The limiter spaces grants by the interval, so the whole run
	// cannot finish faster than (n-1) intervals regardless of how
	// many workers contend.
	minElapsed := time.Duration(acquisitions-1) * interval
	assert.GreaterOrEqual(t, elapsed, minElapsed,
		"%d acquisitions finished in %v, rate limit not enforced", acquisitions, elapsed)
}

func TestLimiterZeroIntervalDoesNotBlock(t *testing.T) {
	l := NewLimiter(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Acquire(ctx))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestLimiterAcquireUnblocksOnCancel(t *testing.T) {
	l := NewLimiter(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	// First grant is immediate; the second would wait an hour.
	require.NoError(t, l.Acquire(ctx))

	done := make(chan error, 1)
	go func() {
		done <- l.Acquire(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("Acquire did not unblock on context cancellation")
	}
}
