package crawler

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorDeduplicatesTargets(t *testing.T) {
	c := NewCollector()

	// Same file linked from three different listing pages.
	assert.True(t, c.RecordTarget("https://x/files/a.zip"))
	assert.False(t, c.RecordTarget("https://x/files/a.zip"))
	assert.False(t, c.RecordTarget("https://x/files/a.zip"))

	targets, stats := c.Snapshot()
	assert.Equal(t, []string{"https://x/files/a.zip"}, targets)
	assert.Equal(t, 1, stats.Targets)
}

func TestCollectorSnapshotSorted(t *testing.T) {
	c := NewCollector()
	c.RecordTarget("https://x/files/c.zip")
	c.RecordTarget("https://x/files/a.zip")
	c.RecordTarget("https://x/files/b.zip")

	targets, _ := c.Snapshot()
	assert.Equal(t, []string{
		"https://x/files/a.zip",
		"https://x/files/b.zip",
		"https://x/files/c.zip",
	}, targets)
}

func TestCollectorConcurrentCounters(t *testing.T) {
	c := NewCollector()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.RecordVisit()
			c.RecordError()
			c.RecordOutOfScope()
			c.RecordTarget(fmt.Sprintf("https://x/files/%d.zip", n))
		}(i)
	}
	wg.Wait()

	targets, stats := c.Snapshot()
	assert.Len(t, targets, workers)
	assert.Equal(t, workers, stats.Visited)
	assert.Equal(t, workers, stats.Errors)
	assert.Equal(t, workers, stats.OutOfScope)
}
