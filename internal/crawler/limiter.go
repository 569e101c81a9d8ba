package crawler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is the shared request-rate gate. All workers acquire from the
// same limiter, so consecutive grants are at least minInterval apart
// globally, not per worker. With burst 1 the underlying token bucket
// degenerates to exactly the inter-request spacing we want.
type Limiter struct {
	rl *rate.Limiter
}

// NewLimiter creates a limiter enforcing minInterval between grants.
// A zero or negative interval disables rate limiting.
func NewLimiter(minInterval time.Duration) *Limiter {
	if minInterval <= 0 {
		return &Limiter{rl: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{rl: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Acquire blocks until the caller may issue a request or the context is
// canceled.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.rl.Wait(ctx)
}
