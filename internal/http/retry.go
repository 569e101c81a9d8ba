package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// errRobotsBlocked marks a URL that robots.txt disallows. Asking again
// will not change the answer.
var errRobotsBlocked = errors.New("blocked by robots.txt")

// FetchError describes a failed page fetch. StatusCode is zero for
// transport-level failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retriable reports whether another attempt at this fetch may succeed.
// Server overload and transport errors are transient; client errors
// like 404 are permanent. Cancellation is never retried.
func (e *FetchError) Retriable() bool {
	if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(e.Err, errRobotsBlocked) {
		return false
	}

	if e.StatusCode == 0 {
		// Network-level failure, nothing said it is permanent.
		return true
	}

	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
