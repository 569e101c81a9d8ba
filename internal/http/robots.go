package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/temoto/robotstxt"
)

// robotsChecker caches robots.txt per host and answers path queries.
// An unreachable or missing robots.txt allows everything, matching
// conventional crawler behavior.
type robotsChecker struct {
	client    *http.Client
	userAgent string
	cache     sync.Map // map[string]*robotstxt.RobotsData
}

func newRobotsChecker(client *http.Client, userAgent string) *robotsChecker {
	return &robotsChecker{
		client:    client,
		userAgent: userAgent,
	}
}

// Allowed reports whether the crawler may fetch pageURL.
func (rc *robotsChecker) Allowed(ctx context.Context, pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)

	if cached, ok := rc.cache.Load(robotsURL); ok {
		if robots, ok := cached.(*robotstxt.RobotsData); ok {
			return robots.TestAgent(u.Path, rc.userAgent)
		}
	}

	robots := rc.fetchRobots(ctx, robotsURL)
	if robots == nil {
		// Absent or unreadable robots.txt allows everything; cache
		// that so we do not re-fetch it for every page.
		robots, _ = robotstxt.FromString("")
	}

	rc.cache.Store(robotsURL, robots)
	return robots.TestAgent(u.Path, rc.userAgent)
}

// fetchRobots returns nil when robots.txt is absent or unreadable.
func (rc *robotsChecker) fetchRobots(ctx context.Context, robotsURL string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", rc.userAgent)

	resp, err := rc.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil
	}

	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil
	}
	return robots
}
