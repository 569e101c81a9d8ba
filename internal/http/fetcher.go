// Package http implements the page fetcher: an HTTP client dressed up
// with realistic browser headers, optional TLS fingerprinting, optional
// robots.txt respect and a single configurable proxy.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/BenjaminSRussell/ziphound/internal/types"
)

// Listing pages are small; anything larger is not a directory index.
const maxBodySize = 10 * 1024 * 1024

// Fetcher retrieves directory-listing pages. It implements
// crawler.Fetcher.
type Fetcher struct {
	client  *http.Client
	profile BrowserProfile
	robots  *robotsChecker
}

// NewFetcher builds a fetcher from the crawl configuration.
func NewFetcher(config types.Config) (*Fetcher, error) {
	transport := &http.Transport{
		MaxIdleConns:        config.Workers * 2,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if config.ProxyURL != "" {
		proxyURL, err := url.Parse(config.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	if config.EnableTLS {
		applyFingerprint(transport, TLSProfileFor(config.Browser))
	}

	profile := ProfileFor(config.Browser)
	if config.UserAgent != "" {
		profile.UserAgent = config.UserAgent
	}

	f := &Fetcher{
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		profile: profile,
	}

	if config.RespectRobots {
		f.robots = newRobotsChecker(f.client, profile.UserAgent)
	}

	return f, nil
}

// Fetch retrieves a single page. Non-2xx responses and transport
// failures both come back as a *FetchError so callers can treat them
// uniformly and decide on retries.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, int, error) {
	if f.robots != nil && !f.robots.Allowed(ctx, pageURL) {
		return nil, 0, &FetchError{URL: pageURL, Err: errRobotsBlocked}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, &FetchError{URL: pageURL, Err: err}
	}
	f.profile.Apply(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, &FetchError{URL: pageURL, StatusCode: resp.StatusCode, Err: err}
	}

	return body, resp.StatusCode, nil
}

// UserAgent exposes the effective User-Agent, mainly for logging.
func (f *Fetcher) UserAgent() string {
	return f.profile.UserAgent
}
