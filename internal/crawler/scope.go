package crawler

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ScopeGuard decides whether a discovered URL is eligible for visiting.
// A URL is in scope when its scheme and host match the base URL exactly
// and its path sits under the base path at a directory boundary, so
// /files/ab never matches a base of /files/a and dot segments cannot
// escape upward.
type ScopeGuard struct {
	scheme string
	host   string

	// basePath always ends with "/" so prefix checks respect
	// directory boundaries.
	basePath string
}

// NewScopeGuard builds a guard for the given base URL.
func NewScopeGuard(baseURL string) (*ScopeGuard, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute, got %q", baseURL)
	}

	basePath := path.Clean("/" + u.Path)
	if basePath != "/" {
		basePath += "/"
	}

	return &ScopeGuard{
		scheme:   strings.ToLower(u.Scheme),
		host:     strings.ToLower(u.Host),
		basePath: basePath,
	}, nil
}

// InScope reports whether candidate may be visited. It has no side
// effects and never errors; anything unparseable is simply out of scope.
func (g *ScopeGuard) InScope(candidate string) bool {
	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}

	// Reject relative URLs and other schemes outright, so a
	// malformed href can never smuggle in another host.
	if !strings.EqualFold(u.Scheme, g.scheme) {
		return false
	}
	if !strings.EqualFold(u.Host, g.host) {
		return false
	}

	// Resolve dot segments before comparing, so /files/../secret/
	// is seen for what it is.
	p := path.Clean("/" + u.Path)

	// Appending "/" makes the base directory itself a match and
	// keeps the comparison on segment boundaries.
	return strings.HasPrefix(p+"/", g.basePath)
}

// BasePath returns the normalized base path the guard encloses.
func (g *ScopeGuard) BasePath() string {
	return g.basePath
}

// NormalizeURL canonicalizes a URL for frontier and result bookkeeping:
// fragment and query are stripped and dot segments resolved. Equality
// after normalization is plain string equality.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Fragment = ""
	u.RawQuery = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	trailingSlash := strings.HasSuffix(u.Path, "/")
	u.Path = path.Clean("/" + u.Path)
	if trailingSlash && u.Path != "/" {
		u.Path += "/"
	}

	return u.String()
}
