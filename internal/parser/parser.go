// Package parser extracts and classifies links from directory-listing
// pages.
package parser

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/BenjaminSRussell/ziphound/internal/types"
)

// ListingParser classifies anchors on a file-index page into
// subdirectories and target files. It implements crawler.Classifier.
type ListingParser struct {
	// extension without leading dot, lowercase
	extension string
}

// NewListingParser creates a parser looking for files with the given
// extension (case-insensitive, with or without a leading dot).
func NewListingParser(extension string) *ListingParser {
	return &ListingParser{
		extension: strings.ToLower(strings.TrimLeft(extension, ".")),
	}
}

// Classify parses the page and returns in-page links resolved against
// pageURL, split into directory candidates and target files. Malformed
// HTML degrades to an empty listing; goquery parses what it can and so
// do we.
func (p *ListingParser) Classify(htmlBody []byte, pageURL string) types.Listing {
	var listing types.Listing

	base, err := url.Parse(pageURL)
	if err != nil {
		return listing
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return listing
	}

	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		resolved := resolveHref(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		switch {
		case p.IsTargetFile(resolved):
			listing.Targets = append(listing.Targets, resolved)
		case IsDirectory(resolved):
			listing.Directories = append(listing.Directories, resolved)
		}
	})

	return listing
}

// IsTargetFile reports whether the URL's last path segment carries the
// target extension. Matching is case-insensitive.
func (p *ListingParser) IsTargetFile(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), "."+p.extension)
}

// IsDirectory reports whether the URL looks like a subdirectory by the
// file-index convention of a trailing slash.
func IsDirectory(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(u.Path, "/")
}

// resolveHref turns an anchor href into a normalized absolute URL, or
// "" for links a listing crawler must not follow: non-navigational
// schemes, parent-directory references and column-sorting queries.
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") {
		return ""
	}

	// Parent links in index pages are the classic infinite-loop
	// trap; the scope guard would catch them, but there is no point
	// even resolving them.
	if href == ".." || href == "../" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(u)
	resolved.Fragment = ""
	resolved.RawQuery = ""
	resolved.Scheme = strings.ToLower(resolved.Scheme)
	resolved.Host = strings.ToLower(resolved.Host)

	trailingSlash := strings.HasSuffix(resolved.Path, "/")
	resolved.Path = path.Clean("/" + resolved.Path)
	if trailingSlash && resolved.Path != "/" {
		resolved.Path += "/"
	}

	return resolved.String()
}
