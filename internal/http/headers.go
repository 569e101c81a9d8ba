package http

import (
	"net/http"
	"strings"
)

// BrowserProfile represents a coherent browser header fingerprint.
// Sending the full set, not just a User-Agent, keeps file-index servers
// that sniff headers from serving stripped-down pages. Accept-Encoding
// is left to the transport so gzip decompression stays transparent.
type BrowserProfile struct {
	UserAgent       string
	Accept          string
	AcceptLanguage  string
	SecChUA         string
	SecChUAPlatform string
	SecChUAMobile   string
	SecFetchSite    string
	SecFetchMode    string
	SecFetchDest    string
	UpgradeInsecure string
}

var browserProfiles = map[string]BrowserProfile{
	"chrome": {
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		Accept:          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		AcceptLanguage:  "en-US,en;q=0.9",
		SecChUA:         `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`,
		SecChUAPlatform: `"Windows"`,
		SecChUAMobile:   "?0",
		SecFetchSite:    "none",
		SecFetchMode:    "navigate",
		SecFetchDest:    "document",
		UpgradeInsecure: "1",
	},
	"firefox": {
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:134.0) Gecko/20100101 Firefox/134.0",
		Accept:          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		AcceptLanguage:  "en-US,en;q=0.5",
		SecFetchSite:    "none",
		SecFetchMode:    "navigate",
		SecFetchDest:    "document",
		UpgradeInsecure: "1",
	},
	"safari": {
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.2 Safari/605.1.15",
		Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		AcceptLanguage: "en-US,en;q=0.9",
		SecFetchSite:   "none",
		SecFetchMode:   "navigate",
		SecFetchDest:   "document",
	},
	"edge": {
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36 Edg/131.0.0.0",
		Accept:          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8",
		AcceptLanguage:  "en-US,en;q=0.9",
		SecChUA:         `"Microsoft Edge";v="131", "Chromium";v="131", "Not_A Brand";v="24"`,
		SecChUAPlatform: `"Windows"`,
		SecChUAMobile:   "?0",
		SecFetchSite:    "none",
		SecFetchMode:    "navigate",
		SecFetchDest:    "document",
		UpgradeInsecure: "1",
	},
}

// ProfileFor returns the header profile for a browser name, falling
// back to Chrome for unknown names. An empty name selects the default.
func ProfileFor(browser string) BrowserProfile {
	if p, ok := browserProfiles[strings.ToLower(browser)]; ok {
		return p
	}
	return browserProfiles["chrome"]
}

// Apply sets the profile headers on a request.
func (p BrowserProfile) Apply(req *http.Request) {
	req.Header.Set("User-Agent", p.UserAgent)
	req.Header.Set("Accept", p.Accept)
	req.Header.Set("Accept-Language", p.AcceptLanguage)

	if p.SecChUA != "" {
		req.Header.Set("Sec-Ch-Ua", p.SecChUA)
	}
	if p.SecChUAPlatform != "" {
		req.Header.Set("Sec-Ch-Ua-Platform", p.SecChUAPlatform)
	}
	if p.SecChUAMobile != "" {
		req.Header.Set("Sec-Ch-Ua-Mobile", p.SecChUAMobile)
	}
	if p.SecFetchSite != "" {
		req.Header.Set("Sec-Fetch-Site", p.SecFetchSite)
	}
	if p.SecFetchMode != "" {
		req.Header.Set("Sec-Fetch-Mode", p.SecFetchMode)
	}
	if p.SecFetchDest != "" {
		req.Header.Set("Sec-Fetch-Dest", p.SecFetchDest)
	}
	if p.UpgradeInsecure != "" {
		req.Header.Set("Upgrade-Insecure-Requests", p.UpgradeInsecure)
	}
	req.Header.Set("Connection", "keep-alive")
}
