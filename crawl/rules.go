// Package crawl: page filtering rules.
// Decides which discovered pages are JXR per-class source pages and which
// are navigation frames or assets to leave alone.
package crawl

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// navigationPages are the JXR frame and index pages. They carry no source block.
var navigationPages = map[string]bool{
	"index.html":            true,
	"overview-frame.html":   true,
	"overview-summary.html": true,
	"allclasses-frame.html": true,
	"package-frame.html":    true,
	"package-summary.html":  true,
}

// IsSameDomain checks if the given URL belongs to the specified domain.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == domain
}

// IsHTMLPage checks whether a URL or path names an HTML page.
func IsHTMLPage(ref string) bool {
	p := ref
	if parsed, err := url.Parse(ref); err == nil && parsed.Path != "" {
		p = parsed.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// IsXrefSource reports whether a URL or path looks like a JXR source page
// rather than one of its navigation pages.
func IsXrefSource(ref string) bool {
	if !IsHTMLPage(ref) {
		return false
	}
	p := ref
	if parsed, err := url.Parse(ref); err == nil && parsed.Path != "" {
		p = parsed.Path
	}
	return !navigationPages[strings.ToLower(path.Base(filepath.ToSlash(p)))]
}

// NormalizeURL strips fragments and trailing slashes for deduplication.
// JXR links point at line anchors (#L42), which all resolve to one page.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String()
}
