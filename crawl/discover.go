// Package crawl provides page discovery for --all mode.
// Remote cross-reference sites are discovered via sitemap.xml or by
// following links from the start page; local sites by walking the
// directory tree.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/jxrprism/core"
)

// MaxPages bounds a remote crawl.
const MaxPages = 500

// sitemapURL holds a URL from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapIndex is the root element of a sitemap.xml.
type sitemapIndex struct {
	URLs []sitemapURL `xml:"url"`
}

// DiscoverAll finds the JXR source pages below startURL.
// It first tries the site's sitemap.xml, then falls back to link crawling.
// Only pages inside the start page's directory are returned.
func DiscoverAll(ctx context.Context, startURL string, fetcher core.Fetcher) ([]string, error) {
	parsed, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("parsing start URL: %w", err)
	}
	scope := scopeOf(parsed)

	sitemap := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, parsed.Host)
	urls, err := discoverFromSitemap(ctx, sitemap, scope)
	if err == nil && len(urls) > 0 {
		return urls, nil
	}

	return discoverFromLinks(ctx, startURL, scope, fetcher)
}

// scope is the host and directory a crawl stays within.
type scope struct {
	host string
	dir  string
}

func scopeOf(u *url.URL) scope {
	dir := u.Path
	if !strings.HasSuffix(dir, "/") {
		dir = path.Dir(dir)
	}
	return scope{host: u.Host, dir: strings.TrimSuffix(dir, "/") + "/"}
}

func (s scope) contains(rawURL string) bool {
	if !IsSameDomain(rawURL, s.host) {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(parsed.Path, s.dir)
}

// discoverFromSitemap fetches and parses sitemap.xml for source pages in scope.
func discoverFromSitemap(ctx context.Context, sitemapURL string, sc scope) ([]string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var sitemap sitemapIndex
	if err := xml.Unmarshal(body, &sitemap); err != nil {
		return nil, err
	}

	var urls []string
	for _, u := range sitemap.URLs {
		if sc.contains(u.Loc) && IsXrefSource(u.Loc) {
			urls = append(urls, NormalizeURL(u.Loc))
		}
	}
	return urls, nil
}

// discoverFromLinks walks links breadth first from startURL. Navigation
// pages are followed but only source pages are returned.
func discoverFromLinks(ctx context.Context, startURL string, sc scope, fetcher core.Fetcher) ([]string, error) {
	queue := NewQueue(MaxPages)
	queue.Add(NormalizeURL(startURL))

	var sources []string
	for queue.HasNext() {
		if err := ctx.Err(); err != nil {
			return sources, err
		}
		currentURL := queue.Next()
		if IsXrefSource(currentURL) {
			sources = append(sources, currentURL)
			// Source pages only link back into the tree or to Javadoc.
			continue
		}

		result, err := fetcher.Fetch(ctx, currentURL)
		if err != nil {
			continue // Skip failed pages, don't block the crawl.
		}

		links, err := extractLinks(result.HTML, currentURL)
		if err != nil {
			continue
		}

		for _, link := range links {
			if sc.contains(link) && IsHTMLPage(link) {
				queue.Add(NormalizeURL(link))
			}
		}
	}

	return sources, nil
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(baseURL)
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved := resolveURL(href, base)
		if resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}

// DiscoverFiles walks root and returns the HTML pages below it, sorted.
// Directories named in skip (relative to root) are not entered.
func DiscoverFiles(root string, skip ...string) ([]string, error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[filepath.Clean(s)] = true
	}

	var pages []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			rel, relErr := filepath.Rel(root, p)
			if relErr == nil && skipped[rel] {
				return filepath.SkipDir
			}
			return nil
		}
		if IsHTMLPage(p) {
			pages = append(pages, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(pages)
	return pages, nil
}
