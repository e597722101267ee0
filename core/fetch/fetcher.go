// Package fetch implements the Fetcher interface.
// It loads pages over HTTP or from disk and decodes them to UTF-8; JXR
// output is frequently written in the platform charset.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gaurav-prasanna/jxrprism/core"
	"github.com/gaurav-prasanna/jxrprism/core/charsets"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "jxrprism/1.0 (https://github.com/gaurav-prasanna/jxrprism)"
)

// Fetcher loads pages from http(s) URLs or local paths.
type Fetcher struct {
	client *http.Client
}

var _ core.Fetcher = (*Fetcher)(nil)

// New creates a Fetcher with a sensible timeout.
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// IsURL reports whether src should be fetched over HTTP.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch retrieves the HTML of src.
func (f *Fetcher) Fetch(ctx context.Context, src string) (*core.FetchResult, error) {
	if IsURL(src) {
		return f.fetchURL(ctx, src)
	}
	return f.readFile(src)
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	body, cs, err := charsets.Decode(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		Source:     url,
		StatusCode: resp.StatusCode,
		HTML:       body,
		Charset:    cs,
	}, nil
}

func (f *Fetcher) readFile(path string) (*core.FetchResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	body, cs, err := charsets.Decode(raw, "")
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &core.FetchResult{Source: path, HTML: body, Charset: cs}, nil
}
