package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != defaultUserAgent {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Path == "/missing.html" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("<pre>caf\xe9</pre>"))
	}))
	defer srv.Close()

	f := New()
	res, err := f.Fetch(context.Background(), srv.URL+"/A.html")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", res.StatusCode)
	}
	if res.HTML != "<pre>café</pre>" {
		t.Errorf("HTML = %q, want decoded latin-1", res.HTML)
	}
	if res.Charset != "windows-1252" {
		t.Errorf("Charset = %q, want windows-1252", res.Charset)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing.html"); err == nil {
		t.Error("Fetch() succeeded on 404")
	}
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A.html")
	page := `<html><head><meta charset="utf-8"></head><body><pre>int π;</pre></body></html>`
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := New().Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.Source != path || !strings.Contains(res.HTML, "int π;") || res.Charset != "utf-8" {
		t.Errorf("Fetch() = %+v", res)
	}

	if _, err := New().Fetch(context.Background(), filepath.Join(dir, "none.html")); err == nil {
		t.Error("Fetch() succeeded on a missing file")
	}
}

func TestIsURL(t *testing.T) {
	for src, want := range map[string]bool{
		"https://example.com/xref/A.html": true,
		"http://localhost:8080":           true,
		"target/site/xref/A.html":         false,
		"/abs/path.html":                  false,
	} {
		if got := IsURL(src); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", src, got, want)
		}
	}
}
