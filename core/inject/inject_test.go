package inject

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/jxrprism/core/dom"
)

func TestDetectPageType(t *testing.T) {
	tests := []struct {
		rel  string
		want PageType
	}{
		{"coverage.html", Landing},
		{"source-xref.html", Landing},
		{"jacoco/index.html", Coverage},
		{"module-a/jacoco/com/example/A.html", Coverage},
		{"xref/index.html", JXR},
		{"xref-test/com/example/ATest.html", JXR},
		{"apidocs/index.html", Javadoc},
		{"testapidocs/com/example/A.html", Javadoc},
		{"about.html", Site},
		{"docs/xref-guide.html", Site},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			if got := DetectPageType(tt.rel); got != tt.want {
				t.Errorf("DetectPageType(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestStylesheet(t *testing.T) {
	for pt, want := range map[PageType]string{
		Landing:  "terminaljavadocs-landing.min.css",
		Coverage: "terminaljavadocs-coverage.min.css",
		JXR:      "terminaljavadocs-jxr.min.css",
		Javadoc:  "terminaljavadocs-javadoc.min.css",
		Site:     "terminaljavadocs-site.min.css",
	} {
		if got := pt.Stylesheet(); got != want {
			t.Errorf("%v.Stylesheet() = %q, want %q", pt, got, want)
		}
	}
}

func TestRelativePrefix(t *testing.T) {
	tests := map[string]string{
		"index.html":                        "",
		"xref/index.html":                   "../",
		"jacoco/com/example/SomeClass.html": "../../../",
	}
	for rel, want := range tests {
		if got := RelativePrefix(rel); got != want {
			t.Errorf("RelativePrefix(%q) = %q, want %q", rel, got, want)
		}
	}
}

func inject(t *testing.T, in *Injector, page, rel string) string {
	t.Helper()
	d, err := dom.ParseString(page, dom.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := in.Inject(d, rel); err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	out, err := d.HTML()
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestInjectBeforeHeadClose(t *testing.T) {
	out := inject(t, New(""), "<html><head><title>Test</title></head><body></body></html>", "test.html")

	marker := strings.Index(out, Marker)
	head := strings.Index(out, "</head>")
	if marker < 0 || marker > head {
		t.Fatalf("marker at %d, </head> at %d:\n%s", marker, head, out)
	}
	if !strings.Contains(out, `href="terminal-styles/terminaljavadocs-site.min.css"`) {
		t.Errorf("stylesheet link missing:\n%s", out)
	}
	if !strings.Contains(out, `src="terminal-styles/terminaljavadocs.min.js"`) {
		t.Errorf("script missing:\n%s", out)
	}
	if !Injected(out) {
		t.Error("Injected() false after injection")
	}
}

func TestInjectNestedAndCustomDir(t *testing.T) {
	out := inject(t, New("custom-styles/"), "<html><head></head><body></body></html>", "jacoco/com/example/SomeClass.html")
	if !strings.Contains(out, `href="../../../custom-styles/terminaljavadocs-coverage.min.css"`) {
		t.Errorf("nested link wrong:\n%s", out)
	}
	if !strings.Contains(out, "[coverage]") {
		t.Errorf("marker does not name the page type:\n%s", out)
	}
}

func TestSessionSwapsStylesheet(t *testing.T) {
	d, _ := dom.ParseString("<html><head></head><body></body></html>", dom.Options{})
	s, err := NewSession(d, "styles")
	if err != nil {
		t.Fatal(err)
	}
	s.InjectCSS("a.css")
	s.InjectCSS("a.css")
	s.InjectCSS("b.css")
	s.InjectJS()
	s.InjectJS()

	sel := d.Selection()
	links := sel.Find("link[data-terminaljavadocs]")
	if links.Length() != 1 || links.AttrOr("href", "") != "styles/b.css" {
		t.Errorf("links = %d, href = %q", links.Length(), links.AttrOr("href", ""))
	}
	if n := sel.Find("script[data-terminaljavadocs]").Length(); n != 1 {
		t.Errorf("got %d scripts, want 1", n)
	}
}

func TestSiteRoot(t *testing.T) {
	build := t.TempDir()
	if _, ok := SiteRoot(build); ok {
		t.Error("SiteRoot() found a root in an empty build dir")
	}

	os.Mkdir(filepath.Join(build, "site"), 0o755)
	if got, _ := SiteRoot(build); got != filepath.Join(build, "site") {
		t.Errorf("SiteRoot() = %q, want site", got)
	}

	os.Mkdir(filepath.Join(build, "staging"), 0o755)
	if got, _ := SiteRoot(build); got != filepath.Join(build, "staging") {
		t.Errorf("SiteRoot() = %q, want staging", got)
	}
}
