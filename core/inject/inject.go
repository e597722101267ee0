// Package inject adds the theme stylesheet and script to generated site pages.
//
// Each page gets the stylesheet for its page type (landing, coverage, jxr,
// javadoc or site) and the shared script, referenced relative to the page.
// A marker comment in <head> makes injection happen once per page.
package inject

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/jxrprism/core/dom"
)

const (
	// Marker is written into <head> of every injected page.
	Marker = "terminal-javadocs-injected"
	// DefaultStylesDir is the site directory holding the theme assets.
	DefaultStylesDir = "terminal-styles"
	// ScriptFile is the shared theme script.
	ScriptFile = "terminaljavadocs.min.js"

	ownerAttr = "data-terminaljavadocs"
)

// PageType is the kind of generated page, which selects the stylesheet.
type PageType int

const (
	Site PageType = iota
	Landing
	Coverage
	JXR
	Javadoc
)

func (p PageType) String() string {
	switch p {
	case Landing:
		return "landing"
	case Coverage:
		return "coverage"
	case JXR:
		return "jxr"
	case Javadoc:
		return "javadoc"
	default:
		return "site"
	}
}

// Stylesheet returns the stylesheet file name for the page type.
func (p PageType) Stylesheet() string {
	return "terminaljavadocs-" + p.String() + ".min.css"
}

// DetectPageType classifies a page by its slash-separated path relative to
// the site root.
func DetectPageType(rel string) PageType {
	rel = filepath.ToSlash(rel)
	switch path.Base(rel) {
	case "coverage.html", "source-xref.html":
		return Landing
	}
	for _, seg := range strings.Split(path.Dir(rel), "/") {
		switch seg {
		case "jacoco":
			return Coverage
		case "xref", "xref-test":
			return JXR
		case "apidocs", "testapidocs":
			return Javadoc
		}
	}
	return Site
}

// RelativePrefix returns the "../" sequence leading from a page back to the
// site root.
func RelativePrefix(rel string) string {
	dir := path.Dir(filepath.ToSlash(rel))
	if dir == "." || dir == "/" {
		return ""
	}
	return strings.Repeat("../", strings.Count(strings.Trim(dir, "/"), "/")+1)
}

// Injected reports whether raw page markup already carries the marker.
func Injected(raw string) bool {
	return strings.Contains(raw, Marker)
}

// SiteRoot picks the directory to process inside a build directory:
// staging/ when present, then site/. It returns false when neither exists.
func SiteRoot(buildDir string) (string, bool) {
	for _, name := range []string{"staging", "site"} {
		dir := filepath.Join(buildDir, name)
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir, true
		}
	}
	return "", false
}

// Injector adds theme assets to pages.
type Injector struct {
	StylesDir string
}

// New creates an Injector. An empty stylesDir selects DefaultStylesDir.
func New(stylesDir string) *Injector {
	if stylesDir == "" {
		stylesDir = DefaultStylesDir
	}
	return &Injector{StylesDir: strings.Trim(filepath.ToSlash(stylesDir), "/")}
}

// Inject adds the marker, the stylesheet for the page type and the shared
// script to doc. rel is the page path relative to the site root.
func (in *Injector) Inject(doc *dom.Document, rel string) (PageType, error) {
	pt := DetectPageType(rel)
	s, err := NewSession(doc, RelativePrefix(rel)+in.StylesDir)
	if err != nil {
		return pt, err
	}
	s.mark(pt)
	s.InjectCSS(pt.Stylesheet())
	s.InjectJS()
	return pt, nil
}

// Session tracks what has been injected into one document. It lives as long
// as the document it was created for.
type Session struct {
	head *goquery.Selection
	body *goquery.Selection
	base string
	css  string
	js   bool
}

// NewSession starts injecting into doc; asset URLs are resolved against base.
func NewSession(doc *dom.Document, base string) (*Session, error) {
	sel := doc.Selection()
	head := sel.Find("head").First()
	body := sel.Find("body").First()
	if head.Length() == 0 || body.Length() == 0 {
		return nil, fmt.Errorf("page has no head or body")
	}
	return &Session{head: head, body: body, base: strings.TrimSuffix(base, "/")}, nil
}

func (s *Session) url(file string) string {
	if s.base == "" {
		return file
	}
	return s.base + "/" + file
}

func (s *Session) mark(pt PageType) {
	s.head.AppendNodes(&html.Node{
		Type: html.CommentNode,
		Data: fmt.Sprintf(" %s [%s] ", Marker, pt),
	})
}

// InjectCSS links stylesheet file, replacing a different stylesheet injected
// earlier in the session. Injecting the same file twice is a no-op.
func (s *Session) InjectCSS(file string) {
	if s.css == file {
		return
	}
	if s.css != "" {
		s.head.Find("link[" + ownerAttr + "]").Remove()
	}
	s.head.AppendNodes(element(atom.Link,
		"rel", "stylesheet",
		"href", s.url(file),
		ownerAttr, "true"))
	s.css = file
}

// InjectJS appends the shared script to the body once per session.
func (s *Session) InjectJS() {
	if s.js {
		return
	}
	s.body.AppendNodes(element(atom.Script,
		"src", s.url(ScriptFile),
		ownerAttr, "true"))
	s.js = true
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}
