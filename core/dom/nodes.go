package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/jxrprism/core"
)

// Class names of the converted structure, shared with the theme stylesheet.
const (
	ContainerClass   = "jxr-prism-container"
	LineNumbersClass = "jxr-line-numbers"
	CodeClass        = "jxr-code-container"
	LineNumberClass  = "jxr_linenumber"
)

// buildContainer assembles the replacement for a source block:
//
//	div.jxr-prism-container[data-prism-processed]
//	  div.jxr-line-numbers > a.jxr_linenumber*   (only when numbered)
//	  div.jxr-code-container > pre > code
func buildContainer(cb *core.ConvertedBlock) (*html.Node, error) {
	container := element(atom.Div, "class", ContainerClass, ProcessedAttr, "true")

	preClass := "language-" + cb.Language
	if cb.Numbered() {
		preClass += " line-numbers"
		container.AppendChild(lineNumbers(cb.Index))
	}

	code := element(atom.Code, "class", "language-"+cb.Language)
	if err := appendMarkup(code, cb.HTML()); err != nil {
		return nil, err
	}

	pre := element(atom.Pre, "class", preClass)
	pre.AppendChild(code)
	codeDiv := element(atom.Div, "class", CodeClass)
	codeDiv.AppendChild(pre)
	container.AppendChild(codeDiv)

	return container, nil
}

func lineNumbers(index []core.LineEntry) *html.Node {
	div := element(atom.Div, "class", LineNumbersClass)
	for _, e := range index {
		a := element(atom.A, "class", LineNumberClass, "href", e.Href, "id", e.ID, "name", e.ID)
		a.AppendChild(text(e.Label))
		div.AppendChild(a)
		div.AppendChild(text("\n"))
	}
	return div
}

// appendMarkup parses an HTML fragment in the context of parent and appends
// the resulting nodes to it.
func appendMarkup(parent *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return fmt.Errorf("parsing highlighted markup: %w", err)
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
