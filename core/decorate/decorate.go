// Package decorate highlights the ordinary code blocks of a site page:
// it tags each block with a language class (guessing one when the page
// did not) and re-renders it with the highlighting engine.
package decorate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/multierr"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/jxrprism/core"
	"github.com/gaurav-prasanna/jxrprism/core/dom"
	"github.com/gaurav-prasanna/jxrprism/core/highlight"
)

const (
	codeSelector = "pre code, pre.source"
	// highlightedAttr marks a code block this package already rendered.
	highlightedAttr = "data-highlighted"
)

var languageClass = regexp.MustCompile(`language-(\w+)`)

// Prepare adds language-<x> classes to code blocks and their pre elements.
// Blocks that carry no language class get one from highlight.Detect when it
// recognises the content.
func Prepare(doc *dom.Document) {
	doc.Selection().Find(codeSelector).Each(func(_ int, code *goquery.Selection) {
		pre := code
		if !code.Is("pre") {
			pre = code.Parent()
		}
		class := code.AttrOr("class", "")

		if !languageClass.MatchString(class) {
			if lang := highlight.Detect(code.Text(), class); lang != "" {
				code.AddClass("language-" + lang)
				pre.AddClass("language-" + lang)
			}
		}

		if m := languageClass.FindStringSubmatch(code.AttrOr("class", "")); m != nil {
			pre.AddClass("language-" + m[1])
		}
	})
}

// HighlightAll renders every prepared code block with engine. Blocks inside
// a converted JXR container, or already highlighted, are skipped. It returns
// how many blocks were rendered; a block the engine fails on keeps its
// markup and its error is collected.
func HighlightAll(ctx context.Context, doc *dom.Document, engine core.Highlighter) (int, error) {
	var (
		count int
		errs  error
	)
	doc.Selection().Find(codeSelector).EachWithBreak(func(_ int, code *goquery.Selection) bool {
		if ctx.Err() != nil {
			errs = multierr.Append(errs, ctx.Err())
			return false
		}
		if code.Closest("["+dom.ProcessedAttr+"]").Length() > 0 {
			return true
		}
		// A pre.source wrapping a code element is rendered through the code.
		if code.Is("pre") && code.ChildrenFiltered("code").Length() > 0 {
			return true
		}
		if _, done := code.Attr(highlightedAttr); done {
			return true
		}
		m := languageClass.FindStringSubmatch(code.AttrOr("class", ""))
		if m == nil {
			return true
		}

		el := &core.CodeElement{Language: m[1], Text: code.Text()}
		if err := engine.HighlightElement(ctx, el); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("highlighting %s block: %w", m[1], err))
			return true
		}
		if err := setInnerHTML(code, el.InnerHTML); err != nil {
			errs = multierr.Append(errs, err)
			return true
		}
		code.SetAttr(highlightedAttr, "true")
		count++
		return true
	})
	return count, errs
}

func setInnerHTML(sel *goquery.Selection, markup string) error {
	node := sel.Get(0)
	nodes, err := html.ParseFragment(strings.NewReader(markup), node)
	if err != nil {
		return fmt.Errorf("parsing highlighted markup: %w", err)
	}
	sel.Empty()
	sel.AppendNodes(nodes...)
	return nil
}
