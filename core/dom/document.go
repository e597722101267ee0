// Package dom implements core.Document over goquery.
// It locates the JXR <pre> block, reads its text with the line-number
// anchors stripped, and swaps in the converted markup.
package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/jxrprism/core"
)

const (
	// DefaultBlockSelector matches the JXR source block.
	DefaultBlockSelector = "pre"
	// DefaultAnchorSelector matches JXR line-number anchors.
	DefaultAnchorSelector = ".jxr_linenumber"
	// ProcessedAttr marks a converted container.
	ProcessedAttr = "data-prism-processed"
)

var processedMatcher = cascadia.MustCompile("[" + ProcessedAttr + "]")

// Options selects the block and its anchors.
type Options struct {
	BlockSelector  string
	AnchorSelector string
}

// Document is a parsed HTML page.
type Document struct {
	doc    *goquery.Document
	block  cascadia.Selector
	anchor cascadia.Selector
}

var _ core.Document = (*Document)(nil)

// Parse reads an HTML page. Empty selectors fall back to the defaults.
func Parse(r io.Reader, opts Options) (*Document, error) {
	if opts.BlockSelector == "" {
		opts.BlockSelector = DefaultBlockSelector
	}
	if opts.AnchorSelector == "" {
		opts.AnchorSelector = DefaultAnchorSelector
	}

	block, err := cascadia.Compile(opts.BlockSelector)
	if err != nil {
		return nil, fmt.Errorf("compiling block selector %q: %w", opts.BlockSelector, err)
	}
	anchor, err := cascadia.Compile(opts.AnchorSelector)
	if err != nil {
		return nil, fmt.Errorf("compiling anchor selector %q: %w", opts.AnchorSelector, err)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return &Document{doc: doc, block: block, anchor: anchor}, nil
}

// ParseString is Parse over a string.
func ParseString(s string, opts Options) (*Document, error) {
	return Parse(strings.NewReader(s), opts)
}

// FindBlock returns the first element matching the block selector.
func (d *Document) FindBlock() (core.Block, bool) {
	sel := d.doc.FindMatcher(d.block).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &Block{sel: sel, anchor: d.anchor}, true
}

// Replace swaps block for the converted container.
func (d *Document) Replace(b core.Block, converted *core.ConvertedBlock) error {
	blk, ok := b.(*Block)
	if !ok {
		return fmt.Errorf("block of type %T does not belong to this document", b)
	}
	if blk.sel.Parent().Length() == 0 {
		return errors.New("block is detached from the document")
	}

	container, err := buildContainer(converted)
	if err != nil {
		return err
	}
	blk.sel.ReplaceWithNodes(container)
	return nil
}

// Title returns the page title.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Selection exposes the underlying goquery document.
func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

// HTML serializes the whole document.
func (d *Document) HTML() (string, error) {
	out, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("serializing document: %w", err)
	}
	return out, nil
}

// Block is a source block inside a Document.
type Block struct {
	sel    *goquery.Selection
	anchor cascadia.Selector
}

// Processed reports whether the block or one of its ancestors was produced
// by a conversion.
func (b *Block) Processed() bool {
	return b.sel.ClosestMatcher(processedMatcher).Length() > 0
}

// Anchors returns the line-number anchors of the block in document order.
func (b *Block) Anchors() []core.Anchor {
	var anchors []core.Anchor
	b.sel.FindMatcher(b.anchor).Each(func(_ int, s *goquery.Selection) {
		a := core.Anchor{Label: strings.TrimSpace(s.Text())}
		a.Href, _ = s.Attr("href")
		if name, ok := s.Attr("name"); ok && name != "" {
			a.Name = name
		} else {
			a.Name, _ = s.Attr("id")
		}
		anchors = append(anchors, a)
	})
	return anchors
}

// Text returns the text content of a copy of the block with the anchors removed.
func (b *Block) Text() string {
	clone := b.sel.Clone()
	clone.FindMatcher(b.anchor).Remove()
	return clone.Text()
}
