// Package core defines the data model and the pipeline interfaces for jxrprism.
// A documentation page flows through fetch → convert → render → write; the
// converter only ever sees the Document and Highlighter interfaces below, so
// it can be exercised against an in-memory tree and a stub engine.
package core

import (
	"context"
	"strings"
)

// FetchResult holds the decoded HTML of a page and where it came from.
type FetchResult struct {
	Source     string
	StatusCode int // 0 for local files
	HTML       string // decoded to UTF-8
	Charset    string // canonical name of the encoding the page was read in
}

// PageMetadata describes a processed page.
type PageMetadata struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Anchor is a per-line jump target captured from a pre-rendered block.
type Anchor struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
	Name  string `json:"name,omitempty"`
}

// LineEntry is one entry of a generated line index.
type LineEntry struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
	ID     string `json:"id"`
	Href   string `json:"href"`
}

// CodeElement is a detached code container handed to a Highlighter.
// Text is the plain source; the highlighter fills InnerHTML.
type CodeElement struct {
	Language  string
	Text      string
	InnerHTML string
}

// Class returns the grammar class name of the element, e.g. "language-java".
func (e *CodeElement) Class() string {
	return "language-" + e.Language
}

// ConvertedBlock is the replacement for a pre-rendered block: highlighted
// markup split into lines plus the line index that numbers them.
type ConvertedBlock struct {
	Language string
	Lines    []string
	// Index is nil when the block is rendered without a line-number column.
	Index []LineEntry
}

// Numbered reports whether the block carries a line-number column.
func (b *ConvertedBlock) Numbered() bool {
	return b.Index != nil
}

// HTML returns the highlighted markup of the whole block.
func (b *ConvertedBlock) HTML() string {
	return strings.Join(b.Lines, "\n")
}

// Block is a pre-rendered source block inside a Document.
type Block interface {
	// Processed reports whether the block is already the product of a conversion.
	Processed() bool
	// Anchors returns the block's line-number anchors in document order.
	Anchors() []Anchor
	// Text returns the block's text content with line-number anchors removed.
	// It reads from a copy and leaves the block untouched.
	Text() string
}

// Document is the tree-structured page a Converter rewrites.
type Document interface {
	// FindBlock returns the first pre-rendered source block, if any.
	FindBlock() (Block, bool)
	// Replace swaps block for the converted block in a single step and marks
	// the replacement as processed.
	Replace(block Block, converted *ConvertedBlock) error
}

// Highlighter re-tokenizes the text of a code element and writes the
// highlighted markup to its InnerHTML. It must keep the exact text and
// line breaks of the input.
type Highlighter interface {
	HighlightElement(ctx context.Context, el *CodeElement) error
}

// Fetcher loads a page from a URL or a local path.
type Fetcher interface {
	Fetch(ctx context.Context, src string) (*FetchResult, error)
}

// Page is a processed page ready to be rendered.
type Page struct {
	Meta    PageMetadata
	HTML    string // serialized document after conversion
	Charset string // encoding the page was read in; HTML output is written back in it
	Result  Result
}

// Renderer turns a processed page into an output format.
type Renderer interface {
	Render(page *Page) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".pdf").
	Extension() string
}
