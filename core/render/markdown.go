// Package render provides output renderers for converted pages.
// This file implements the Markdown renderer: a title heading followed by
// the source as a fenced code block.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/jxrprism/core"
	"github.com/gaurav-prasanna/jxrprism/core/normalize"
)

// MarkdownRenderer writes the page source as Markdown.
type MarkdownRenderer struct {
	normalizer *normalize.MarkdownNormalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalize.New()}
}

// Render emits the title and the extracted source. A page whose block was
// never found renders as an error.
func (r *MarkdownRenderer) Render(page *core.Page) ([]byte, error) {
	if page.Result.Source == "" {
		return nil, fmt.Errorf("no source to render: %v", page.Result.Reason)
	}

	code, err := r.normalizer.CodeBlock(page.Result.Source, page.Meta.Language)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if page.Meta.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", page.Meta.Title)
	}
	b.WriteString(strings.TrimSpace(code))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
