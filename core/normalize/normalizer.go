// Package normalize converts a converted source block into Markdown.
// The block is rebuilt as a bare <pre><code class="language-x"> element so
// html-to-markdown emits a fenced code block tagged with the language; the
// line-number column and token spans do not survive into Markdown.
package normalize

import (
	"fmt"
	"html"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts an HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(fragment string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}

// CodeBlock converts source text into a fenced Markdown code block.
func (n *MarkdownNormalizer) CodeBlock(source, language string) (string, error) {
	class := ""
	if language != "" {
		class = ` class="language-` + html.EscapeString(language) + `"`
	}
	return n.Normalize("<pre><code" + class + ">" + html.EscapeString(source) + "</code></pre>")
}
