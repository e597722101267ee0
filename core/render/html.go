package render

import (
	"github.com/gaurav-prasanna/jxrprism/core"
	"github.com/gaurav-prasanna/jxrprism/core/charsets"
)

// HTMLRenderer writes the converted page in the encoding it was read in.
// Pages the converter skipped are written unchanged, so a site stays
// complete.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render returns the serialized page.
func (r *HTMLRenderer) Render(page *core.Page) ([]byte, error) {
	return charsets.Encode(page.HTML, page.Charset)
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
