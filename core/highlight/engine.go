// Package highlight is the re-tokenizing engine: chroma lexers with a
// formatter that emits Prism's token markup.
package highlight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/gaurav-prasanna/jxrprism/core"
)

// ErrUnsupportedLanguage is returned for a language chroma has no lexer for.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Engine highlights code elements in place.
type Engine struct {
	formatter chroma.Formatter
}

// New creates an Engine.
func New() *Engine {
	return &Engine{formatter: PrismFormatter{}}
}

// Supports reports whether the engine has a grammar for language.
func (e *Engine) Supports(language string) bool {
	return lexers.Get(language) != nil
}

// HighlightElement tokenizes el.Text with the grammar named by el.Language
// and stores Prism markup in el.InnerHTML. Text and line breaks are kept
// exactly; no span crosses a line break.
func (e *Engine) HighlightElement(ctx context.Context, el *core.CodeElement) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lexer := lexers.Get(el.Language)
	if lexer == nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, el.Language)
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, el.Text)
	if err != nil {
		return fmt.Errorf("tokenizing %s source: %w", el.Language, err)
	}

	var b strings.Builder
	if err := e.formatter.Format(&b, nil, it); err != nil {
		return fmt.Errorf("formatting %s source: %w", el.Language, err)
	}

	out := b.String()
	// Some lexers append a newline to unterminated input.
	if !strings.HasSuffix(el.Text, "\n") {
		out = strings.TrimSuffix(out, "\n")
	}
	el.InnerHTML = out
	return nil
}
