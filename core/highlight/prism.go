package highlight

import (
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// PrismFormatter writes tokens as Prism markup:
// <span class="token keyword">public</span>. Token values spanning several
// lines are split so each line holds balanced markup.
type PrismFormatter struct{}

var _ chroma.Formatter = PrismFormatter{}

// Format implements chroma.Formatter. The style is ignored; colours come
// from the theme stylesheet.
func (PrismFormatter) Format(w io.Writer, _ *chroma.Style, it chroma.Iterator) error {
	for tok := it(); tok != chroma.EOF; tok = it() {
		kind := TokenKind(tok.Type)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if part == "" {
				continue
			}
			if err := writeToken(w, kind, part); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeToken(w io.Writer, kind, text string) error {
	text = html.EscapeString(text)
	if kind == "" {
		_, err := io.WriteString(w, text)
		return err
	}
	_, err := io.WriteString(w, `<span class="token `+kind+`">`+text+`</span>`)
	return err
}

// TokenKind maps a chroma token type to Prism's token name. Plain text,
// whitespace and identifiers map to "".
func TokenKind(t chroma.TokenType) string {
	switch {
	case t.InCategory(chroma.Comment):
		return "comment"
	case t == chroma.KeywordConstant:
		return "boolean"
	case t.InCategory(chroma.Keyword):
		return "keyword"
	case t == chroma.NameClass, t == chroma.NameException:
		return "class-name"
	case t == chroma.NameFunction:
		return "function"
	case t == chroma.NameDecorator, t == chroma.NameAttribute:
		return "annotation"
	case t == chroma.NameBuiltin, t == chroma.NameBuiltinPseudo:
		return "builtin"
	case t == chroma.NameNamespace:
		return "namespace"
	case t == chroma.NameTag:
		return "tag"
	case t == chroma.LiteralStringChar:
		return "char"
	case t.InSubCategory(chroma.LiteralString):
		return "string"
	case t.InSubCategory(chroma.LiteralNumber):
		return "number"
	case t.InCategory(chroma.Operator):
		return "operator"
	case t.InCategory(chroma.Punctuation):
		return "punctuation"
	}
	return ""
}
