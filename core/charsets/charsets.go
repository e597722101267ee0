// Package charsets converts pages between their declared encoding and the
// UTF-8 the parser works in. Pages are written back in the encoding they
// were read in, so a <meta charset> declaration stays truthful.
package charsets

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// UTF8 is the canonical name of the UTF-8 encoding.
const UTF8 = "utf-8"

// Decode converts raw page bytes to UTF-8. The encoding is taken from a BOM,
// the content type, or a <meta> declaration, in that order; undeclared pages
// that are valid UTF-8 are treated as UTF-8. It returns the decoded text and
// the canonical name of the source encoding.
func Decode(raw []byte, contentType string) (string, string, error) {
	enc, name, _ := charset.DetermineEncoding(raw, contentType)
	text, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return string(text), name, nil
}

// Encode converts UTF-8 markup to the named encoding. Characters the
// encoding cannot represent are written as character references.
func Encode(text, name string) ([]byte, error) {
	if name == "" || strings.EqualFold(name, UTF8) {
		return []byte(text), nil
	}
	enc, canonical := charset.Lookup(name)
	if enc == nil {
		return nil, fmt.Errorf("unknown charset %q", name)
	}
	out, err := encoding.HTMLEscapeUnsupported(enc.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", canonical, err)
	}
	return out, nil
}
