package core

import "strings"

// NormalizeNewlines converts CRLF and lone CR line breaks to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// SplitLines splits s into physical lines. A trailing line break ends the
// last line instead of starting an empty one, so "a\nb\n" and "a\nb" both
// have two lines. The empty string has none.
func SplitLines(s string) []string {
	s = NormalizeNewlines(s)
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// CountLines returns len(SplitLines(s)) without allocating the lines.
func CountLines(s string) int {
	s = NormalizeNewlines(s)
	if s == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(s, "\n"), "\n") + 1
}
