package authorship

import (
	"strings"
	"unicode"
)

// literalNewline is the two character sequence backslash-n that leaks into
// page text when markup was escaped twice.
const literalNewline = `\n`

// Normalize strips whitespace and literal `\n` sequences from both ends of s,
// and commas from its start. Interior content is left alone.
//
// The result is a fixed point: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	for {
		trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
		trimmed = strings.TrimLeft(trimmed, ",")
		trimmed = strings.TrimPrefix(trimmed, literalNewline)
		trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
		trimmed = strings.TrimSuffix(trimmed, literalNewline)
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}
