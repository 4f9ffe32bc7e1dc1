package domain

import (
	"strings"
	"unicode"
)

// CleanText turns every kind of whitespace (NBSP, tabs, newlines) into a
// plain space, drops control and other non-printable runes and collapses runs
// of spaces.
func CleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case unicode.IsPrint(r):
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
