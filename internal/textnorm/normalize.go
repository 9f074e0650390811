// Package textnorm provides text normalization for query analysis and matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining marks, so "sebastián"
// becomes "sebastian" and "ñ" becomes "n".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases s, strips diacritics, replaces every character outside
// [a-z0-9] with a space, collapses runs of whitespace, and trims. Punctuation
// becomes a space rather than being deleted, so adjacent words never merge and
// whole-word matching downstream stays correct. Total and idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// Tokenize normalizes s and splits it into whitespace-separated tokens.
func Tokenize(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Fields(n)
}

// ContainsWord reports whether normalized text contains term as a whole word.
// Both arguments must already be normalized.
func ContainsWord(text, term string) bool {
	if text == "" || term == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+term+" ")
}
