package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases the input, strips diacritics and collapses whitespace runs
// into single spaces. Extracted document text carries OCR artifacts and
// accented characters, so all name and keyword matching happens on folded
// strings.
func Fold(s string) string {
	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ContainsFolded reports whether needle occurs in haystack after both are
// folded. An empty needle never matches.
func ContainsFolded(haystack, needle string) bool {
	needle = Fold(needle)
	if needle == "" {
		return false
	}
	return strings.Contains(Fold(haystack), needle)
}
