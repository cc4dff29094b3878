package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer produces match keys from labels.
// The zero value performs the default normalization.
type Normalizer struct {
	// FoldAccents strips combining marks so "Åland" and "Aland" share a key.
	FoldAccents bool
}

// Normalize returns the default match key for label.
func Normalize(label string) string {
	return Normalizer{}.Normalize(label)
}

// Normalize composes label into NFC, drops every rune that is neither a word
// rune (letter, number, underscore) nor whitespace, and lowercases the rest.
// The filtered result is composed again, since dropping a rune can leave
// composable neighbours such as Hangul jamo. The result is stable under
// repeated application.
func (n Normalizer) Normalize(label string) string {
	s := norm.NFC.String(label)
	if n.FoldAccents {
		s = foldAccents(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return norm.NFC.String(b.String())
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func foldAccents(s string) string {
	// transform.Chain is stateful; build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
