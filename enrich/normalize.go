package enrich

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key returns the lookup key for a piece of menu text
func Key(text string) string {
	// Transformers and casers keep state, so every call builds its own
	strip := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(strip, text)
	if err != nil {
		s = text
	}
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}
