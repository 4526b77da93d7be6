package entry

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// yearLookalikes maps OCR confusions onto the digits they stand for
var yearLookalikes = strings.NewReplacer("O", "0", "o", "0", "I", "1", "l", "1")

// ParseYear reads the leading integer of a vintage token
func ParseYear(text string) (int, bool) {
	s := strings.TrimSpace(norm.NFKC.String(text))
	s = yearLookalikes.Replace(s)

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return year, true
}

// newPriceCleaner folds compatibility forms (full-width digits, narrow
// spaces) and drops currency symbols and spaces. Chains keep state, so
// callers take a fresh one.
func newPriceCleaner() transform.Transformer {
	return transform.Chain(
		norm.NFKC,
		runes.Remove(runes.In(unicode.Sc)),
		runes.Remove(runes.In(unicode.White_Space)),
	)
}

// ParsePrice reads a numeric price. A comma followed by exactly three digits
// is a thousands separator; any other comma is a decimal mark.
func ParsePrice(text string) (float64, bool) {
	s, _, err := transform.String(newPriceCleaner(), text)
	if err != nil || s == "" || strings.Trim(s, "0123456789.,") != "" {
		return 0, false
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != ',' {
			b.WriteByte(s[i])
			continue
		}
		if isThousandsGroup(s[i+1:]) {
			continue
		}
		b.WriteByte('.')
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

// isThousandsGroup reports whether rest starts with exactly three digits
func isThousandsGroup(rest string) bool {
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	return n == 3
}
