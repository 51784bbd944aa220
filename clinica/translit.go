package clinica

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiTransform decomposes accented characters and ligatures and strips
// the combining marks, so "Genève" survives as "Geneve" and "œ" as "oe".
var asciiTransform = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ToASCII transliterates a value to plain ASCII. LibreClinica's data
// import rejects items containing non-ASCII bytes, so accents are folded
// and anything that still cannot be represented is dropped.
func ToASCII(s string) string {
	if isASCII(s) {
		return s
	}

	folded, _, err := transform.String(asciiTransform, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 128 {
			return false
		}
	}
	return true
}
