package merge

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Normalize turns a candidate key value into a canonical comparable string.
//
// A nil value maps to the empty string. Whitespace (including line breaks and
// no-break spaces) and punctuation are removed entirely, then the result is
// case-folded and lower-cased. The lower-case pass keeps the result stable
// for scripts such as Cherokee, where folding alone maps to upper case.
func Normalize(v *string) string {
	if v == nil {
		return ""
	}
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			return -1
		}
		return r
	}, *v)
	if stripped == "" {
		return ""
	}
	return strings.ToLower(cases.Fold().String(stripped))
}

// MatchKey concatenates the normalized values of the key fields.
func MatchKey(values ...*string) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(Normalize(v))
	}
	return b.String()
}
