// Package normalize canonicalizes line-item descriptions so that two
// independently authored estimates can be compared word-for-word. All
// functions are pure and deterministic: identical inputs always produce
// identical outputs, which is what makes audit runs reproducible.
package normalize

import (
	"strings"
	"unicode"
)

// unitAliases maps common unit spellings to one canonical token. Targets are
// never keys, so applying the table twice is a no-op (normalization must be
// idempotent).
var unitAliases = map[string]string{
	"sqft":    "sf",
	"feet":    "ft",
	"foot":    "ft",
	"yards":   "yd",
	"yard":    "yd",
	"inches":  "in",
	"inch":    "in",
	"gallons": "gal",
	"gallon":  "gal",
	"pounds":  "lb",
	"pound":   "lb",
	"lbs":     "lb",
	"each":    "ea",
	"hours":   "hr",
	"hour":    "hr",
	"hrs":     "hr",
}

// Normalize canonicalizes free text for comparison: lowercase, punctuation
// stripped (only letters, digits, and spaces survive), whitespace collapsed,
// unit abbreviations rewritten to their canonical form. Idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	for i, f := range fields {
		if canonical, ok := unitAliases[f]; ok {
			fields[i] = canonical
		}
	}
	return strings.Join(fields, " ")
}

// Tokens returns the significant lowercase tokens of text: normalized words
// longer than two characters. Short tokens ("a", "of", unit codes) carry too
// little signal for overlap scoring.
func Tokens(text string) []string {
	var out []string
	for _, f := range strings.Fields(Normalize(text)) {
		if len(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}

// ContainsTerm reports whether the normalized haystack contains the
// normalized term as a whole-word (possibly multi-word) phrase.
func ContainsTerm(haystack, term string) bool {
	h := Normalize(haystack)
	t := Normalize(term)
	if t == "" {
		return false
	}
	return strings.Contains(" "+h+" ", " "+t+" ")
}
