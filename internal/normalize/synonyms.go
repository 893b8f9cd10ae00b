package normalize

import (
	"strings"

	"github.com/estaudit/estaudit/internal/types"
)

// ExpandSynonyms returns the normalized text plus every variant obtainable by
// substituting a matched synonym term with its pair partner. Each pair is
// applied at most once along any substitution chain (no multi-hop expansion),
// which bounds the output to at most 2^len(pairs) variants and keeps the
// result deterministic: same text, same pairs, same variants in the same
// order.
//
// The pair relation is symmetric: TermA may be rewritten to TermB and TermB
// to TermA.
func ExpandSynonyms(text string, pairs []types.SynonymPair) []string {
	base := Normalize(text)
	variants := []string{base}
	seen := map[string]bool{base: true}

	for _, pair := range pairs {
		a := Normalize(pair.TermA)
		b := Normalize(pair.TermB)
		if a == "" || b == "" || a == b {
			continue
		}
		// Snapshot: this pair substitutes into variants produced by earlier
		// pairs, but never into its own output.
		snapshot := variants
		for _, v := range snapshot {
			for _, alt := range []string{replaceTerm(v, a, b), replaceTerm(v, b, a)} {
				if alt != v && !seen[alt] {
					seen[alt] = true
					variants = append(variants, alt)
				}
			}
		}
	}
	return variants
}

// VariantsIntersect reports whether any synonym-expanded variant of a equals
// any variant of b, and whether agreeing required a substitution (false when
// the plain normalized forms already match).
func VariantsIntersect(a, b string, pairs []types.SynonymPair) (intersect, usedSynonym bool) {
	na := Normalize(a)
	nb := Normalize(b)
	if na == nb {
		return true, false
	}
	va := ExpandSynonyms(a, pairs)
	vb := ExpandSynonyms(b, pairs)
	set := make(map[string]bool, len(va))
	for _, v := range va {
		set[v] = true
	}
	for _, v := range vb {
		if set[v] {
			return true, true
		}
	}
	return false, false
}

// replaceTerm replaces whole-word occurrences of from with to. Both inputs
// are assumed normalized. Substring hits inside longer words do not count
// ("tape" never matches "tapered").
func replaceTerm(text, from, to string) string {
	padded := " " + text + " "
	replaced := strings.ReplaceAll(padded, " "+from+" ", " "+to+" ")
	return strings.TrimSpace(replaced)
}
