package audit

import (
	"github.com/estaudit/estaudit/internal/normalize"
	"github.com/estaudit/estaudit/internal/types"
)

// DedupeCandidates collapses near-duplicate missing-item suggestions, e.g.
// "junction box" and "electrical box" when the two are declared synonyms.
//
// Two candidates are duplicates when their synonym-expanded variant sets
// intersect. This uses the general synonym table rather than a hard-coded
// term list, so organizations that maintain their synonyms get consistent
// dedup for free. The first occurrence wins its position; if a later
// duplicate carries a critical priority and the survivor was minor, the
// survivor is promoted — dropping the duplicate should never soften the
// finding.
func DedupeCandidates(cands []types.MissingItemCandidate, synonyms []types.SynonymPair) []types.MissingItemCandidate {
	if len(cands) <= 1 {
		return cands
	}

	type kept struct {
		index    int
		variants map[string]bool
	}

	out := make([]types.MissingItemCandidate, 0, len(cands))
	var survivors []kept

next:
	for _, cand := range cands {
		variants := variantSet(cand.RequiredItem, synonyms)
		for _, s := range survivors {
			if intersects(s.variants, variants) {
				if cand.Priority == types.PriorityCritical && out[s.index].Priority != types.PriorityCritical {
					out[s.index].Priority = types.PriorityCritical
				}
				continue next
			}
		}
		survivors = append(survivors, kept{index: len(out), variants: variants})
		out = append(out, cand)
	}
	return out
}

func variantSet(text string, synonyms []types.SynonymPair) map[string]bool {
	set := make(map[string]bool)
	for _, v := range normalize.ExpandSynonyms(text, synonyms) {
		set[v] = true
	}
	return set
}

func intersects(a, b map[string]bool) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for v := range a {
		if b[v] {
			return true
		}
	}
	return false
}
