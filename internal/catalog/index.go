// Package catalog provides an in-memory, immutable index over the reference
// line-item catalog: exact code lookup plus keyword search ranked by token
// overlap. The index is built once per process and is safe to share across
// concurrent audits without locking — nothing mutates it after BuildIndex
// returns.
package catalog

import (
	"sort"
	"strings"

	"github.com/estaudit/estaudit/internal/normalize"
	"github.com/estaudit/estaudit/internal/types"
)

// Index is the built catalog index. Zero value is not usable; construct via
// BuildIndex.
type Index struct {
	entries []types.CatalogEntry
	byCode  map[string]int      // uppercased code -> entries index
	tokens  [][]string          // per-entry significant description tokens
	posting map[string][]int    // token -> entry indices, insertion order
}

// BuildIndex constructs the index over the given entries. Entries with a
// duplicate code keep the first occurrence (catalog insertion order wins).
// The input slice is copied; callers may discard it.
func BuildIndex(entries []types.CatalogEntry) *Index {
	idx := &Index{
		entries: make([]types.CatalogEntry, 0, len(entries)),
		byCode:  make(map[string]int, len(entries)),
		posting: make(map[string][]int),
	}
	for _, e := range entries {
		key := strings.ToUpper(strings.TrimSpace(e.Code))
		if key == "" {
			continue
		}
		if _, dup := idx.byCode[key]; dup {
			continue
		}
		i := len(idx.entries)
		idx.entries = append(idx.entries, e)
		idx.byCode[key] = i

		// Dedupe tokens up front: overlap scoring is over token sets.
		var toks []string
		seen := make(map[string]bool)
		for _, t := range normalize.Tokens(e.Description) {
			if !seen[t] {
				seen[t] = true
				toks = append(toks, t)
				idx.posting[t] = append(idx.posting[t], i)
			}
		}
		idx.tokens = append(idx.tokens, toks)
	}
	return idx
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// LookupByCode returns the entry for the given code, case-insensitively.
// An unknown code is a normal outcome, not an error.
func (idx *Index) LookupByCode(code string) (types.CatalogEntry, bool) {
	i, ok := idx.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return types.CatalogEntry{}, false
	}
	return idx.entries[i], true
}

// SearchByKeyword returns up to limit entries ranked by descending token
// overlap with the query, ties broken by catalog insertion order. An entry
// scores |intersection| / max(|entryTokens|, |queryTokens|, 1); only entries
// scoring above zero are returned. An empty query returns an empty result.
func (idx *Index) SearchByKeyword(query string, limit int) []types.CatalogEntry {
	queryTokens := normalize.Tokens(query)
	if len(queryTokens) == 0 || limit <= 0 {
		return nil
	}
	querySet := make(map[string]bool, len(queryTokens))
	for _, t := range queryTokens {
		querySet[t] = true
	}

	// Gather candidates through the inverted index instead of scanning all
	// ~13k rows per query.
	overlap := make(map[int]int)
	var order []int
	for t := range querySet {
		for _, i := range idx.posting[t] {
			if overlap[i] == 0 {
				order = append(order, i)
			}
			overlap[i]++
		}
	}
	sort.Ints(order) // map iteration order is random; restore insertion order

	type scored struct {
		entry int
		score float64
	}
	ranked := make([]scored, 0, len(order))
	for _, i := range order {
		denom := len(idx.tokens[i])
		if len(querySet) > denom {
			denom = len(querySet)
		}
		if denom < 1 {
			denom = 1
		}
		ranked = append(ranked, scored{entry: i, score: float64(overlap[i]) / float64(denom)})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]types.CatalogEntry, 0, limit)
	for _, s := range ranked[:limit] {
		out = append(out, idx.entries[s.entry])
	}
	return out
}

// Score returns the token-overlap score between free text and the entry for
// the given code, or 0 if the code is unknown. Used by the validator to
// measure description-to-catalog similarity.
func (idx *Index) Score(code, text string) float64 {
	i, ok := idx.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return 0
	}
	queryTokens := normalize.Tokens(text)
	querySet := make(map[string]bool, len(queryTokens))
	for _, t := range queryTokens {
		querySet[t] = true
	}
	inter := 0
	seen := make(map[string]bool)
	for _, t := range idx.tokens[i] {
		if querySet[t] && !seen[t] {
			seen[t] = true
			inter++
		}
	}
	denom := len(idx.tokens[i])
	if len(querySet) > denom {
		denom = len(querySet)
	}
	if denom < 1 {
		denom = 1
	}
	return float64(inter) / float64(denom)
}
