// Package match pairs line items between two independently authored
// estimates despite inconsistent wording, units, and codes. Matching is
// greedy first-fit per tier: deterministic and O(|A|*|B|), which is fine at
// estimate scale (hundreds of items). It is not a globally optimal bipartite
// assignment; when several candidates are equally eligible the earliest one
// in estimate order wins.
package match

import (
	"math"
	"strings"

	"github.com/estaudit/estaudit/internal/normalize"
	"github.com/estaudit/estaudit/internal/types"
)

// Options tunes the description tier.
type Options struct {
	// PriceTolerance is the maximum unit-price difference, in dollars, for
	// two items to still count as the same line under the description tier.
	PriceTolerance float64
}

// DefaultOptions returns the matcher defaults: a $1.00 unit-price tolerance.
func DefaultOptions() Options {
	return Options{PriceTolerance: 1.00}
}

// Match pairs items of estimate A with items of estimate B and reports the
// residual items present only on one side. It never returns an error: empty
// inputs produce empty outputs, and inputs with no agreement produce full
// residual sets.
func Match(a, b []types.LineItem, synonyms []types.SynonymPair) types.MatchResult {
	return MatchWithOptions(a, b, synonyms, DefaultOptions())
}

// MatchWithOptions is Match with explicit tuning.
//
// Tier 1 pairs items sharing a non-empty catalog code (case-insensitive),
// confidence 1.0. Tier 2 pairs items whose synonym-expanded normalized
// descriptions agree, quantities are equal, and unit prices fall within the
// tolerance, confidence 0.9. Each pass walks A in estimate order and takes
// the first eligible item of B, so two runs over the same inputs always
// produce the same result.
func MatchWithOptions(a, b []types.LineItem, synonyms []types.SynonymPair, opts Options) types.MatchResult {
	matchedA := make([]bool, len(a))
	matchedB := make([]bool, len(b))
	var pairs []types.MatchCandidate

	// Tier 1: exact code. Never falls through to tier 2 for the consumed
	// pair, even when descriptions or prices disagree.
	for i, itemA := range a {
		if matchedA[i] || !itemA.Comparable() || strings.TrimSpace(itemA.Code) == "" {
			continue
		}
		for j, itemB := range b {
			if matchedB[j] || !itemB.Comparable() || strings.TrimSpace(itemB.Code) == "" {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(itemA.Code), strings.TrimSpace(itemB.Code)) {
				pairs = append(pairs, types.MatchCandidate{
					SourceItem: itemA,
					TargetItem: itemB,
					Confidence: 1.0,
					Basis:      types.BasisExactCode,
				})
				matchedA[i] = true
				matchedB[j] = true
				break
			}
		}
	}

	// Tier 2: description + quantity + price.
	for i, itemA := range a {
		if matchedA[i] || !itemA.Comparable() {
			continue
		}
		for j, itemB := range b {
			if matchedB[j] || !itemB.Comparable() {
				continue
			}
			if itemA.Quantity != itemB.Quantity {
				continue
			}
			if math.Abs(itemA.UnitPrice-itemB.UnitPrice) > opts.PriceTolerance {
				continue
			}
			intersect, usedSynonym := normalize.VariantsIntersect(itemA.Description, itemB.Description, synonyms)
			if !intersect {
				continue
			}
			basis := types.BasisDescriptionPriceQuantity
			if usedSynonym {
				basis = types.BasisSynonym
			}
			pairs = append(pairs, types.MatchCandidate{
				SourceItem: itemA,
				TargetItem: itemB,
				Confidence: 0.9,
				Basis:      basis,
			})
			matchedA[i] = true
			matchedB[j] = true
			break
		}
	}

	result := types.MatchResult{Pairs: pairs}
	for i, item := range a {
		if !matchedA[i] {
			result.OnlyInA = append(result.OnlyInA, item)
		}
	}
	for j, item := range b {
		if !matchedB[j] {
			result.OnlyInB = append(result.OnlyInB, item)
		}
	}
	return result
}
