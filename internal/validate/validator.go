// Package validate checks externally sourced candidate line items against
// the reference catalog. Candidates come from a probabilistic vision/text
// model, so their codes are frequently near-miss rather than nonsensical;
// the validator is deliberately biased toward correcting instead of
// rejecting.
package validate

import (
	"fmt"

	"github.com/estaudit/estaudit/internal/catalog"
	"github.com/estaudit/estaudit/internal/normalize"
	"github.com/estaudit/estaudit/internal/types"
)

// Candidate is one code/description pair submitted for validation.
type Candidate struct {
	Code        string `json:"code,omitempty"`
	Description string `json:"description"`
}

// Thresholds tunes the validator's scoring floors.
type Thresholds struct {
	// MinSearchScore is the minimum token-overlap score for a description
	// search hit to be trusted as a code correction.
	MinSearchScore float64
	// MinSimilarity is the floor below which a valid code's candidate
	// description is replaced by the catalog's canonical wording.
	MinSimilarity float64
}

// DefaultThresholds returns the validator defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{MinSearchScore: 0.3, MinSimilarity: 0.25}
}

// Validate checks one candidate against the catalog and returns exactly one
// outcome. It never returns an error: no catalog hit is a normal outcome
// (action "rejected"), and consumers always get something to render.
func Validate(cand Candidate, idx *catalog.Index) types.ValidationOutcome {
	return ValidateWithThresholds(cand, idx, DefaultThresholds())
}

// ValidateWithThresholds is Validate with explicit scoring floors.
func ValidateWithThresholds(cand Candidate, idx *catalog.Index, th Thresholds) types.ValidationOutcome {
	if normalize.Normalize(cand.Description) == "" {
		return types.ValidationOutcome{
			OriginalCode: cand.Code,
			Action:       types.ActionRejected,
			Reason:       "candidate has no usable description",
		}
	}

	if normalize.Normalize(cand.Code) == "" {
		return resolveByDescription(cand, idx, th, "no code supplied")
	}

	entry, found := idx.LookupByCode(cand.Code)
	if !found {
		return resolveByDescription(cand, idx, th, fmt.Sprintf("code %s not in catalog", cand.Code))
	}

	// Known code/description mismatch patterns: hard-won domain knowledge
	// about codes the model habitually misapplies.
	if mm, hit := matchMismatch(entry.Code, cand.Description); hit {
		// One corrective re-search before giving up on the candidate.
		if best, score := bestSearchHit(cand.Description, idx); best != nil && score >= th.MinSearchScore && best.Code != entry.Code {
			return types.ValidationOutcome{
				OriginalCode:        cand.Code,
				ResolvedCode:        best.Code,
				ResolvedDescription: best.Description,
				Action:              types.ActionCorrected,
				Reason:              fmt.Sprintf("code %s is %s; reassigned by description search", entry.Code, mm.Explanation),
			}
		}
		return types.ValidationOutcome{
			OriginalCode: cand.Code,
			Action:       types.ActionRejected,
			Reason:       fmt.Sprintf("code %s is %s and the description does not support it", entry.Code, mm.Explanation),
		}
	}

	similarity := idx.Score(entry.Code, cand.Description)
	if similarity < th.MinSimilarity {
		// A valid code outweighs imperfect wording: keep the code, swap in
		// the catalog's canonical text.
		return types.ValidationOutcome{
			OriginalCode:        cand.Code,
			ResolvedCode:        entry.Code,
			ResolvedDescription: entry.Description,
			Action:              types.ActionAccepted,
			Reason:              fmt.Sprintf("description similarity %.2f below %.2f; canonical wording substituted", similarity, th.MinSimilarity),
		}
	}
	return types.ValidationOutcome{
		OriginalCode:        cand.Code,
		ResolvedCode:        entry.Code,
		ResolvedDescription: cand.Description,
		Action:              types.ActionAccepted,
		Reason:              "code found and description agrees with catalog",
	}
}

// ValidateBatch validates candidates in order, one outcome per candidate.
func ValidateBatch(cands []Candidate, idx *catalog.Index) []types.ValidationOutcome {
	out := make([]types.ValidationOutcome, len(cands))
	for i, c := range cands {
		out[i] = Validate(c, idx)
	}
	return out
}

// resolveByDescription tries to supply a code from the description alone:
// first a whole-description search, then a per-keyword fallback where each
// significant word is searched individually and the first hit wins.
func resolveByDescription(cand Candidate, idx *catalog.Index, th Thresholds, why string) types.ValidationOutcome {
	if best, score := bestSearchHit(cand.Description, idx); best != nil && score >= th.MinSearchScore {
		return types.ValidationOutcome{
			OriginalCode:        cand.Code,
			ResolvedCode:        best.Code,
			ResolvedDescription: best.Description,
			Action:              types.ActionCorrected,
			Reason:              fmt.Sprintf("%s; matched catalog entry by description", why),
		}
	}

	for _, word := range normalize.Tokens(cand.Description) {
		hits := idx.SearchByKeyword(word, 1)
		if len(hits) > 0 {
			return types.ValidationOutcome{
				OriginalCode:        cand.Code,
				ResolvedCode:        hits[0].Code,
				ResolvedDescription: hits[0].Description,
				Action:              types.ActionCorrected,
				Reason:              fmt.Sprintf("%s; matched catalog entry on keyword %q", why, word),
			}
		}
	}

	return types.ValidationOutcome{
		OriginalCode: cand.Code,
		Action:       types.ActionRejected,
		Reason:       fmt.Sprintf("%s and no catalog entry matches the description", why),
	}
}

// bestSearchHit returns the top-ranked catalog entry for the text and its
// token-overlap score, or nil when nothing scores above zero.
func bestSearchHit(text string, idx *catalog.Index) (*types.CatalogEntry, float64) {
	hits := idx.SearchByKeyword(text, 1)
	if len(hits) == 0 {
		return nil, 0
	}
	best := hits[0]
	return &best, idx.Score(best.Code, text)
}
