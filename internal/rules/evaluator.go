// Package rules evaluates user-authored dependency rules against a single
// estimate's line items to flag scope gaps: work that the estimate's own
// contents imply should be present but is not (e.g. drywall replacement
// without joint compound).
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/estaudit/estaudit/internal/normalize"
	"github.com/estaudit/estaudit/internal/types"
)

// Evaluate runs every rule against the estimate and returns missing-item
// candidates in rule-declaration order.
//
// A malformed rule (empty required set) yields a *types.InvalidRuleError but
// does not abort the batch: the rule is skipped and evaluation continues
// (isolate-and-continue). All such errors are joined into the returned error
// alongside whatever candidates the valid rules produced.
//
// Duplicate missing-item strings across rules are NOT deduplicated here;
// that policy belongs to the caller (see audit.DedupeCandidates).
func Evaluate(items []types.LineItem, ruleList []types.DependencyRule, synonyms []types.SynonymPair) ([]types.MissingItemCandidate, error) {
	haystack := buildHaystack(items)

	var candidates []types.MissingItemCandidate
	var errs []error
	for i, rule := range ruleList {
		if err := rule.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i, err))
			continue
		}
		if cand, ok := evaluateRule(haystack, rule, synonyms); ok {
			candidates = append(candidates, cand)
		}
	}
	return candidates, errors.Join(errs...)
}

// buildHaystack concatenates the normalized descriptions of all comparable
// items into one search string. Empty-description items are skipped; they
// remain untouched in the caller's slice.
func buildHaystack(items []types.LineItem) string {
	var parts []string
	for _, item := range items {
		if !item.Comparable() {
			continue
		}
		parts = append(parts, normalize.Normalize(item.Description))
	}
	return strings.Join(parts, " ")
}

// evaluateRule applies one rule to the haystack. Returns the candidate and
// true when the rule fires: trigger satisfied, required not satisfied, and
// no exclusion group fully present.
func evaluateRule(haystack string, rule types.DependencyRule, synonyms []types.SynonymPair) (types.MissingItemCandidate, bool) {
	matched, found := expressionSatisfied(haystack, rule.Trigger, synonyms)
	if !matched {
		return types.MissingItemCandidate{}, false
	}

	if requiredSatisfied(haystack, rule.Required.Keywords, synonyms) {
		return types.MissingItemCandidate{}, false
	}

	// The exclusion expression marks premises already covered by the
	// estimate (e.g. a per-LF drywall line that bundles finishing).
	if rule.ExcludeIf != nil {
		if excluded, _ := expressionSatisfied(haystack, *rule.ExcludeIf, synonyms); excluded {
			return types.MissingItemCandidate{}, false
		}
	}

	return types.MissingItemCandidate{
		RequiredItem:      rule.MissingItem,
		Reason:            rule.Reason,
		Priority:          rule.Priority,
		RelatedItemsFound: found,
	}, true
}

// expressionSatisfied evaluates a disjunction-of-conjunctions expression:
// true when at least one AND-group has every term present in the haystack.
// It returns the terms of the first satisfied group. An empty expression is
// never satisfied (a rule with an empty trigger never fires).
func expressionSatisfied(haystack string, expr types.KeywordExpression, synonyms []types.SynonymPair) (bool, []string) {
	for _, group := range expr.Keywords {
		if len(group) == 0 {
			continue
		}
		all := true
		for _, term := range group {
			if strings.TrimSpace(term) == "" || !termPresent(haystack, term, synonyms) {
				all = false
				break
			}
		}
		if all {
			return true, group
		}
	}
	return false, nil
}

// requiredSatisfied is a pure conjunction: every keyword must be present.
func requiredSatisfied(haystack string, keywords []string, synonyms []types.SynonymPair) bool {
	for _, kw := range keywords {
		if !termPresent(haystack, kw, synonyms) {
			return false
		}
	}
	return true
}

// termPresent checks the haystack for the term or any of its synonym
// variants as a whole-word phrase.
func termPresent(haystack, term string, synonyms []types.SynonymPair) bool {
	for _, variant := range normalize.ExpandSynonyms(term, synonyms) {
		if variant != "" && normalize.ContainsTerm(haystack, variant) {
			return true
		}
	}
	return false
}
