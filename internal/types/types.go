// Package types defines the core data structures shared by the estimate
// reconciliation engine: line items, catalog entries, synonym pairs, and the
// result shapes produced by the matcher, rule evaluator, and validator.
package types

import (
	"fmt"
	"strings"
)

// LineItem is one priced unit of work or material within an estimate.
// It is an immutable value once parsed from a source estimate; an estimate
// owns an order-preserving sequence of these, duplicates allowed.
type LineItem struct {
	Code        string  `json:"code,omitempty" yaml:"code,omitempty"`
	Description string  `json:"description" yaml:"description"`
	Quantity    float64 `json:"quantity" yaml:"quantity"`
	UnitPrice   float64 `json:"unit_price" yaml:"unit_price"`
	TotalPrice  float64 `json:"total_price" yaml:"total_price"`
	Room        string  `json:"room,omitempty" yaml:"room,omitempty"`
}

// Comparable reports whether the item can participate in matching or rule
// evaluation. Items with an empty description cannot be meaningfully compared;
// they stay in the estimate sequence untouched but are skipped by the engine.
func (li LineItem) Comparable() bool {
	return strings.TrimSpace(li.Description) != ""
}

// CatalogEntry is one row of the reference line-item catalog. Entries are
// loaded once at process start and never mutated.
type CatalogEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

// Validate checks that the entry is usable as a catalog row.
func (e CatalogEntry) Validate() error {
	if strings.TrimSpace(e.Code) == "" {
		return fmt.Errorf("catalog entry code is required")
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("catalog entry %s: description is required", e.Code)
	}
	return nil
}

// SynonymPair declares two terms interchangeable for matching and rule
// evaluation. The relation is symmetric: wherever TermA appears it may be
// substituted by TermB and vice versa.
type SynonymPair struct {
	TermA string `json:"term_a" yaml:"term_a"`
	TermB string `json:"term_b" yaml:"term_b"`
}

// Validate checks that both terms are present and distinct.
func (p SynonymPair) Validate() error {
	a := strings.TrimSpace(p.TermA)
	b := strings.TrimSpace(p.TermB)
	if a == "" || b == "" {
		return fmt.Errorf("synonym pair requires two non-empty terms (got %q, %q)", p.TermA, p.TermB)
	}
	if strings.EqualFold(a, b) {
		return fmt.Errorf("synonym pair terms must differ (got %q twice)", a)
	}
	return nil
}

// MatchBasis describes how a pairing between two line items was established.
type MatchBasis string

const (
	// BasisExactCode means both items carried the same non-empty catalog code.
	BasisExactCode MatchBasis = "exact_code"
	// BasisDescriptionPriceQuantity means the normalized descriptions were
	// equal and quantity/price agreed within tolerance.
	BasisDescriptionPriceQuantity MatchBasis = "description_price_quantity"
	// BasisSynonym is the description tier when a synonym substitution was
	// required to make the descriptions agree.
	BasisSynonym MatchBasis = "synonym"
)

// IsValid checks if the match basis value is valid.
func (b MatchBasis) IsValid() bool {
	switch b {
	case BasisExactCode, BasisDescriptionPriceQuantity, BasisSynonym:
		return true
	}
	return false
}

// MatchCandidate is a confidence-scored pairing of one line item from each of
// two estimates. Candidates are transient: produced and consumed within a
// single comparison run, never persisted.
type MatchCandidate struct {
	SourceItem LineItem   `json:"source_item"`
	TargetItem LineItem   `json:"target_item"`
	Confidence float64    `json:"confidence"`
	Basis      MatchBasis `json:"basis"`
}

// Validate checks if the match candidate has valid field values.
func (m MatchCandidate) Validate() error {
	if m.Confidence < 0.0 || m.Confidence > 1.0 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0 (got %.2f)", m.Confidence)
	}
	if !m.Basis.IsValid() {
		return fmt.Errorf("invalid match basis: %s", m.Basis)
	}
	if !m.SourceItem.Comparable() || !m.TargetItem.Comparable() {
		return fmt.Errorf("matched items must have non-empty descriptions")
	}
	return nil
}

// MatchResult is the output of one cross-estimate comparison run: the matched
// pairs plus the items found only in one of the two estimates.
type MatchResult struct {
	Pairs   []MatchCandidate `json:"pairs"`
	OnlyInA []LineItem       `json:"only_in_a"`
	OnlyInB []LineItem       `json:"only_in_b"`
}

// Priority ranks a missing-item finding.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityMinor    Priority = "minor"
)

// IsValid checks if the priority value is valid.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityCritical, PriorityMinor:
		return true
	}
	return false
}

// MissingItemCandidate is one scope gap flagged by the dependency rule
// evaluator: a trigger condition was present in the estimate but the
// required work was not.
type MissingItemCandidate struct {
	RequiredItem string   `json:"required_item"`
	Reason       string   `json:"reason"`
	Priority     Priority `json:"priority"`
	// RelatedItemsFound lists the trigger keywords that fired, for display.
	RelatedItemsFound []string `json:"related_items_found,omitempty"`
}

// ValidationAction is the disposition the catalog validator assigns to an
// externally sourced candidate item.
type ValidationAction string

const (
	ActionAccepted  ValidationAction = "accepted"
	ActionCorrected ValidationAction = "corrected"
	ActionRejected  ValidationAction = "rejected"
)

// IsValid checks if the validation action value is valid.
func (a ValidationAction) IsValid() bool {
	switch a {
	case ActionAccepted, ActionCorrected, ActionRejected:
		return true
	}
	return false
}

// ValidationOutcome records what the catalog validator decided about one
// candidate item. Transient: one per candidate submitted, never persisted.
type ValidationOutcome struct {
	OriginalCode        string           `json:"original_code,omitempty"`
	ResolvedCode        string           `json:"resolved_code,omitempty"`
	ResolvedDescription string           `json:"resolved_description,omitempty"`
	Action              ValidationAction `json:"action"`
	Reason              string           `json:"reason"`
}

// Validate checks if the outcome has internally consistent field values.
func (v ValidationOutcome) Validate() error {
	if !v.Action.IsValid() {
		return fmt.Errorf("invalid validation action: %s", v.Action)
	}
	if v.Action != ActionRejected && v.ResolvedCode == "" {
		return fmt.Errorf("resolved_code must be set when action is %s", v.Action)
	}
	if v.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	return nil
}
