package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// KeywordExpression is a disjunction of conjunctions over keywords: the outer
// list is OR'd, each inner list is AND'd (every term in a group must appear
// for that group to be satisfied).
type KeywordExpression struct {
	Keywords [][]string `json:"keywords" yaml:"keywords"`
}

// Empty reports whether the expression has no groups with any terms.
func (e KeywordExpression) Empty() bool {
	for _, group := range e.Keywords {
		for _, term := range group {
			if strings.TrimSpace(term) != "" {
				return false
			}
		}
	}
	return true
}

// RequiredKeywords is the conjunction of terms a triggered rule expects to
// find in the estimate.
type RequiredKeywords struct {
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// DependencyRule is a user-authored condition that flags a scope gap: when
// the trigger terms are present in an estimate but the required terms are
// not, the rule emits a missing-item candidate. Rules are immutable once
// handed to the evaluator for a given audit run.
type DependencyRule struct {
	Category    string             `json:"category" yaml:"category"`
	Trigger     KeywordExpression  `json:"trigger" yaml:"trigger"`
	Required    RequiredKeywords   `json:"required" yaml:"required"`
	MissingItem string             `json:"missing_item" yaml:"missing_item"`
	Reason      string             `json:"reason" yaml:"reason"`
	Priority    Priority           `json:"priority" yaml:"priority"`
	ExcludeIf   *KeywordExpression `json:"exclude_if,omitempty" yaml:"exclude_if,omitempty"`
}

// Validate checks the rule definition. A rule with an empty required set is
// malformed and returns an *InvalidRuleError; a rule with an empty trigger is
// accepted but will never fire.
func (r DependencyRule) Validate() error {
	if len(r.Required.Keywords) == 0 {
		return &InvalidRuleError{Rule: r.MissingItem, Reason: "required keywords must not be empty"}
	}
	for _, kw := range r.Required.Keywords {
		if strings.TrimSpace(kw) == "" {
			return &InvalidRuleError{Rule: r.MissingItem, Reason: "required keywords must not contain empty terms"}
		}
	}
	if strings.TrimSpace(r.MissingItem) == "" {
		return &InvalidRuleError{Rule: r.MissingItem, Reason: "missing_item is required"}
	}
	if !r.Priority.IsValid() {
		return &InvalidRuleError{Rule: r.MissingItem, Reason: fmt.Sprintf("invalid priority %q", r.Priority)}
	}
	return nil
}

// InvalidRuleError reports a malformed dependency rule definition. It halts
// processing of that single rule only; batch evaluation continues with the
// remaining rules.
type InvalidRuleError struct {
	Rule   string // missing_item of the offending rule, may be empty
	Reason string
}

func (e *InvalidRuleError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("invalid rule: %s", e.Reason)
	}
	return fmt.Sprintf("invalid rule %q: %s", e.Rule, e.Reason)
}

// PromptHint is free-form text an organization attaches to its audit runs.
// The engine carries hints through to the orchestration layer untouched.
type PromptHint struct {
	Text string `json:"text" yaml:"text"`
}

// RuleType discriminates the payload of a persisted rule record.
type RuleType string

const (
	RuleTypeDependency RuleType = "dependency"
	RuleTypeSynonym    RuleType = "synonym"
	RuleTypePromptHint RuleType = "prompt_hint"
)

// IsValid checks if the rule type value is valid.
func (t RuleType) IsValid() bool {
	switch t {
	case RuleTypeDependency, RuleTypeSynonym, RuleTypePromptHint:
		return true
	}
	return false
}

// RuleRecord is the opaque persisted form of a rule: a type tag, an owner
// scope (user or organization key), and a JSON payload. Records are parsed
// exactly once, at this boundary, into one of the three typed variants;
// nothing downstream re-interprets the payload as untyped data.
type RuleRecord struct {
	ID       int64    `json:"id,omitempty"`
	RuleType RuleType `json:"rule_type"`
	Scope    string   `json:"scope"`
	Payload  []byte   `json:"payload"`
}

// RuleSet is the fully parsed, typed form of a scope's rule records. It is a
// read-only snapshot for the duration of an audit run; the engine never
// caches it across calls.
type RuleSet struct {
	Rules    []DependencyRule
	Synonyms []SynonymPair
	Hints    []PromptHint
}

// AddRecord parses and validates one persisted record into the set. A record
// that fails to parse or validate is not added; the returned error describes
// why. Callers typically collect these errors and continue with the
// remaining records.
func (s *RuleSet) AddRecord(rec RuleRecord) error {
	switch rec.RuleType {
	case RuleTypeDependency:
		var rule DependencyRule
		if err := json.Unmarshal(rec.Payload, &rule); err != nil {
			return fmt.Errorf("rule record %d: bad dependency payload: %w", rec.ID, err)
		}
		if rule.Priority == "" {
			rule.Priority = PriorityMinor
		}
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("rule record %d: %w", rec.ID, err)
		}
		s.Rules = append(s.Rules, rule)
	case RuleTypeSynonym:
		var pair SynonymPair
		if err := json.Unmarshal(rec.Payload, &pair); err != nil {
			return fmt.Errorf("rule record %d: bad synonym payload: %w", rec.ID, err)
		}
		if err := pair.Validate(); err != nil {
			return fmt.Errorf("rule record %d: %w", rec.ID, err)
		}
		s.Synonyms = append(s.Synonyms, pair)
	case RuleTypePromptHint:
		var hint PromptHint
		if err := json.Unmarshal(rec.Payload, &hint); err != nil {
			return fmt.Errorf("rule record %d: bad prompt hint payload: %w", rec.ID, err)
		}
		if strings.TrimSpace(hint.Text) == "" {
			return fmt.Errorf("rule record %d: prompt hint text is required", rec.ID)
		}
		s.Hints = append(s.Hints, hint)
	default:
		return fmt.Errorf("rule record %d: unknown rule type %q", rec.ID, rec.RuleType)
	}
	return nil
}
