package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordExpressionEmpty(t *testing.T) {
	assert.True(t, KeywordExpression{}.Empty())
	assert.True(t, KeywordExpression{Keywords: [][]string{{}, {" ", ""}}}.Empty())
	assert.False(t, KeywordExpression{Keywords: [][]string{{"drywall"}}}.Empty())
}

func TestDependencyRuleValidate(t *testing.T) {
	rule := DependencyRule{
		Category:    "drywall",
		Trigger:     KeywordExpression{Keywords: [][]string{{"drywall"}}},
		Required:    RequiredKeywords{Keywords: []string{"tape", "mud"}},
		MissingItem: "Joint compound",
		Reason:      "seams need finishing",
		Priority:    PriorityCritical,
	}
	assert.NoError(t, rule.Validate())

	noRequired := rule
	noRequired.Required = RequiredKeywords{}
	err := noRequired.Validate()
	require.Error(t, err)
	var ruleErr *InvalidRuleError
	assert.True(t, errors.As(err, &ruleErr), "empty required set is an InvalidRuleError")

	blankTerm := rule
	blankTerm.Required = RequiredKeywords{Keywords: []string{"tape", " "}}
	assert.Error(t, blankTerm.Validate())

	noItem := rule
	noItem.MissingItem = " "
	assert.Error(t, noItem.Validate())

	// An empty trigger is a valid definition; it just never fires.
	noTrigger := rule
	noTrigger.Trigger = KeywordExpression{}
	assert.NoError(t, noTrigger.Validate())
}

func TestRuleSetAddRecord(t *testing.T) {
	var set RuleSet

	require.NoError(t, set.AddRecord(RuleRecord{
		ID:       1,
		RuleType: RuleTypeDependency,
		Scope:    "org-1",
		Payload: []byte(`{
			"category": "drywall",
			"trigger": {"keywords": [["drywall"], ["sheetrock"]]},
			"required": {"keywords": ["tape", "mud"]},
			"missing_item": "Joint compound",
			"reason": "seams need finishing",
			"priority": "critical"
		}`),
	}))
	require.NoError(t, set.AddRecord(RuleRecord{
		ID:       2,
		RuleType: RuleTypeSynonym,
		Scope:    "org-1",
		Payload:  []byte(`{"term_a": "junction box", "term_b": "electrical box"}`),
	}))
	require.NoError(t, set.AddRecord(RuleRecord{
		ID:       3,
		RuleType: RuleTypePromptHint,
		Scope:    "org-1",
		Payload:  []byte(`{"text": "prefer itemized labor lines"}`),
	}))

	require.Len(t, set.Rules, 1)
	assert.Equal(t, [][]string{{"drywall"}, {"sheetrock"}}, set.Rules[0].Trigger.Keywords)
	require.Len(t, set.Synonyms, 1)
	require.Len(t, set.Hints, 1)
}

func TestRuleSetAddRecordDefaultsPriority(t *testing.T) {
	var set RuleSet
	require.NoError(t, set.AddRecord(RuleRecord{
		RuleType: RuleTypeDependency,
		Payload: []byte(`{
			"trigger": {"keywords": [["tile"]]},
			"required": {"keywords": ["thinset"]},
			"missing_item": "Thinset mortar",
			"reason": "tile needs setting material"
		}`),
	}))
	assert.Equal(t, PriorityMinor, set.Rules[0].Priority)
}

func TestRuleSetAddRecordRejects(t *testing.T) {
	var set RuleSet

	err := set.AddRecord(RuleRecord{ID: 9, RuleType: RuleTypeDependency, Payload: []byte(`{not json`)})
	assert.Error(t, err)

	err = set.AddRecord(RuleRecord{ID: 10, RuleType: RuleType("regex"), Payload: []byte(`{}`)})
	assert.Error(t, err)

	// Malformed rule payload: parses but fails validation.
	err = set.AddRecord(RuleRecord{ID: 11, RuleType: RuleTypeDependency, Payload: []byte(`{
		"trigger": {"keywords": [["drywall"]]},
		"required": {"keywords": []},
		"missing_item": "x",
		"reason": "y"
	}`)})
	require.Error(t, err)
	var ruleErr *InvalidRuleError
	assert.True(t, errors.As(err, &ruleErr))

	err = set.AddRecord(RuleRecord{ID: 12, RuleType: RuleTypeSynonym, Payload: []byte(`{"term_a": "only one"}`)})
	assert.Error(t, err)

	err = set.AddRecord(RuleRecord{ID: 13, RuleType: RuleTypePromptHint, Payload: []byte(`{"text": "  "}`)})
	assert.Error(t, err)

	// Nothing was added along the way.
	assert.Empty(t, set.Rules)
	assert.Empty(t, set.Synonyms)
	assert.Empty(t, set.Hints)
}
