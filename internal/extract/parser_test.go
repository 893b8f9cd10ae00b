package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func TestParseDirect(t *testing.T) {
	got, err := Parse[payload](`{"code": "PLM-100", "description": "supply line"}`)
	require.NoError(t, err)
	assert.Equal(t, payload{Code: "PLM-100", Description: "supply line"}, got)
}

func TestParseCodeFences(t *testing.T) {
	raw := "```json\n{\"code\": \"PLM-100\", \"description\": \"supply line\"}\n```"
	got, err := Parse[payload](raw)
	require.NoError(t, err)
	assert.Equal(t, "PLM-100", got.Code)

	// Fence without a language tag.
	raw = "```\n{\"code\": \"DRY-100\", \"description\": \"drywall\"}\n```"
	got, err = Parse[payload](raw)
	require.NoError(t, err)
	assert.Equal(t, "DRY-100", got.Code)
}

func TestParseCleanup(t *testing.T) {
	// Trailing comma and an unquoted key.
	raw := `{code: "PLM-100", "description": "supply line",}`
	got, err := Parse[payload](raw)
	require.NoError(t, err)
	assert.Equal(t, "PLM-100", got.Code)
}

func TestParseComments(t *testing.T) {
	raw := `{
		// the model felt chatty
		"code": "PLM-100",
		"description": "supply line" /* inline */
	}`
	got, err := Parse[payload](raw)
	require.NoError(t, err)
	assert.Equal(t, "supply line", got.Description)
}

func TestParseMixedProse(t *testing.T) {
	raw := `Here are the extracted items:
{"code": "PLM-100", "description": "supply line"}
Let me know if you need anything else!`
	got, err := Parse[payload](raw)
	require.NoError(t, err)
	assert.Equal(t, "PLM-100", got.Code)
}

func TestParseArrayNotShredded(t *testing.T) {
	raw := `[{"code": "A", "description": "one"}, {"code": "B", "description": "two"}]`
	got, err := Parse[[]payload](raw)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[1].Code)
}

func TestParseFailures(t *testing.T) {
	_, err := Parse[payload]("")
	assert.Error(t, err)

	_, err = Parse[payload]("the model returned no JSON at all")
	assert.Error(t, err)
}
