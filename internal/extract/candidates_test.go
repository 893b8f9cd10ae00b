package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estaudit/estaudit/internal/validate"
)

func TestCandidatesBareArray(t *testing.T) {
	raw := `[
		{"code": "PLM-100", "description": "Plumbing supply line"},
		{"code": "", "description": "Drywall hang and finish"}
	]`
	cands, err := Candidates(raw)
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Equal(t, validate.Candidate{Code: "PLM-100", Description: "Plumbing supply line"}, cands[0])
	assert.Empty(t, cands[1].Code)
}

func TestCandidatesItemsWrapper(t *testing.T) {
	raw := `{"items": [{"code": "ELC-300", "description": "Electrical outlet"}]}`
	cands, err := Candidates(raw)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "ELC-300", cands[0].Code)
}

func TestCandidatesFieldDrift(t *testing.T) {
	raw := `[{"item_code": "PLM-100", "desc": "supply line"}]`
	cands, err := Candidates(raw)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "PLM-100", cands[0].Code)
	assert.Equal(t, "supply line", cands[0].Description)
}

func TestCandidatesFencedOutput(t *testing.T) {
	raw := "The extracted line items are:\n```json\n[{\"code\": \"DRY-100\", \"description\": \"drywall\"}]\n```"
	cands, err := Candidates(raw)
	require.NoError(t, err)
	require.Len(t, cands, 1)
}

func TestCandidatesDropsBlankDescriptions(t *testing.T) {
	raw := `[
		{"code": "X-1", "description": "  "},
		{"code": "X-2", "description": "real item"}
	]`
	cands, err := Candidates(raw)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "X-2", cands[0].Code)
}

func TestCandidatesNoUsableEntries(t *testing.T) {
	_, err := Candidates(`[{"code": "X-1", "description": ""}]`)
	assert.Error(t, err)

	_, err = Candidates("not json at all")
	assert.Error(t, err)
}
