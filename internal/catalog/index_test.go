package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estaudit/estaudit/internal/types"
)

func testEntries() []types.CatalogEntry {
	return []types.CatalogEntry{
		{Code: "PLM-100", Description: "Plumbing supply line - kitchen"},
		{Code: "PLM-200", Description: "Plumbing - general labor"},
		{Code: "DRY-100", Description: "Drywall hang and finish", Category: "Drywall", Unit: "sf"},
		{Code: "DRY-200", Description: "Drywall hang and finish"}, // same description, later insertion
		{Code: "ELC-300", Description: "Electrical outlet installation"},
	}
}

func TestLookupByCode(t *testing.T) {
	idx := BuildIndex(testEntries())

	entry, ok := idx.LookupByCode("plm-100")
	require.True(t, ok, "lookup must be case-insensitive")
	assert.Equal(t, "PLM-100", entry.Code)

	entry, ok = idx.LookupByCode("  DRY-100 ")
	require.True(t, ok)
	assert.Equal(t, "Drywall", entry.Category)

	_, ok = idx.LookupByCode("NOPE-999")
	assert.False(t, ok, "unknown code is a not-found value, not an error")

	_, ok = idx.LookupByCode("")
	assert.False(t, ok)
}

func TestSearchByKeywordRanking(t *testing.T) {
	idx := BuildIndex(testEntries())

	hits := idx.SearchByKeyword("plumbing supply line", 10)
	require.NotEmpty(t, hits)
	assert.Equal(t, "PLM-100", hits[0].Code, "full-overlap entry must rank first")

	codes := make([]string, 0, len(hits))
	for _, h := range hits {
		codes = append(codes, h.Code)
	}
	assert.Contains(t, codes, "PLM-200", "partial overlap still returned")
	assert.NotContains(t, codes, "ELC-300", "zero-overlap entries are excluded")
}

func TestSearchByKeywordTieBreak(t *testing.T) {
	idx := BuildIndex(testEntries())

	// DRY-100 and DRY-200 score identically; insertion order decides.
	hits := idx.SearchByKeyword("drywall hang finish", 10)
	require.Len(t, hits, 2)
	assert.Equal(t, "DRY-100", hits[0].Code)
	assert.Equal(t, "DRY-200", hits[1].Code)
}

func TestSearchByKeywordEdges(t *testing.T) {
	idx := BuildIndex(testEntries())

	assert.Empty(t, idx.SearchByKeyword("", 10), "empty query returns empty result")
	assert.Empty(t, idx.SearchByKeyword("a of", 10), "short tokens carry no signal")
	assert.Empty(t, idx.SearchByKeyword("drywall", 0))

	hits := idx.SearchByKeyword("drywall", 1)
	assert.Len(t, hits, 1, "limit caps the result")
}

func TestBuildIndexDuplicateCodes(t *testing.T) {
	idx := BuildIndex([]types.CatalogEntry{
		{Code: "DUP-1", Description: "first wins"},
		{Code: "dup-1", Description: "second dropped"},
	})
	require.Equal(t, 1, idx.Len())
	entry, ok := idx.LookupByCode("DUP-1")
	require.True(t, ok)
	assert.Equal(t, "first wins", entry.Description)
}

func TestScore(t *testing.T) {
	idx := BuildIndex(testEntries())

	// "plumbing supply line" vs "Plumbing supply line - kitchen":
	// 3 shared tokens over max(4, 3) entry/query tokens.
	assert.InDelta(t, 0.75, idx.Score("PLM-100", "plumbing supply line"), 1e-9)
	assert.Zero(t, idx.Score("NOPE-999", "anything"))
	assert.Zero(t, idx.Score("PLM-100", "granite countertop"))
}
