package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estaudit/estaudit/internal/types"
)

func cand(item string, p types.Priority) types.MissingItemCandidate {
	return types.MissingItemCandidate{RequiredItem: item, Reason: "r", Priority: p}
}

func TestDedupeCandidatesSynonyms(t *testing.T) {
	syns := []types.SynonymPair{{TermA: "junction box", TermB: "electrical box"}}
	cands := []types.MissingItemCandidate{
		cand("Junction box", types.PriorityMinor),
		cand("Electrical box", types.PriorityMinor),
		cand("GFCI outlet", types.PriorityMinor),
	}

	out := DedupeCandidates(cands, syns)
	require.Len(t, out, 2)
	assert.Equal(t, "Junction box", out[0].RequiredItem, "first occurrence wins its position")
	assert.Equal(t, "GFCI outlet", out[1].RequiredItem)
}

func TestDedupeCandidatesExactDuplicates(t *testing.T) {
	cands := []types.MissingItemCandidate{
		cand("Joint compound", types.PriorityMinor),
		cand("joint compound", types.PriorityMinor),
	}
	out := DedupeCandidates(cands, nil)
	assert.Len(t, out, 1)
}

func TestDedupeCandidatesPromotesPriority(t *testing.T) {
	syns := []types.SynonymPair{{TermA: "junction box", TermB: "electrical box"}}
	cands := []types.MissingItemCandidate{
		cand("Junction box", types.PriorityMinor),
		cand("Electrical box", types.PriorityCritical),
	}

	out := DedupeCandidates(cands, syns)
	require.Len(t, out, 1)
	assert.Equal(t, types.PriorityCritical, out[0].Priority,
		"dropping a duplicate must not soften the finding")
}

func TestDedupeCandidatesUnrelatedKept(t *testing.T) {
	cands := []types.MissingItemCandidate{
		cand("Joint compound", types.PriorityMinor),
		cand("Corner bead", types.PriorityMinor),
	}
	out := DedupeCandidates(cands, nil)
	assert.Len(t, out, 2)
}

func TestDedupeCandidatesSmallInputs(t *testing.T) {
	assert.Empty(t, DedupeCandidates(nil, nil))
	one := []types.MissingItemCandidate{cand("x", types.PriorityMinor)}
	assert.Equal(t, one, DedupeCandidates(one, nil))
}
