package estimate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estaudit/estaudit/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "contractor.yaml", `
name: Contractor bid
items:
  - code: DRY-100
    description: Hang drywall
    quantity: 12
    unit_price: 45.50
  - description: Paint walls
    quantity: 3
    unit_price: 80
    room: kitchen
`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Contractor bid", f.Name)
	require.Len(t, f.Items, 2)
	assert.Equal(t, "DRY-100", f.Items[0].Code)
	assert.Equal(t, 45.50, f.Items[0].UnitPrice)
	assert.Equal(t, "kitchen", f.Items[1].Room)
}

func TestLoadPreservesItemOrder(t *testing.T) {
	path := writeFile(t, "ordered.yaml", `
items:
  - description: first
    quantity: 1
  - description: ""
    quantity: 2
  - description: third
    quantity: 3
`)

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Items, 3)
	// Blank-description rows keep their slot in the sequence.
	assert.False(t, f.Items[1].Comparable())
	assert.Equal(t, "third", f.Items[2].Description)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "empty.yaml", "name: nothing here\n"))
	assert.Error(t, err, "an estimate without items is unusable")

	_, err = Load(writeFile(t, "garbage.yaml", "items: {not: [valid"))
	assert.Error(t, err)
}

func TestLoadSeed(t *testing.T) {
	path := writeFile(t, "seed.yaml", `
rules:
  - category: drywall
    trigger:
      keywords:
        - [drywall]
        - [sheetrock]
    required:
      keywords: [tape, mud]
    missing_item: Joint compound
    reason: seams need finishing
    priority: critical
synonyms:
  - term_a: drywall
    term_b: sheetrock
hints:
  - text: prefer itemized labor lines
`)

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed.Rules, 1)
	assert.Equal(t, [][]string{{"drywall"}, {"sheetrock"}}, seed.Rules[0].Trigger.Keywords)
	assert.Equal(t, types.PriorityCritical, seed.Rules[0].Priority)
	require.Len(t, seed.Synonyms, 1)
	require.Len(t, seed.Hints, 1)
}

func TestLoadSeedErrors(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = LoadSeed(writeFile(t, "bad.yaml", "rules: [broken"))
	assert.Error(t, err)
}
