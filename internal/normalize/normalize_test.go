package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Install DRYWALL", "install drywall"},
		{"strips punctuation", "Drywall, tape & mud - all seams!", "drywall tape mud all seams"},
		{"collapses whitespace", "  paint   two\tcoats  ", "paint two coats"},
		{"keeps digits", "4x8 sheet 120 sf", "4x8 sheet 120 sf"},
		{"canonicalizes units", "15 feet of pipe, 3 gallons primer", "15 ft of pipe 3 gal primer"},
		{"empty", "", ""},
		{"only punctuation", "-- / --", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Install DRYWALL, 4x8 sheets (12 each)",
		"Plumbing supply line - kitchen",
		"15 feet of pipe",
		"",
		"R&R baseboard; 120 linear feet",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", input)
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"plumbing", "supply", "line"}, Tokens("Plumbing supply line"))
	// Tokens of length <= 2 are dropped.
	assert.Equal(t, []string{"paint", "wall"}, Tokens("paint on a wall"))
	assert.Nil(t, Tokens(""))
	assert.Nil(t, Tokens("a of to"))
}

func TestContainsTerm(t *testing.T) {
	assert.True(t, ContainsTerm("install drywall and tape", "drywall"))
	assert.True(t, ContainsTerm("install joint compound today", "Joint Compound"))
	// Whole words only: "tape" must not match inside "tapered".
	assert.False(t, ContainsTerm("tapered edge board", "tape"))
	assert.False(t, ContainsTerm("install drywall", "mud"))
	assert.False(t, ContainsTerm("anything", ""))
}
