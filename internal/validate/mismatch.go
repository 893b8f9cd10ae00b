package validate

import "github.com/estaudit/estaudit/internal/normalize"

// Mismatch is one known code/description mismatch pattern: a catalog code
// the model habitually misapplies. The pattern fires when the candidate
// description contains any wrong keyword and none of the corrective
// keywords. Kept as a declarative table so new patterns are a data edit,
// not a control-flow change.
type Mismatch struct {
	Code            string
	WrongKeywords   []string
	CorrectKeywords []string
	Explanation     string
}

// mismatches is the built-in pattern table. Codes here are labor/material
// split codes that vision models routinely confuse with their counterparts.
var mismatches = []Mismatch{
	{
		Code:            "DRY-LAB",
		WrongKeywords:   []string{"sheet", "board", "4x8", "material"},
		CorrectKeywords: []string{"hang", "install", "labor"},
		Explanation:     "a labor-only drywall code",
	},
	{
		Code:            "PLM-LAB",
		WrongKeywords:   []string{"pipe", "fitting", "valve", "material"},
		CorrectKeywords: []string{"rough", "labor", "install"},
		Explanation:     "a labor-only plumbing code",
	},
	{
		Code:            "PNT-MAT",
		WrongKeywords:   []string{"labor", "apply", "prep"},
		CorrectKeywords: []string{"paint", "primer", "gallon"},
		Explanation:     "a material-only paint code",
	},
}

// matchMismatch reports whether the description trips a known mismatch
// pattern for the given catalog code.
func matchMismatch(code, description string) (Mismatch, bool) {
	for _, mm := range mismatches {
		if mm.Code != code {
			continue
		}
		wrong := false
		for _, kw := range mm.WrongKeywords {
			if normalize.ContainsTerm(description, kw) {
				wrong = true
				break
			}
		}
		if !wrong {
			continue
		}
		for _, kw := range mm.CorrectKeywords {
			if normalize.ContainsTerm(description, kw) {
				return Mismatch{}, false
			}
		}
		return mm, true
	}
	return Mismatch{}, false
}
