package extract

import (
	"fmt"
	"strings"

	"github.com/estaudit/estaudit/internal/validate"
)

// rawCandidate tolerates the field-name drift models exhibit: "code" vs
// "item_code", "description" vs "desc".
type rawCandidate struct {
	Code        string `json:"code"`
	ItemCode    string `json:"item_code"`
	Description string `json:"description"`
	Desc        string `json:"desc"`
}

// rawResponse accepts both a bare array and the {"items": [...]} wrapper
// that models produce about equally often.
type rawResponse struct {
	Items []rawCandidate `json:"items"`
}

// Candidates parses raw model output into validation candidates. Entries
// without any description are dropped (they cannot be validated); an output
// with no usable entries at all is an error, since the caller almost
// certainly wants to retry or surface it.
func Candidates(raw string) ([]validate.Candidate, error) {
	items, err := Parse[[]rawCandidate](raw)
	if err != nil {
		wrapped, werr := Parse[rawResponse](raw)
		if werr != nil {
			return nil, fmt.Errorf("model output is not a candidate list: %w", err)
		}
		items = wrapped.Items
	}

	out := make([]validate.Candidate, 0, len(items))
	for _, item := range items {
		cand := validate.Candidate{
			Code:        firstNonEmpty(item.Code, item.ItemCode),
			Description: firstNonEmpty(item.Description, item.Desc),
		}
		if strings.TrimSpace(cand.Description) == "" {
			continue
		}
		out = append(out, cand)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("model output contained no usable candidates")
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
