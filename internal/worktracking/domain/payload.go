package domain

import (
	"encoding/json"
	"strings"
)

// ParseProposals reads externally produced {name, category} entries. An
// entry of the wrong shape becomes an empty proposal instead of failing the
// batch; unknown categories become Other.
func ParseProposals(raws []json.RawMessage) []ItemProposal {
	out := make([]ItemProposal, 0, len(raws))
	for _, raw := range raws {
		var p struct {
			Name     any `json:"name"`
			Category any `json:"category"`
		}
		if json.Unmarshal(raw, &p) != nil {
			out = append(out, ItemProposal{Category: CategoryOther})
			continue
		}
		name, _ := p.Name.(string)
		category, _ := p.Category.(string)
		out = append(out, ItemProposal{
			Name:     strings.TrimSpace(name),
			Category: ParseCategory(category),
		})
	}
	return out
}

// ParseNames keeps the string entries of a JSON list.
func ParseNames(raws []json.RawMessage) []string {
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			out = append(out, s)
		}
	}
	return out
}
