package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProposals(t *testing.T) {
	var raws []json.RawMessage
	_ = json.Unmarshal([]byte(`[{"name":" Tiling ","category":"Interior"},{"name":"Fence","category":"Landscaping"},"junk",{}]`), &raws)

	got := ParseProposals(raws)

	assert.Equal(t, []ItemProposal{
		{Name: "Tiling", Category: CategoryInterior},
		{Name: "Fence", Category: CategoryOther},
		{Category: CategoryOther},
		{Category: CategoryOther},
	}, got)
}

func TestParseNames(t *testing.T) {
	var raws []json.RawMessage
	_ = json.Unmarshal([]byte(`["Prime", 1, null, {"a":1}, "Paint"]`), &raws)

	assert.Equal(t, []string{"Prime", "Paint"}, ParseNames(raws))
	assert.Empty(t, ParseNames(nil))
}
