package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/exec-search/internal/types"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		query        string
		category     types.RoleCategory
		title        string
		requirements map[string]string
	}{
		{
			query:    "Interim CFO - $50M SaaS, ASC 606, Remote",
			category: types.RoleCFO,
			title:    "Interim CFO",
			requirements: map[string]string{
				RequirementRevenue:  "$50M",
				RequirementASC606:   "required",
				RequirementLocation: "Remote",
			},
		},
		{
			query:        "Healthcare Clinical Ops Lead for $120 clinic",
			category:     types.RoleHealthcareOps,
			title:        "Healthcare Clinical Operations Lead",
			requirements: map[string]string{RequirementRevenue: "$120"},
		},
		{
			query:        "Senior PM - infrastructure",
			category:     types.RoleProjectManager,
			title:        "Elite Project Manager",
			requirements: map[string]string{},
		},
		{
			query:        "VP of Sales",
			category:     types.RoleGeneralExecutive,
			title:        "Executive",
			requirements: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			input := types.NewSearchState("s1", tt.query)
			got := Analyze(input)

			assert.Equal(t, types.StatusAnalyzing, got.Status)
			assert.Equal(t, tt.category, got.RoleCategory)
			assert.Equal(t, tt.title, got.RoleTitle)
			assert.Equal(t, tt.requirements, got.ClientRequirements)
			assert.Equal(t, types.StatusIdle, input.Status)
			assert.Empty(t, input.ClientRequirements)
		})
	}
}

func TestCandidateRole(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{query: "Interim CFO - $50M SaaS", want: "Interim CFO"},
		{query: "Elite PM-Fintech-Remote", want: "Elite PM"},
		{query: "VP of Sales", want: "Executive"},
		{query: " - SaaS", want: "Executive"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, CandidateRole(tt.query))
		})
	}
}
