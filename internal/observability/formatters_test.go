package observability

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/types"
)

func TestPrintRequirements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	state := types.NewSearchState("s1", "Interim CFO - $50M SaaS, ASC 606")
	state.RoleCategory = types.RoleCFO
	state.RoleTitle = "Interim CFO"
	state.ClientRequirements = map[string]string{"revenue": "$50M", "asc_606": "required"}

	p.PrintRequirements(&state)
	output := buf.String()

	assert.Contains(t, output, "SEARCH REQUIREMENTS")
	assert.Contains(t, output, "Interim CFO (cfo)")
	assert.Less(t, strings.Index(output, "asc_606"), strings.Index(output, "revenue"))
}

func TestPrintRequirements_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRequirements(nil)
	assert.Empty(t, buf.String())
}

func TestPrintExtraction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	extraction := &parsing.ProfileExtraction{
		Strategy: parsing.StrategyRepaired,
		Outcomes: []parsing.RecordOutcome{
			{Index: 0, Status: parsing.RecordRecovered},
			{Index: 1, Status: parsing.RecordDefaulted},
			{Index: 2, Status: parsing.RecordDropped, Err: errors.New("record is float64")},
		},
	}

	p.PrintExtraction(extraction)
	output := buf.String()

	assert.Contains(t, output, "SOURCING EXTRACTION")
	assert.Contains(t, output, "Strategy:  repaired")
	assert.Contains(t, output, "Dropped:   1")
	assert.Contains(t, output, "#2 record is float64")
}

func TestPrintCandidatePool(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var pool []types.Candidate
	for i := 0; i < 7; i++ {
		profile := &types.CandidateProfile{Experience: []types.WorkExperience{{Title: "CFO", Company: fmt.Sprintf("Co %d", i)}}}
		pool = append(pool, types.NewCandidate(fmt.Sprint(i), fmt.Sprintf("Person %d", i), "", "CFO", profile))
	}

	p.PrintCandidatePool(pool)
	output := buf.String()

	assert.Contains(t, output, "Total candidates: 7")
	assert.Contains(t, output, "Person 4")
	assert.NotContains(t, output, "Person 5")
	assert.Contains(t, output, "CFO, Co 0")
	assert.Contains(t, output, "... and 2 more candidates")
}

func TestPrintVettingResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	good := types.NewCandidate("a", "Jane Roe", "", "CFO", nil)
	good.AuditorScore, good.DomainScore, good.MatchmakerScore = 95, 90, 92
	good.FinalFit = types.RecommendationStrongHire

	placeholder := types.NewCandidate("b", "John Doe", "", "CFO", nil)
	placeholder.VettingIncomplete = true
	placeholder.FinalFit = types.RecommendationRiskFlag

	p.PrintVettingResults([]types.Candidate{good, placeholder})
	output := buf.String()

	assert.Contains(t, output, "Jane Roe: Strong Hire")
	assert.Contains(t, output, "Auditor 95 / Domain 90 / Matchmaker 92")
	assert.Contains(t, output, "placeholder: vetting incomplete")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}
