package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/exec-search/internal/schemas"
	"github.com/jonathan/exec-search/internal/types"
)

func TestGenerateCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "generate", "--role", "Interim CFO", "--count", "4", "--seed", "7")
	require.NoError(t, err)

	var profiles []types.CandidateProfile
	require.NoError(t, json.Unmarshal([]byte(stdout), &profiles))
	assert.Len(t, profiles, 4)
	for _, p := range profiles {
		assert.True(t, strings.HasPrefix(p.ResumeText, types.ResumeSentinel+" "+p.FullName), p.ResumeText)
	}

	again, _, err := executeCommand(t, "", "generate", "--role", "Interim CFO", "--count", "4", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, stdout, again)
}

func TestGenerateCommand_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "profiles.json")
	stdout, _, err := executeCommand(t, "", "generate", "--role", "Healthcare Ops Director", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Generated 10 profiles")

	require.NoError(t, schemas.ValidateFile(schemas.CandidateProfiles, out))
}

func TestGenerateCommand_RequiresRole(t *testing.T) {
	_, _, err := executeCommand(t, "", "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "role" not set`)
}

func TestRenderResumeCommand(t *testing.T) {
	profiles := writeTemp(t, "profiles.json", `Here are the candidates:
[{"name": "Jane Roe", "bio": "Turnaround CFO.", "experience": {"role": "CFO", "company": "Acme", "duration": "2019-01-01 - 2023-06-30"}},
 {"full_name": "John Doe", "skills": ["Audit"]}]`)

	stdout, _, err := executeCommand(t, "", "render-resume", "--in", profiles, "--index", "0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "CANDIDATE: Jane Roe\n"), stdout)
	assert.Contains(t, stdout, "PROFESSIONAL SUMMARY")
	assert.Contains(t, stdout, "Turnaround CFO.")
	assert.Contains(t, stdout, "CFO at Acme")
	assert.NotContains(t, stdout, "John Doe")

	all, _, err := executeCommand(t, "", "render-resume", "--in", profiles)
	require.NoError(t, err)
	assert.Contains(t, all, "CANDIDATE: John Doe")

	_, _, err = executeCommand(t, "", "render-resume", "--in", profiles, "--index", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestParseCommand_Profiles(t *testing.T) {
	raw := "Sure! Here you go:\n```json\n[{\"id\": 7, \"name\": \"Jane Roe\", \"education\": \"MBA\"}]\n```\nLet me know."

	stdout, stderr, err := executeCommand(t, raw, "parse", "--shape", "profiles")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Strategy: fenced")
	assert.Contains(t, stderr, "1 defaulted")

	var profiles []types.CandidateProfile
	require.NoError(t, json.Unmarshal([]byte(stdout), &profiles))
	require.Len(t, profiles, 1)
	assert.Equal(t, "7", profiles[0].ID)
	assert.Equal(t, "Jane Roe", profiles[0].FullName)
	assert.Equal(t, []string{"MBA"}, profiles[0].Education)
}

func TestParseCommand_NothingRecoverable(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "no structured content here", "parse")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Strategy: none")
	assert.JSONEq(t, `[]`, stdout)
}

func TestParseCommand_Score(t *testing.T) {
	raw := `{"auditor_score": 95, "domain_score": 92, "matchmaker_score": 90, "final_recommendation": "Do Not Hire"}`

	stdout, stderr, err := executeCommand(t, raw, "parse", "--shape", "score")
	require.NoError(t, err)
	assert.Contains(t, stderr, `Recommendation: Strong Hire (upstream "Do Not Hire")`)

	var score types.VettingScore
	require.NoError(t, json.Unmarshal([]byte(stdout), &score))
	assert.Equal(t, types.RecommendationStrongHire, score.FinalRecommendation)
}

func TestParseCommand_UnknownShape(t *testing.T) {
	_, _, err := executeCommand(t, "", "parse", "--shape", "job")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown shape "job"`)
}

func TestVetCommand_Offline(t *testing.T) {
	resume := writeTemp(t, "resume.txt", "CANDIDATE: Jane Roe\n\nPROFESSIONAL SUMMARY\nCFO with ASC 606 and SaaS audit readiness experience.\n")

	stdout, stderr, err := executeCommand(t, "", "vet", "--resume", resume, "--role", "Interim CFO", "--requirements", "ASC 606")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Jane Roe: ")

	var candidate types.Candidate
	require.NoError(t, json.Unmarshal([]byte(stdout), &candidate))
	assert.Equal(t, "Jane Roe", candidate.Name)
	assert.Equal(t, "Interim CFO", candidate.Role)
	assert.True(t, candidate.FinalFit.IsFinal())
	assert.False(t, candidate.VettingIncomplete)
}

func TestVetCommand_OnlineRequiresKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	resume := writeTemp(t, "resume.txt", "CANDIDATE: Jane Roe\n")

	_, _, err := executeCommand(t, "", "vet", "--resume", resume, "--role", "Interim CFO", "--offline=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini_api_key")
}

func TestSearchCommand_Offline(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report.md")
	state := filepath.Join(dir, "state.json")

	stdout, _, err := executeCommand(t, "", "search", "Interim CFO - $50M SaaS, ASC 606",
		"--out", report, "--json", state, "--metrics", "--pool-size", "6", "--max-vetting", "3")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Step 1/4: Analyzing requirements for: Interim CFO - $50M SaaS, ASC 606...")
	assert.Contains(t, stdout, "Step 3/4: Vetting up to 3 of 6 candidates...")
	assert.Contains(t, stdout, "# Executive Search Report")
	assert.Contains(t, stdout, "Metrics:")
	assert.Contains(t, stdout, `exec_search_parser_extractions_total{shape="profiles",strategy="fenced"} 1`)
	assert.Contains(t, stdout, `exec_search_parser_extractions_total{shape="score",strategy="fenced"} 3`)

	markdown, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(markdown), "**Candidates Evaluated:** 3")

	require.NoError(t, schemas.ValidateFile(schemas.SearchState, state))
	data, err := os.ReadFile(state)
	require.NoError(t, err)
	var saved types.SearchState
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, types.StatusComplete, saved.Status)
	assert.Equal(t, types.RoleCFO, saved.RoleCategory)
	assert.Len(t, saved.CandidatePool, 6)
	assert.Len(t, saved.VettedCandidates, 3)
}

func TestSearchCommand_RoleAndRequirementsFlags(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "search", "--role", "Project Manager", "--requirements", "Remote",
		"--pool-size", "2", "--max-vetting", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Analyzing requirements for: Project Manager - Remote...")
	assert.Contains(t, stdout, "**Search Query:** Project Manager - Remote")
}

func TestSearchCommand_RequiresQuery(t *testing.T) {
	_, _, err := executeCommand(t, "", "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a query or --role must be provided")
}

func TestSearchCommand_InvalidConfig(t *testing.T) {
	cfg := writeTemp(t, "config.yaml", "vet_concurrency: 0\n")

	_, _, err := executeCommand(t, "", "search", "--config", cfg, "Interim CFO")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vet_concurrency")
}

func TestValidateCommand(t *testing.T) {
	valid := writeTemp(t, "score.json", `{"auditor_score": 80, "auditor_notes": "", "domain_score": 80, "domain_notes": "",
		"matchmaker_score": 80, "matchmaker_notes": "", "red_flags": [], "final_recommendation": "Hire"}`)
	stdout, _, err := executeCommand(t, "", "validate", "--schema", schemas.VettingScore, "--in", valid)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid against vetting_score")

	invalid := writeTemp(t, "score.json", `{"auditor_score": "high"}`)
	_, _, err = executeCommand(t, "", "validate", "--schema", schemas.VettingScore, "--in", invalid)
	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		role, requirements, want string
	}{
		{"Interim CFO", "$50M SaaS", "Interim CFO - $50M SaaS"},
		{" Interim CFO ", "", "Interim CFO"},
		{"", "ASC 606", "ASC 606"},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, searchQuery(tt.role, tt.requirements))
	}
}

func TestResumeName(t *testing.T) {
	assert.Equal(t, "Jane Roe", resumeName("\n  CANDIDATE: Jane Roe\nPROFESSIONAL SUMMARY"))
	assert.Equal(t, "Jane Roe", resumeName("Jane Roe\nCFO"))
	assert.Equal(t, "Candidate", resumeName("  \n"))
}
