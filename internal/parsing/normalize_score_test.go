package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/exec-search/internal/types"
)

func TestParseVettingScore_RecommendationConsistency(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want types.Recommendation
	}{
		{
			name: "high scores override a negative label",
			raw:  `{"auditor_score": 95, "domain_score": 92, "matchmaker_score": 90, "final_recommendation": "Do Not Hire"}`,
			want: types.RecommendationStrongHire,
		},
		{
			name: "low scores override a positive label",
			raw:  `{"auditor_score": 50, "domain_score": 55, "matchmaker_score": 52, "final_recommendation": "Strong Hire"}`,
			want: types.RecommendationDoNotHire,
		},
		{
			name: "hire band downgrades strong hire",
			raw:  `{"auditor_score": 85, "domain_score": 85, "matchmaker_score": 85, "final_recommendation": "Strong Hire"}`,
			want: types.RecommendationHire,
		},
		{
			name: "risk band keeps upstream hire",
			raw:  `{"auditor_score": 70, "domain_score": 70, "matchmaker_score": 70, "final_recommendation": "Hire"}`,
			want: types.RecommendationHire,
		},
		{
			name: "risk band keeps upstream strong hire",
			raw:  `{"auditor_score": 70, "domain_score": 70, "matchmaker_score": 70, "final_recommendation": "Strong Hire"}`,
			want: types.RecommendationStrongHire,
		},
		{
			name: "risk band does not upgrade do not hire",
			raw:  `{"auditor_score": 70, "domain_score": 70, "matchmaker_score": 70, "final_recommendation": "Do Not Hire"}`,
			want: types.RecommendationRiskFlag,
		},
		{
			name: "unknown label defaults to hire before enforcement",
			raw:  `{"auditor_score": 70, "domain_score": 70, "matchmaker_score": 70, "final_recommendation": "Maybe"}`,
			want: types.RecommendationHire,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseVettingScore(tt.raw)
			assert.Equal(t, tt.want, result.Score.FinalRecommendation)
			assert.NoError(t, result.Score.Validate())
		})
	}
}

func TestParseVettingScore_Upstream(t *testing.T) {
	result := ParseVettingScore(`{"auditor_score": 95, "domain_score": 92, "matchmaker_score": 90, "final_recommendation": "Do Not Hire"}`)

	assert.Equal(t, types.RecommendationDoNotHire, result.Upstream)
	assert.Equal(t, types.RecommendationStrongHire, result.Score.FinalRecommendation)
}

func TestParseVettingScore_Strategies(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantStrategy Strategy
		wantAuditor  int
	}{
		{
			name:         "fenced",
			raw:          "Assessment:\n```json\n{\"auditor_score\": 81}\n```",
			wantStrategy: StrategyFenced,
			wantAuditor:  81,
		},
		{
			name:         "whole",
			raw:          `{"auditor_score": 82}`,
			wantStrategy: StrategyWhole,
			wantAuditor:  82,
		},
		{
			name:         "object inside commentary",
			raw:          "My verdict is {\"auditor_score\": 83, \"domain_score\": 80} overall.",
			wantStrategy: StrategyBracket,
			wantAuditor:  83,
		},
		{
			name:         "truncated object is repaired",
			raw:          `{"auditor_score": 84, "auditor_notes": "Clean audit", "domain_score": 80, "domain_notes": "Strong dom`,
			wantStrategy: StrategyRepaired,
			wantAuditor:  84,
		},
		{
			name:         "text only is scraped",
			raw:          "auditor_score: 85, domain score: 77, final score 90",
			wantStrategy: StrategyFreeform,
			wantAuditor:  85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseVettingScore(tt.raw)
			assert.Equal(t, tt.wantStrategy, result.Strategy)
			assert.Equal(t, tt.wantAuditor, result.Score.AuditorScore)
		})
	}
}

func TestParseVettingScore_Coercion(t *testing.T) {
	raw := `{"auditor_score": "88", "domain_score": 91.7, "matchmaker_score": "high",
		"auditor_notes": 12, "red_flags": "Gap in 2019"}`

	result := ParseVettingScore(raw)
	score := result.Score

	assert.Equal(t, 88, score.AuditorScore)
	assert.Equal(t, 91, score.DomainScore)
	assert.Equal(t, DefaultScore, score.MatchmakerScore)
	assert.Equal(t, "12", score.AuditorNotes)
	assert.Equal(t, DefaultNotes, score.DomainNotes)
	assert.Equal(t, []string{"Gap in 2019"}, score.RedFlags)
	assert.Equal(t, RecordDefaulted, result.Status)
	assert.Contains(t, result.Defects, "matchmaker_score malformed")
}

func TestParseVettingScore_Clamps(t *testing.T) {
	result := ParseVettingScore(`{"auditor_score": 150, "domain_score": -5, "matchmaker_score": 60}`)

	assert.Equal(t, 100, result.Score.AuditorScore)
	assert.Equal(t, 0, result.Score.DomainScore)
	assert.Contains(t, result.Defects, "auditor_score clamped")
	assert.NoError(t, result.Score.Validate())
}

func TestParseVettingScore_CompleteRecordIsRecovered(t *testing.T) {
	raw := `{"auditor_score": 91, "auditor_notes": "a", "domain_score": 93, "domain_notes": "d",
		"matchmaker_score": 95, "matchmaker_notes": "m", "red_flags": [], "final_recommendation": "Strong Hire"}`

	result := ParseVettingScore(raw)

	assert.Equal(t, RecordRecovered, result.Status)
	assert.Empty(t, result.Defects)
	assert.Equal(t, []string{}, result.Score.RedFlags)
}

func TestParseVettingScore_TextFallback(t *testing.T) {
	t.Run("scores scraped when named", func(t *testing.T) {
		raw := "AUDITOR_SCORE: 82\nDomain Score: 77\nMatchmaker_score 90\nOne red flag noted."

		score := ParseVettingScore(raw).Score

		assert.Equal(t, 82, score.AuditorScore)
		assert.Equal(t, 77, score.DomainScore)
		assert.Equal(t, 90, score.MatchmakerScore)
		assert.Equal(t, SeeMatchmakerNotes, score.AuditorNotes)
		assert.Equal(t, SeeMatchmakerNotes, score.DomainNotes)
		assert.Equal(t, []string{RiskIdentifiedFlag}, score.RedFlags)
		assert.Equal(t, types.RecommendationHire, score.FinalRecommendation)
	})

	t.Run("missing scores default to seventy when the auditor key appears", func(t *testing.T) {
		score := ParseVettingScore("auditor_score was not computed").Score

		assert.Equal(t, ScrapedScoreDefault, score.AuditorScore)
		assert.Equal(t, ScrapedScoreDefault, score.DomainScore)
		assert.Equal(t, ScrapedScoreDefault, score.MatchmakerScore)
	})

	t.Run("prose without scores defaults to seventy five", func(t *testing.T) {
		result := ParseVettingScore("The candidate seems solid.")

		assert.Equal(t, StrategyFreeform, result.Strategy)
		assert.Equal(t, DefaultScore, result.Score.AuditorScore)
		assert.Equal(t, "The candidate seems solid.", result.Score.MatchmakerNotes)
		assert.Empty(t, result.Score.RedFlags)
		assert.Equal(t, types.RecommendationPending, result.Upstream)
		assert.Equal(t, types.RecommendationRiskFlag, result.Score.FinalRecommendation)
	})

	t.Run("mentions of risk add a flag", func(t *testing.T) {
		score := ParseVettingScore("Some Risk in the timeline.").Score
		assert.Equal(t, []string{RiskIdentifiedFlag}, score.RedFlags)
	})
}

func TestCleanNotes(t *testing.T) {
	assert.Equal(t, "\"a\": 1", cleanNotes("```json{\"a\": 1}```"))
	assert.Equal(t, "plain", cleanNotes("  plain  "))
}

func TestNormalizeScoreRecord_Defaults(t *testing.T) {
	score, defects := NormalizeScoreRecord(map[string]any{})

	assert.Equal(t, DefaultScore, score.AuditorScore)
	assert.Equal(t, DefaultScore, score.DomainScore)
	assert.Equal(t, DefaultScore, score.MatchmakerScore)
	assert.Equal(t, DefaultNotes, score.MatchmakerNotes)
	assert.Equal(t, DefaultRecommendation, score.FinalRecommendation)
	assert.Equal(t, []string{}, score.RedFlags)
	require.Len(t, defects, 7)
}
