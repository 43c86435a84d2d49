package agents

import "github.com/jonathan/exec-search/internal/types"

const (
	// DegradedScoreValue is assigned to every score of a degraded placeholder
	DegradedScoreValue = 70
	// VettingIncompleteFlag marks a candidate whose vetting never completed
	VettingIncompleteFlag = "Vetting incomplete"
)

// DegradedScore is the placeholder applied when vetting fails after all retries.
// It is distinguishable from a genuine score through VettingIncomplete.
func DegradedScore() types.VettingScore {
	return types.VettingScore{
		AuditorScore:        DegradedScoreValue,
		AuditorNotes:        "Vetting failed due to API limits.",
		DomainScore:         DegradedScoreValue,
		DomainNotes:         "Vetting failed due to API limits.",
		MatchmakerScore:     DegradedScoreValue,
		MatchmakerNotes:     "Automated vetting skipped.",
		RedFlags:            []string{VettingIncompleteFlag},
		FinalRecommendation: types.RecommendationRiskFlag,
		VettingIncomplete:   true,
	}
}
