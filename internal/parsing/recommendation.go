package parsing

import "github.com/jonathan/exec-search/internal/types"

// Mean-score thresholds for the recommendation buckets
const (
	StrongHireThreshold = 90.0
	HireThreshold       = 80.0
	RiskFlagThreshold   = 60.0
)

// ComputeRecommendation maps a mean score onto a recommendation. In the Risk
// Flag band an upstream Hire or Strong Hire is kept; no other label survives.
func ComputeRecommendation(mean float64, upstream types.Recommendation) types.Recommendation {
	switch {
	case mean >= StrongHireThreshold:
		return types.RecommendationStrongHire
	case mean >= HireThreshold:
		return types.RecommendationHire
	case mean >= RiskFlagThreshold:
		if upstream == types.RecommendationHire || upstream == types.RecommendationStrongHire {
			return upstream
		}
		return types.RecommendationRiskFlag
	default:
		return types.RecommendationDoNotHire
	}
}

// EnforceRecommendation returns the score with its recommendation recomputed from the scores
func EnforceRecommendation(score types.VettingScore) types.VettingScore {
	score.FinalRecommendation = ComputeRecommendation(score.MeanScore(), score.FinalRecommendation)
	return score
}
