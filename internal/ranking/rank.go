package ranking

import (
	"sort"

	"github.com/jonathan/exec-search/internal/types"
)

// QualifyingMatchmakerScore is the minimum matchmaker score for the report shortlist
const QualifyingMatchmakerScore = 60

// RankCandidates returns the vetted candidates whose matchmaker score reaches
// minMatchmaker, sorted by mean score descending. Ties keep vetting order.
func RankCandidates(vetted []types.Candidate, minMatchmaker int) []types.Candidate {
	qualified := make([]types.Candidate, 0, len(vetted))
	for _, c := range vetted {
		if c.MatchmakerScore >= minMatchmaker {
			qualified = append(qualified, c)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].MeanScore() > qualified[j].MeanScore()
	})
	return qualified
}
