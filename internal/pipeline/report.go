package pipeline

import (
	"github.com/jonathan/exec-search/internal/ranking"
	"github.com/jonathan/exec-search/internal/rendering"
	"github.com/jonathan/exec-search/internal/types"
)

// Report ranks the qualified candidates and renders the final markdown report
func Report(state types.SearchState) (types.SearchState, error) {
	next := cloneState(state)
	next.Status = types.StatusReporting

	ranked := ranking.RankCandidates(next.VettedCandidates, ranking.QualifyingMatchmakerScore)
	report, err := rendering.RenderReport(next.Query, len(next.VettedCandidates), ranked)
	if err != nil {
		return next, err
	}

	next.FinalReport = report
	next.Status = types.StatusComplete
	return next, nil
}
