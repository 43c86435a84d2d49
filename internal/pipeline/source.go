package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jonathan/exec-search/internal/agents"
	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/synthetic"
	"github.com/jonathan/exec-search/internal/types"
)

// fallbackRole is used when the query carries no "-" separated role prefix
const fallbackRole = "Executive"

// Source asks the executor for a candidate pool and recovers profiles from its response.
// An executor failure is returned with the state unchanged apart from its status.
func Source(ctx context.Context, state types.SearchState, exec agents.Executor, opts *Options) (types.SearchState, parsing.ProfileExtraction, error) {
	opts = opts.withDefaults()
	next := cloneState(state)
	next.Status = types.StatusSourcing

	raw, err := exec.Source(ctx, agents.SourcingTask{
		Query:        state.Query,
		RoleTitle:    state.RoleTitle,
		Requirements: state.ClientRequirements,
		Count:        opts.PoolSize,
	})
	if err != nil {
		return next, parsing.ProfileExtraction{Strategy: parsing.StrategyNone}, err
	}

	extraction := opts.Parser.ParseProfiles(raw)
	opts.Logger.Info("sourcing response parsed",
		slog.String("strategy", string(extraction.Strategy)),
		slog.Int("profiles", len(extraction.Profiles)),
		slog.Int("dropped", extraction.Count(parsing.RecordDropped)))

	role := CandidateRole(state.Query)
	pool := make([]types.Candidate, 0, len(extraction.Profiles))
	for i := range extraction.Profiles {
		profile := extraction.Profiles[i]
		resume := profile.ResumeText
		if strings.TrimSpace(resume) == "" {
			resume = synthetic.RenderResumeText(&profile)
		}
		pool = append(pool, types.NewCandidate(profile.ID, profile.FullName, resume, role, &profile))
	}
	next.CandidatePool = pool
	return next, extraction, nil
}

// CandidateRole is the query text before the first "-", or "Executive" when there is none
func CandidateRole(query string) string {
	before, _, found := strings.Cut(query, "-")
	if !found {
		return fallbackRole
	}
	if role := strings.TrimSpace(before); role != "" {
		return role
	}
	return fallbackRole
}
