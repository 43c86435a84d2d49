// Package pipeline drives a search through its four stages. Each stage takes a
// search state and returns a new one; Run composes them.
package pipeline

import (
	"maps"
	"slices"

	"github.com/jonathan/exec-search/internal/types"
)

// cloneState copies state so the returned value shares no slices or maps with the input
func cloneState(state types.SearchState) types.SearchState {
	next := state
	next.ClientRequirements = maps.Clone(state.ClientRequirements)
	if next.ClientRequirements == nil {
		next.ClientRequirements = map[string]string{}
	}
	next.CandidatePool = cloneCandidates(state.CandidatePool)
	next.VettedCandidates = cloneCandidates(state.VettedCandidates)
	return next
}

func cloneCandidates(candidates []types.Candidate) []types.Candidate {
	out := make([]types.Candidate, len(candidates))
	for i, c := range candidates {
		c.RedFlags = slices.Clone(c.RedFlags)
		out[i] = c
	}
	return out
}
