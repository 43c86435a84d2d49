// Package types provides type definitions for structured data used throughout the executive search system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SearchStatus is the coarse stage of a search
type SearchStatus string

// SearchStatus constants in pipeline order
const (
	StatusIdle      SearchStatus = "Idle"
	StatusAnalyzing SearchStatus = "Analyzing"
	StatusSourcing  SearchStatus = "Sourcing"
	StatusVetting   SearchStatus = "Vetting"
	StatusReporting SearchStatus = "Reporting"
	StatusComplete  SearchStatus = "Complete"
)

// SearchState is the aggregate passed between pipeline stages.
// Stages take a state value and return a new one; slices are never shared
// between the input and output states.
type SearchState struct {
	ID                 string            `json:"id"`
	Query              string            `json:"query"`
	RoleCategory       RoleCategory      `json:"role_category"`
	RoleTitle          string            `json:"role_title"`
	ClientRequirements map[string]string `json:"client_requirements"`
	CandidatePool      []Candidate       `json:"candidate_pool"`
	VettedCandidates   []Candidate       `json:"vetted_candidates"`
	FinalReport        string            `json:"final_report"`
	Status             SearchStatus      `json:"status"`
}

// NewSearchState creates an idle state for a query
func NewSearchState(id, query string) SearchState {
	return SearchState{
		ID:                 id,
		Query:              query,
		ClientRequirements: map[string]string{},
		CandidatePool:      []Candidate{},
		VettedCandidates:   []Candidate{},
		Status:             StatusIdle,
	}
}
