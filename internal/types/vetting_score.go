// Package types provides type definitions for structured data used throughout the executive search system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// VettingScore is the scoring record returned by the evaluation capability.
// Its JSON shape is the wire contract with that capability.
type VettingScore struct {
	AuditorScore        int            `json:"auditor_score" validate:"min=0,max=100"`
	AuditorNotes        string         `json:"auditor_notes"`
	DomainScore         int            `json:"domain_score" validate:"min=0,max=100"`
	DomainNotes         string         `json:"domain_notes"`
	MatchmakerScore     int            `json:"matchmaker_score" validate:"min=0,max=100"`
	MatchmakerNotes     string         `json:"matchmaker_notes"`
	RedFlags            []string       `json:"red_flags"`
	FinalRecommendation Recommendation `json:"final_recommendation" validate:"recommendation"`

	// VettingIncomplete is set on degraded placeholder scores; it is not part of the wire contract
	VettingIncomplete bool `json:"-"`
}

// MeanScore returns the mean of the three scores
func (s *VettingScore) MeanScore() float64 {
	return float64(s.AuditorScore+s.DomainScore+s.MatchmakerScore) / 3
}
