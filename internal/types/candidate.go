// Package types provides type definitions for structured data used throughout the executive search system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Recommendation is the final categorical hiring label for a vetted candidate
type Recommendation string

// Recommendation constants define the closed set of final labels
const (
	RecommendationStrongHire Recommendation = "Strong Hire"
	RecommendationHire       Recommendation = "Hire"
	RecommendationRiskFlag   Recommendation = "Risk Flag"
	RecommendationDoNotHire  Recommendation = "Do Not Hire"
	// RecommendationPending is the transient label before vetting completes
	RecommendationPending Recommendation = "Pending"
)

// Recommendations returns the closed set of final labels in descending order of strength
func Recommendations() []Recommendation {
	return []Recommendation{
		RecommendationStrongHire,
		RecommendationHire,
		RecommendationRiskFlag,
		RecommendationDoNotHire,
	}
}

// IsFinal reports whether r is one of the four final labels
func (r Recommendation) IsFinal() bool {
	switch r {
	case RecommendationStrongHire, RecommendationHire, RecommendationRiskFlag, RecommendationDoNotHire:
		return true
	}
	return false
}

// Candidate is a sourced profile plus its evaluation results
type Candidate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ResumeText string `json:"resume_text"`
	Role       string `json:"role"`

	AuditorScore    int    `json:"auditor_score"`
	AuditorNotes    string `json:"auditor_notes"`
	DomainScore     int    `json:"domain_score"`
	DomainNotes     string `json:"domain_notes"`
	MatchmakerScore int    `json:"matchmaker_score"`
	MatchmakerNotes string `json:"matchmaker_notes"`

	FinalFit Recommendation `json:"final_fit"`
	RedFlags []string       `json:"red_flags"`

	// VettingIncomplete marks a degraded placeholder result
	VettingIncomplete bool `json:"vetting_incomplete,omitempty"`

	Profile *CandidateProfile `json:"profile,omitempty"`
}

// NewCandidate creates an unvetted candidate with zero scores and a pending recommendation
func NewCandidate(id, name, resumeText, role string, profile *CandidateProfile) Candidate {
	return Candidate{
		ID:         id,
		Name:       name,
		ResumeText: resumeText,
		Role:       role,
		FinalFit:   RecommendationPending,
		RedFlags:   []string{},
		Profile:    profile,
	}
}

// MeanScore returns the mean of the three vetting scores
func (c *Candidate) MeanScore() float64 {
	return float64(c.AuditorScore+c.DomainScore+c.MatchmakerScore) / 3
}

// ApplyScore returns a copy of the candidate carrying the given vetting score.
// Red flags accumulate onto any flags already present.
func (c Candidate) ApplyScore(score VettingScore) Candidate {
	c.AuditorScore = score.AuditorScore
	c.AuditorNotes = score.AuditorNotes
	c.DomainScore = score.DomainScore
	c.DomainNotes = score.DomainNotes
	c.MatchmakerScore = score.MatchmakerScore
	c.MatchmakerNotes = score.MatchmakerNotes
	c.FinalFit = score.FinalRecommendation
	c.VettingIncomplete = score.VettingIncomplete

	flags := make([]string, 0, len(c.RedFlags)+len(score.RedFlags))
	flags = append(flags, c.RedFlags...)
	flags = append(flags, score.RedFlags...)
	c.RedFlags = flags
	return c
}
