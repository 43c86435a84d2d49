// Package types provides type definitions for structured data used throughout the executive search system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PresentEndDate is the end date used for a stint that is still ongoing
const PresentEndDate = "Present"

// WorkExperience represents a single employment stint.
// Dates are kept as strings: untrusted input is not guaranteed to be ISO-8601,
// and inverted or overlapping ranges are preserved as data-quality signals.
type WorkExperience struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Description     string   `json:"description"`
	KeyAchievements []string `json:"key_achievements"`
}

// CandidateProfile holds identity and career data for one candidate
type CandidateProfile struct {
	ID          string           `json:"id"`
	FullName    string           `json:"full_name" validate:"required"`
	LinkedInURL string           `json:"linkedin_url"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Summary     string           `json:"summary"`
	Skills      []string         `json:"skills"`
	Experience  []WorkExperience `json:"experience"`
	Education   []string         `json:"education"`
	// FlaggedIssues lists ground-truth defects injected into synthetic data
	FlaggedIssues []string `json:"flagged_issues,omitempty"`
	ResumeText    string   `json:"resume_text"`
}

// HasFlaggedIssues reports whether ground-truth defects were injected into the profile
func (p *CandidateProfile) HasFlaggedIssues() bool {
	return len(p.FlaggedIssues) > 0
}
