// Package types provides type definitions for structured data used throughout the executive search system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Section labels of the plain-text resume format. Downstream text-only
// evaluators depend on these labels and their order.
const (
	// ResumeSentinel precedes every candidate in rendered or narrative text
	ResumeSentinel          = "CANDIDATE:"
	ResumeSectionSummary    = "PROFESSIONAL SUMMARY"
	ResumeSectionExperience = "EXPERIENCE"
	ResumeSectionSkills     = "SKILLS"
	ResumeSectionEducation  = "EDUCATION"
	ResumeAchievementsLabel = "Key Achievements:"
	ResumeBullet            = "  • "
)
