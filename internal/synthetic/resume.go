package synthetic

import (
	"fmt"
	"strings"

	"github.com/jonathan/exec-search/internal/types"
)

// RenderResumeText flattens a profile into the plain-text resume format.
// Section order: header, professional summary, experience, skills, education.
func RenderResumeText(profile *types.CandidateProfile) string {
	lines := []string{
		fmt.Sprintf("%s %s", types.ResumeSentinel, profile.FullName),
		fmt.Sprintf("Email: %s", profile.Email),
		fmt.Sprintf("Phone: %s", profile.Phone),
		"",
		types.ResumeSectionSummary,
		profile.Summary,
		"",
		types.ResumeSectionExperience,
	}

	for _, exp := range profile.Experience {
		lines = append(lines, fmt.Sprintf("\n%s at %s", exp.Title, exp.Company))
		lines = append(lines, fmt.Sprintf("%s - %s", exp.StartDate, exp.EndDate))
		lines = append(lines, exp.Description)
		if len(exp.KeyAchievements) > 0 {
			lines = append(lines, types.ResumeAchievementsLabel)
			for _, achievement := range exp.KeyAchievements {
				lines = append(lines, types.ResumeBullet+achievement)
			}
		}
	}

	lines = append(lines,
		"",
		types.ResumeSectionSkills,
		strings.Join(profile.Skills, ", "),
		"",
		types.ResumeSectionEducation,
	)
	for _, edu := range profile.Education {
		lines = append(lines, types.ResumeBullet+edu)
	}

	return strings.Join(lines, "\n")
}
