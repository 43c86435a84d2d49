// Package ranking scores candidates with deterministic forensic heuristics and
// ranks vetted candidates for the final report.
package ranking

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/types"
)

// Audit thresholds
const (
	gapThresholdMonths       = 3.0
	shortTenureMonths        = 18.0
	jobHopMonths             = 12.0
	jobHopMinStints          = 3
	jobHopWindowYears        = 5
	baselineAuditorScore     = 95
	baselineDomainScore      = 50
	domainCoverageWeight     = 45.0
	overlapPenalty           = 30
	compliancePenalty        = 25
	invertedDatesPenalty     = 20
	shortTenurePenalty       = 10
	jobHoppingPenalty        = 12
	gapPenalty               = 8
	maxGapPenalty            = 16
	unreadableDatesPenalty   = 5
	maxUnreadableDatePenalty = 10
)

// complianceTerms flag accounting irregularities wherever they appear in the resume
var complianceTerms = []string{"cash-basis", "cash basis"}

// cSuiteMarkers identify C-suite titles for the short tenure rule
var cSuiteMarkers = []string{"Chief", "CFO", "CEO", "COO", "CTO", "CMO", "CIO"}

// FindingKind classifies an audit finding
type FindingKind string

// FindingKind constants
const (
	FindingOverlap       FindingKind = "overlap"
	FindingGap           FindingKind = "gap"
	FindingShortTenure   FindingKind = "short_tenure"
	FindingJobHopping    FindingKind = "job_hopping"
	FindingCompliance    FindingKind = "compliance"
	FindingInvertedDates FindingKind = "inverted_dates"
	FindingUnreadable    FindingKind = "unreadable_dates"
)

// Finding is one issue the auditor identified
type Finding struct {
	Kind   FindingKind
	Detail string
}

// AuditReport is the deterministic evaluation of one candidate
type AuditReport struct {
	Findings        []Finding
	MatchedKeywords []string
	Coverage        float64
	Score           types.VettingScore
}

// HasFinding reports whether a finding of the given kind was recorded
func (r *AuditReport) HasFinding(kind FindingKind) bool {
	for _, f := range r.Findings {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// Auditor applies the forensic timeline checks and rubric keyword coverage
type Auditor struct {
	asOf time.Time
}

// NewAuditor creates an auditor that resolves "Present" end dates to asOf
func NewAuditor(asOf time.Time) *Auditor {
	return &Auditor{asOf: asOf}
}

// Audit evaluates a candidate. The profile may be nil when only resume text is
// available, in which case only text checks apply.
func (a *Auditor) Audit(profile *types.CandidateProfile, resumeText string, keywords []string) AuditReport {
	report := AuditReport{}
	text := resumeText
	if profile != nil && text == "" {
		text = profile.ResumeText
	}

	auditor := baselineAuditorScore
	if profile != nil {
		auditor -= a.auditTimeline(profile.Experience, &report)
	}
	auditor -= auditCompliance(text, profile, &report)
	auditor = clamp(auditor)

	report.MatchedKeywords, report.Coverage = keywordCoverage(text, profile, keywords)
	domain := clamp(baselineDomainScore + int(math.Round(domainCoverageWeight*report.Coverage)))
	matchmaker := clamp(int(math.Round(float64(auditor+domain) / 2)))

	redFlags := make([]string, 0, len(report.Findings))
	for _, f := range report.Findings {
		redFlags = append(redFlags, f.Detail)
	}

	score := types.VettingScore{
		AuditorScore:    auditor,
		AuditorNotes:    auditorNotes(report.Findings),
		DomainScore:     domain,
		DomainNotes:     domainNotes(report.MatchedKeywords, len(keywords)),
		MatchmakerScore: matchmaker,
		RedFlags:        redFlags,
	}
	score.MatchmakerNotes = matchmakerNotes(score.MeanScore(), len(report.Findings))
	score.FinalRecommendation = parsing.ComputeRecommendation(score.MeanScore(), types.RecommendationPending)
	report.Score = score
	return report
}

// auditTimeline records timeline findings and returns the total penalty
func (a *Auditor) auditTimeline(experience []types.WorkExperience, report *AuditReport) int {
	penalty := 0
	stints, unreadable := buildTimeline(experience, a.asOf)

	if unreadable > 0 {
		report.Findings = append(report.Findings, Finding{
			Kind:   FindingUnreadable,
			Detail: fmt.Sprintf("Unverifiable dates on %d role(s)", unreadable),
		})
		penalty += min(unreadable*unreadableDatesPenalty, maxUnreadableDatePenalty)
	}

	for _, s := range stints {
		if s.End.Before(s.Start) {
			report.Findings = append(report.Findings, Finding{
				Kind:   FindingInvertedDates,
				Detail: fmt.Sprintf("End date precedes start date for %s at %s", s.Title, s.Company),
			})
			penalty += invertedDatesPenalty
		}
	}

	for i := 0; i < len(stints); i++ {
		for j := i + 1; j < len(stints); j++ {
			if stints[j].Start.Before(stints[i].End) && !stints[i].End.Before(stints[i].Start) {
				report.Findings = append(report.Findings, Finding{
					Kind: FindingOverlap,
					Detail: fmt.Sprintf("Overlapping employment: %s at %s and %s at %s",
						stints[i].Title, stints[i].Company, stints[j].Title, stints[j].Company),
				})
				penalty += overlapPenalty
			}
		}
	}

	gapTotal := 0
	if len(stints) > 1 {
		latestEnd := stints[0].End
		for _, s := range stints[1:] {
			if gap := monthsBetween(latestEnd, s.Start); gap > gapThresholdMonths {
				report.Findings = append(report.Findings, Finding{
					Kind:   FindingGap,
					Detail: fmt.Sprintf("Employment gap of %.0f months before %s at %s", gap, s.Title, s.Company),
				})
				gapTotal += gapPenalty
			}
			if s.End.After(latestEnd) {
				latestEnd = s.End
			}
		}
	}
	penalty += min(gapTotal, maxGapPenalty)

	for _, s := range stints {
		if isCSuite(s.Title) && !strings.Contains(s.Title, "Interim") && !s.Ongoing && s.Months() < shortTenureMonths {
			report.Findings = append(report.Findings, Finding{
				Kind:   FindingShortTenure,
				Detail: fmt.Sprintf("Short tenure: %s at %s (%.0f months)", s.Title, s.Company, s.Months()),
			})
			penalty += shortTenurePenalty
		}
	}

	if short := recentShortStints(stints, a.asOf); short >= jobHopMinStints {
		report.Findings = append(report.Findings, Finding{
			Kind:   FindingJobHopping,
			Detail: fmt.Sprintf("Job hopping: %d stints under %d months within %d years", short, int(jobHopMonths), jobHopWindowYears),
		})
		penalty += jobHoppingPenalty
	}

	return penalty
}

// recentShortStints counts stints under a year that began in the job hopping window
func recentShortStints(stints []stint, asOf time.Time) int {
	windowStart := asOf.AddDate(-jobHopWindowYears, 0, 0)
	if len(stints) > 0 {
		// Anchor on the latest stint so historical profiles are judged on their own timeline
		latest := stints[len(stints)-1].Start
		if latest.Before(asOf) {
			windowStart = latest.AddDate(-jobHopWindowYears, 0, 0)
		}
	}

	count := 0
	for _, s := range stints {
		if !s.Start.Before(windowStart) && !s.Ongoing && s.Months() < jobHopMonths {
			count++
		}
	}
	return count
}

func auditCompliance(text string, profile *types.CandidateProfile, report *AuditReport) int {
	haystack := strings.ToLower(text)
	if profile != nil {
		haystack += " " + strings.ToLower(strings.Join(profile.Skills, " "))
		for _, exp := range profile.Experience {
			haystack += " " + strings.ToLower(exp.Description)
		}
	}

	for _, term := range complianceTerms {
		if strings.Contains(haystack, term) {
			report.Findings = append(report.Findings, Finding{
				Kind:   FindingCompliance,
				Detail: "Cash-basis accounting reported",
			})
			return compliancePenalty
		}
	}
	return 0
}

// keywordCoverage returns the rubric keywords found in the candidate's text and the covered fraction
func keywordCoverage(text string, profile *types.CandidateProfile, keywords []string) ([]string, float64) {
	if len(keywords) == 0 {
		return nil, 0
	}

	haystack := strings.ToLower(text)
	if profile != nil {
		haystack += " " + strings.ToLower(profile.Summary+" "+strings.Join(profile.Skills, " "))
	}

	matched := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}
	return matched, float64(len(matched)) / float64(len(keywords))
}

func isCSuite(title string) bool {
	for _, marker := range cSuiteMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

func clamp(score int) int {
	return max(0, min(100, score))
}

func auditorNotes(findings []Finding) string {
	if len(findings) == 0 {
		return "No gaps, overlaps, short tenures or compliance concerns found."
	}
	details := make([]string, 0, len(findings))
	for _, f := range findings {
		details = append(details, f.Detail)
	}
	return strings.Join(details, "; ") + "."
}

func domainNotes(matched []string, total int) string {
	if total == 0 {
		return "No rubric competencies to evaluate."
	}
	if len(matched) == 0 {
		return fmt.Sprintf("None of the %d rubric competencies evidenced.", total)
	}
	return fmt.Sprintf("Evidenced %d of %d rubric competencies: %s.", len(matched), total, strings.Join(matched, ", "))
}

func matchmakerNotes(mean float64, findings int) string {
	switch {
	case findings == 0 && mean >= parsing.StrongHireThreshold:
		return "Exceptional fit with a clean history."
	case findings == 0:
		return "Solid history; domain depth is the deciding factor."
	case mean >= parsing.RiskFlagThreshold:
		return fmt.Sprintf("Viable but %d concern(s) need client review.", findings)
	default:
		return fmt.Sprintf("Not recommended: %d concern(s) outweigh domain fit.", findings)
	}
}
