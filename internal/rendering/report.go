package rendering

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/jonathan/exec-search/internal/types"
)

// ReportTitle heads every search report
const ReportTitle = "Executive Search Report"

//go:embed report.md.tmpl
var reportTemplateText string

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateText))

// ReportData represents the data structure passed to the report template
type ReportData struct {
	Title      string
	Query      string
	Evaluated  int
	Candidates []CandidateSection
}

// CandidateSection is one ranked candidate of the report
type CandidateSection struct {
	Rank           int
	Name           string
	Recommendation types.Recommendation
	Overall        int
	Auditor        int
	Domain         int
	Matchmaker     int
	AuditorNotes   string
	DomainNotes    string
	RedFlags       []string
	Incomplete     bool
}

// BuildReportData converts ranked candidates into template data.
// Overall scores truncate the mean toward zero.
func BuildReportData(query string, evaluated int, ranked []types.Candidate) ReportData {
	data := ReportData{
		Title:      ReportTitle,
		Query:      EscapeMarkdown(query),
		Evaluated:  evaluated,
		Candidates: make([]CandidateSection, 0, len(ranked)),
	}
	for i, c := range ranked {
		data.Candidates = append(data.Candidates, CandidateSection{
			Rank:           i + 1,
			Name:           EscapeMarkdown(c.Name),
			Recommendation: c.FinalFit,
			Overall:        int(c.MeanScore()),
			Auditor:        c.AuditorScore,
			Domain:         c.DomainScore,
			Matchmaker:     c.MatchmakerScore,
			AuditorNotes:   strings.TrimSpace(c.AuditorNotes),
			DomainNotes:    strings.TrimSpace(c.DomainNotes),
			RedFlags:       c.RedFlags,
			Incomplete:     c.VettingIncomplete,
		})
	}
	return data
}

// RenderReport renders the markdown report for ranked, already qualified candidates
func RenderReport(query string, evaluated int, ranked []types.Candidate) (string, error) {
	var result strings.Builder
	if err := reportTemplate.Execute(&result, BuildReportData(query, evaluated, ranked)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute report template",
			Cause:   err,
		}
	}
	return result.String(), nil
}
