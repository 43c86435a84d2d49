package parsing

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/exec-search/internal/types"
)

// Defaults applied to score records
const (
	DefaultScore          = 75
	DefaultNotes          = "Notes not provided"
	DefaultRecommendation = types.RecommendationHire
)

// Values used when scores are scraped from unstructured text
const (
	ScrapedScoreDefault = 70
	SeeMatchmakerNotes  = "See matchmaker notes"
	RiskIdentifiedFlag  = "Risk identified in vetting"
)

var (
	auditorScorePattern    = regexp.MustCompile(`(?i)auditor[_\s]?score[:\s]+(\d+)`)
	domainScorePattern     = regexp.MustCompile(`(?i)domain[_\s]?score[:\s]+(\d+)`)
	matchmakerScorePattern = regexp.MustCompile(`(?i)(?:final|matchmaker)[_\s]?score[:\s]+(\d+)`)
)

// NormalizeScoreRecord coerces a loosely typed score record into a VettingScore.
// The returned score carries the validated upstream recommendation; consistency
// with the scores is enforced separately by EnforceRecommendation.
func NormalizeScoreRecord(record map[string]any) (types.VettingScore, []string) {
	var defects []string
	score := types.VettingScore{}

	scoreField := func(key string) int {
		value, ok := record[key]
		n, defect := coerceScore(value, ok)
		if defect != "" {
			defects = append(defects, key+" "+defect)
		}
		return n
	}
	notesField := func(key string) string {
		value, ok := record[key]
		if !ok || value == nil {
			defects = append(defects, key+" defaulted")
			return DefaultNotes
		}
		return stringify(value)
	}

	score.AuditorScore = scoreField("auditor_score")
	score.AuditorNotes = notesField("auditor_notes")
	score.DomainScore = scoreField("domain_score")
	score.DomainNotes = notesField("domain_notes")
	score.MatchmakerScore = scoreField("matchmaker_score")
	score.MatchmakerNotes = notesField("matchmaker_notes")

	switch flags := record["red_flags"].(type) {
	case []any:
		score.RedFlags = make([]string, 0, len(flags))
		for _, flag := range flags {
			score.RedFlags = append(score.RedFlags, stringify(flag))
		}
	case string:
		score.RedFlags = []string{flags}
		defects = append(defects, "red_flags wrapped in list")
	default:
		score.RedFlags = []string{}
	}

	label, _ := record["final_recommendation"].(string)
	score.FinalRecommendation = types.Recommendation(label)
	if !score.FinalRecommendation.IsFinal() {
		score.FinalRecommendation = DefaultRecommendation
		defects = append(defects, "final_recommendation defaulted")
	}

	return score, defects
}

// coerceScore converts a score value to an integer in [0,100]
func coerceScore(value any, present bool) (int, string) {
	if !present {
		return DefaultScore, "defaulted"
	}

	var n int
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			n = int(i)
		} else if f, err := v.Float64(); err == nil {
			n = int(f)
		} else {
			return DefaultScore, "malformed"
		}
	case float64:
		n = int(v)
	case string:
		s := strings.TrimSpace(v)
		if i, err := strconv.Atoi(s); err == nil {
			n = i
		} else if f, err := strconv.ParseFloat(s, 64); err == nil {
			n = int(f)
		} else {
			return DefaultScore, "malformed"
		}
	default:
		return DefaultScore, "malformed"
	}

	return clampScore(n)
}

func clampScore(n int) (int, string) {
	switch {
	case n < 0:
		return 0, "clamped"
	case n > 100:
		return 100, "clamped"
	default:
		return n, ""
	}
}

// scrapeScore recovers a score from unstructured text when no JSON object is available
func scrapeScore(raw string) (types.VettingScore, []string) {
	defects := []string{"no structured payload"}
	score := types.VettingScore{
		AuditorScore:        DefaultScore,
		DomainScore:         DefaultScore,
		MatchmakerScore:     DefaultScore,
		RedFlags:            []string{},
		FinalRecommendation: types.RecommendationPending,
	}

	if strings.Contains(strings.ToLower(raw), "auditor_score") {
		score.AuditorScore = scrapeInt(auditorScorePattern, raw)
		score.DomainScore = scrapeInt(domainScorePattern, raw)
		score.MatchmakerScore = scrapeInt(matchmakerScorePattern, raw)
		defects = append(defects, "scores scraped from text")
	} else {
		defects = append(defects, "scores defaulted")
	}

	score.MatchmakerNotes = cleanNotes(raw)
	score.AuditorNotes = SeeMatchmakerNotes
	score.DomainNotes = SeeMatchmakerNotes

	lower := strings.ToLower(raw)
	if strings.Contains(lower, "red flag") || strings.Contains(lower, "risk") {
		score.RedFlags = append(score.RedFlags, RiskIdentifiedFlag)
	}

	return score, defects
}

func scrapeInt(pattern *regexp.Regexp, raw string) int {
	match := pattern.FindStringSubmatch(raw)
	if match == nil {
		return ScrapedScoreDefault
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return ScrapedScoreDefault
	}
	n, _ = clampScore(n)
	return n
}

// cleanNotes strips fence and brace artifacts from the ends of the text
func cleanNotes(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	return s
}
