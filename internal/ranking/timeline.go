package ranking

import (
	"sort"
	"strings"
	"time"

	"github.com/jonathan/exec-search/internal/types"
)

// dateLayouts are tried in order when reading stint dates
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"01/2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

// daysPerMonth is the mean Gregorian month length
const daysPerMonth = 30.44

// stint is one employment entry with parsed dates
type stint struct {
	Title   string
	Company string
	Start   time.Time
	End     time.Time
	Ongoing bool
}

// Months returns the stint duration in months
func (s stint) Months() float64 {
	return monthsBetween(s.Start, s.End)
}

func monthsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / daysPerMonth
}

// parseDate reads a stint date; "Present" resolves to asOf
func parseDate(value string, asOf time.Time) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, types.PresentEndDate) || strings.EqualFold(value, "current") {
		return asOf, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// buildTimeline parses the experience entries, sorted by start date.
// Entries with unreadable dates are counted but left out.
func buildTimeline(experience []types.WorkExperience, asOf time.Time) ([]stint, int) {
	stints := make([]stint, 0, len(experience))
	unreadable := 0
	for _, exp := range experience {
		start, okStart := parseDate(exp.StartDate, asOf)
		end, okEnd := parseDate(exp.EndDate, asOf)
		if !okStart || !okEnd {
			unreadable++
			continue
		}
		stints = append(stints, stint{
			Title:   exp.Title,
			Company: exp.Company,
			Start:   start,
			End:     end,
			Ongoing: strings.EqualFold(strings.TrimSpace(exp.EndDate), types.PresentEndDate),
		})
	}

	sort.SliceStable(stints, func(i, j int) bool {
		return stints[i].Start.Before(stints[j].Start)
	})
	return stints, unreadable
}
