package pipeline

import (
	"regexp"
	"strings"

	"github.com/jonathan/exec-search/internal/types"
)

var revenuePattern = regexp.MustCompile(`\$(\d+M?)`)

// Requirement keys extracted from the query
const (
	RequirementRevenue  = "revenue"
	RequirementASC606   = "asc_606"
	RequirementLocation = "location"
)

// Analyze classifies the query into a role category and extracts the client
// requirements it states.
func Analyze(state types.SearchState) types.SearchState {
	next := cloneState(state)
	next.Status = types.StatusAnalyzing

	next.RoleCategory = types.ClassifyRole(state.Query)
	next.RoleTitle = next.RoleCategory.CanonicalTitle()
	next.ClientRequirements = ExtractRequirements(state.Query)
	return next
}

// ExtractRequirements pulls revenue, ASC 606 and remote-location requirements out of a query
func ExtractRequirements(query string) map[string]string {
	requirements := map[string]string{}
	if m := revenuePattern.FindStringSubmatch(query); m != nil {
		requirements[RequirementRevenue] = "$" + m[1]
	}
	if strings.Contains(query, "ASC 606") {
		requirements[RequirementASC606] = "required"
	}
	if strings.Contains(query, "Remote") {
		requirements[RequirementLocation] = "Remote"
	}
	return requirements
}
