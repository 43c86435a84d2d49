// Package types provides type definitions for structured data used throughout the executive search system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// RoleCategory is the rubric family a role string maps to
type RoleCategory string

// RoleCategory constants define the closed set of rubrics
const (
	RoleCFO              RoleCategory = "cfo"
	RoleHealthcareOps    RoleCategory = "healthcare_ops"
	RoleProjectManager   RoleCategory = "project_manager"
	RoleGeneralExecutive RoleCategory = "general_executive"
)

// ClassifyRole maps a free-text role string onto a RoleCategory by substring rules.
// Only the CFO rule ignores case. Anything unmatched falls back to the general
// executive rubric.
func ClassifyRole(role string) RoleCategory {
	switch {
	case strings.Contains(strings.ToUpper(role), "CFO"):
		return RoleCFO
	case strings.Contains(role, "Healthcare") || strings.Contains(role, "Ops"):
		return RoleHealthcareOps
	case strings.Contains(role, "Project Manager") || strings.Contains(role, "PM"):
		return RoleProjectManager
	default:
		return RoleGeneralExecutive
	}
}

// CanonicalTitle returns the search title used for a category
func (c RoleCategory) CanonicalTitle() string {
	switch c {
	case RoleCFO:
		return "Interim CFO"
	case RoleHealthcareOps:
		return "Healthcare Clinical Operations Lead"
	case RoleProjectManager:
		return "Elite Project Manager"
	default:
		return "Executive"
	}
}
