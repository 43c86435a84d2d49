package synthetic

import (
	"fmt"

	"github.com/jonathan/exec-search/internal/types"
)

// fakeSource is the subset of the seeded faker the templates draw from
type fakeSource interface {
	Company() string
	IntRange(lo, hi int) int
}

// goldenExperience returns the fully qualified career history for a role
func goldenExperience(category types.RoleCategory, fake fakeSource) []types.WorkExperience {
	switch category {
	case types.RoleCFO:
		return []types.WorkExperience{
			{
				Title:       "Interim CFO",
				Company:     fake.Company(),
				StartDate:   "2022-01-01",
				EndDate:     types.PresentEndDate,
				Description: "Led finance transformation for $50M+ ARR SaaS company. Implemented ASC 606 revenue recognition automation using Maxio.",
				KeyAchievements: []string{
					"Implemented ASC 606 compliance across all revenue streams",
					"Led IPO readiness preparation",
					"Reduced monthly close time from 15 to 5 days",
					"Managed Big 4 audit relationships",
				},
			},
			{
				Title:       "VP Finance",
				Company:     fake.Company(),
				StartDate:   "2018-06-01",
				EndDate:     "2021-12-31",
				Description: "Built finance function from ground up for Series B SaaS startup.",
				KeyAchievements: []string{
					"Established GAAP-compliant financial reporting",
					"Implemented Zuora billing system",
					"Achieved 95% NRR",
				},
			},
			{
				Title:       "Senior Manager",
				Company:     "Big 4 Accounting Firm",
				StartDate:   "2013-01-01",
				EndDate:     "2018-05-31",
				Description: "Audited SaaS and technology companies.",
				KeyAchievements: []string{
					"Led ASC 606 implementation projects",
					"Managed audit teams of 5-10 professionals",
				},
			},
		}
	case types.RoleHealthcareOps:
		return []types.WorkExperience{
			{
				Title:       "Interim Clinical Operations Lead",
				Company:     fake.Company() + " Hospital",
				StartDate:   "2021-03-01",
				EndDate:     types.PresentEndDate,
				Description: "Led clinical operations transformation for 300-bed hospital.",
				KeyAchievements: []string{
					"Reduced ED wait times by 25%",
					"Implemented Epic EMR optimization",
					"Achieved JCAHO survey readiness",
					"Reduced contract labor costs by 30%",
				},
			},
			{
				Title:       "Director of Clinical Operations",
				Company:     fake.Company() + " Health System",
				StartDate:   "2017-01-01",
				EndDate:     "2021-02-28",
				Description: "Managed clinical throughput and patient flow.",
				KeyAchievements: []string{
					"Reduced LOS by 15%",
					"Improved CMS star rating from 3 to 4",
					"Optimized staffing grid",
				},
			},
		}
	case types.RoleProjectManager:
		return []types.WorkExperience{
			{
				Title:       "Senior Project Manager",
				Company:     fake.Company(),
				StartDate:   "2020-01-01",
				EndDate:     types.PresentEndDate,
				Description: "Led enterprise digital transformation projects.",
				KeyAchievements: []string{
					"Delivered $5M project on-time and on-budget",
					"Managed C-level steering committee",
					"PMP certified, SAFe 5.0 certified",
					"Reduced project risk by 40%",
				},
			},
		}
	default:
		return []types.WorkExperience{
			{
				Title:       "Interim Chief Operating Officer",
				Company:     fake.Company(),
				StartDate:   "2021-01-01",
				EndDate:     types.PresentEndDate,
				Description: "Led operating model redesign for a $200M multi-site services business.",
				KeyAchievements: []string{
					"Owned a $200M P&L through a turnaround",
					"Delivered 12% EBITDA margin improvement",
					"Built monthly board reporting cadence",
				},
			},
			{
				Title:       "VP Operations",
				Company:     fake.Company(),
				StartDate:   "2015-04-01",
				EndDate:     "2020-12-31",
				Description: "Scaled operations through two acquisitions.",
				KeyAchievements: []string{
					"Led M&A integration of two acquired companies",
					"Ran change management program across 1,200 staff",
				},
			},
		}
	}
}

// jobHopperExperience returns four short contract stints within five years
func jobHopperExperience(role string, fake fakeSource) []types.WorkExperience {
	const baseYear = 2020
	experiences := make([]types.WorkExperience, 0, 4)
	for i := 0; i < 4; i++ {
		startMonth := fake.IntRange(1, 6)
		endMonth := fake.IntRange(7, 12)
		company := fake.Company()
		client := fake.Company()
		experiences = append(experiences, types.WorkExperience{
			Title:           fmt.Sprintf("%s (Contract)", role),
			Company:         company,
			StartDate:       fmt.Sprintf("%d-%02d-01", baseYear+i, startMonth),
			EndDate:         fmt.Sprintf("%d-%02d-28", baseYear+i, endMonth),
			Description:     fmt.Sprintf("Contract role at %s.", client),
			KeyAchievements: []string{"Completed assigned projects"},
		})
	}
	return experiences
}

// redFlagExperience returns a history with hard defects: overlapping
// employment dates, and cash-basis accounting for the finance rubric
func redFlagExperience(category types.RoleCategory, role string, fake fakeSource) []types.WorkExperience {
	if category == types.RoleCFO {
		return []types.WorkExperience{
			{
				Title:           "CFO",
				Company:         fake.Company(),
				StartDate:       "2020-01-01",
				EndDate:         "2022-06-30",
				Description:     "Managed finance using cash-basis accounting for $10M ARR SaaS company.",
				KeyAchievements: []string{"Maintained cash flow", "Managed vendor relationships"},
			},
			{
				Title:           "VP Finance",
				Company:         fake.Company(),
				StartDate:       "2021-12-01",
				EndDate:         "2023-12-31",
				Description:     "Finance leadership role.",
				KeyAchievements: []string{"Led finance team"},
			},
		}
	}

	return []types.WorkExperience{
		{
			Title:           role,
			Company:         fake.Company(),
			StartDate:       "2020-01-01",
			EndDate:         "2020-06-30",
			Description:     "Brief role.",
			KeyAchievements: []string{},
		},
		{
			Title:           "Independent Consultant",
			Company:         fake.Company(),
			StartDate:       "2020-03-01",
			EndDate:         "2021-02-28",
			Description:     "Advisory engagements.",
			KeyAchievements: []string{},
		},
	}
}

func goldenSummary(category types.RoleCategory) string {
	switch category {
	case types.RoleCFO:
		return "Results-driven Interim CFO with 15+ years of experience in SaaS finance. " +
			"Expert in ASC 606 revenue recognition, IPO readiness, and Big 4 audit management. " +
			"Proven track record of scaling finance functions for high-growth companies."
	case types.RoleHealthcareOps:
		return "Healthcare operations executive with 12+ years optimizing clinical throughput. " +
			"Expert in Epic/Cerner EMR systems, JCAHO compliance, and value-based care models. " +
			"Track record of reducing LOS and improving CMS ratings."
	case types.RoleProjectManager:
		return "PMP-certified project manager with 10+ years delivering complex enterprise projects. " +
			"Expert in Agile, Waterfall, and SAFe methodologies. " +
			"Consistent track record of on-time, on-budget delivery."
	default:
		return "Transformational operating executive with 15+ years of P&L ownership. " +
			"Expert in turnarounds, M&A integration, and board reporting. " +
			"Track record of measurable margin improvement."
	}
}

func nearMissSummary(role string) string {
	return fmt.Sprintf("Experienced %s with diverse background across multiple industries. "+
		"Strong track record of delivering results in fast-paced environments.", role)
}

func redFlagSummary(role string) string {
	return fmt.Sprintf("%s with experience in various roles. "+
		"Adaptable professional seeking new opportunities.", role)
}

// roleSkills returns the skill list for a role graded by archetype
func roleSkills(category types.RoleCategory, archetype Archetype) []string {
	var base, golden, nearMiss, redFlag []string

	switch category {
	case types.RoleCFO:
		base = []string{"Financial Analysis", "GAAP", "Financial Reporting"}
		golden = []string{"ASC 606", "Revenue Recognition", "IPO Readiness", "Maxio", "Zuora", "Big 4 Audit"}
		nearMiss = []string{"Budget Management"}
		redFlag = []string{"Cash Basis Accounting", "QuickBooks"}
	case types.RoleHealthcareOps:
		base = []string{"Clinical Operations", "Patient Care"}
		golden = []string{"Epic EMR", "Cerner", "JCAHO", "CMS Compliance", "Throughput Optimization"}
	case types.RoleProjectManager:
		base = []string{"Project Management", "Stakeholder Management"}
		golden = []string{"PMP", "SAFe", "Agile", "Budget Control", "Risk Management"}
	default:
		base = []string{"Executive Leadership", "Strategic Planning"}
		golden = []string{"P&L Ownership", "Board Reporting", "M&A Integration", "Change Management"}
	}

	skills := append([]string{}, base...)
	switch archetype {
	case ArchetypeGolden:
		skills = append(skills, golden...)
	case ArchetypeNearMiss:
		skills = append(skills, nearMiss...)
	case ArchetypeRedFlag:
		skills = append(skills, redFlag...)
	}
	return skills
}

// flaggedIssues returns the ground-truth defects embedded by an archetype
func flaggedIssues(archetype Archetype) []string {
	switch archetype {
	case ArchetypeNearMiss:
		return []string{"Multiple short tenures"}
	case ArchetypeRedFlag:
		return []string{"Timeline inconsistencies", "Compliance concerns"}
	default:
		return nil
	}
}
