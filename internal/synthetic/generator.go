// Package synthetic generates calibrated candidate profiles for exercising the vetting pipeline.
//
// Profiles are drawn from three archetypes (golden, near-miss, red-flag) with
// ground-truth defects recorded in FlaggedIssues. Output is fully determined
// by the seed, role string, and count.
package synthetic

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/jonathan/exec-search/internal/logging"
	"github.com/jonathan/exec-search/internal/types"
)

// DefaultCount is the number of profiles generated when no count is given
const DefaultCount = 10

// DefaultSeed seeds the generator when the caller does not choose one
const DefaultSeed uint64 = 42

// Generator produces synthetic candidate profiles from a seeded random source
type Generator struct {
	fake   *gofakeit.Faker
	logger *slog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger used for diagnostic trace lines
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a generator whose output is fully determined by seed
func NewGenerator(seed uint64, opts ...Option) *Generator {
	g := &Generator{
		fake:   gofakeit.New(seed),
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns count profiles for the given role string.
// A count of zero or less yields DefaultCount profiles. Requirements text is
// carried for parity with the sourcing task contract; the templates are
// selected by role alone.
func (g *Generator) Generate(role, requirements string, count int) []types.CandidateProfile {
	if count <= 0 {
		count = DefaultCount
	}
	category := types.ClassifyRole(role)

	g.logger.Debug("generating synthetic profiles",
		slog.String("role", role),
		slog.String("category", string(category)),
		slog.Int("count", count),
		slog.Int("requirements_chars", len(requirements)))

	profiles := make([]types.CandidateProfile, 0, count)
	for i := 0; i < count; i++ {
		archetype := drawArchetype(g.fake.Float64())
		profiles = append(profiles, g.generateProfile(role, category, archetype))
	}
	return profiles
}

// GenerateJSON returns the generated profiles as an indented JSON array
func (g *Generator) GenerateJSON(role, requirements string, count int) (string, error) {
	profiles := g.Generate(role, requirements, count)
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal profiles: %w", err)
	}
	return string(data), nil
}

// generateProfile builds one profile; the order of faker calls is part of the determinism contract
func (g *Generator) generateProfile(role string, category types.RoleCategory, archetype Archetype) types.CandidateProfile {
	fake := g.fake

	id := fake.UUID()
	fullName := fake.Name()
	email := fake.Email()
	phone := fake.Phone()
	linkedIn := fmt.Sprintf("https://linkedin.com/in/%s", fake.Username())

	var experience []types.WorkExperience
	var summary string
	switch archetype {
	case ArchetypeGolden:
		experience = goldenExperience(category, fake)
		summary = goldenSummary(category)
	case ArchetypeNearMiss:
		experience = jobHopperExperience(role, fake)
		summary = nearMissSummary(role)
	default:
		experience = redFlagExperience(category, role, fake)
		summary = redFlagSummary(role)
	}

	education := []string{
		fmt.Sprintf("MBA from %s University", fake.Company()),
		fmt.Sprintf("BS in Business Administration from %s State", fake.City()),
	}

	profile := types.CandidateProfile{
		ID:            id,
		FullName:      fullName,
		LinkedInURL:   linkedIn,
		Email:         email,
		Phone:         phone,
		Summary:       summary,
		Skills:        roleSkills(category, archetype),
		Experience:    experience,
		Education:     education,
		FlaggedIssues: flaggedIssues(archetype),
	}
	profile.ResumeText = RenderResumeText(&profile)
	return profile
}

// ArchetypeOf infers the archetype a generated profile was drawn from using its ground-truth flags
func ArchetypeOf(profile *types.CandidateProfile) Archetype {
	switch len(profile.FlaggedIssues) {
	case 0:
		return ArchetypeGolden
	case 1:
		return ArchetypeNearMiss
	default:
		return ArchetypeRedFlag
	}
}
