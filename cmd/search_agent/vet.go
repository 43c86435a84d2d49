package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/exec-search/internal/metrics"
	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/pipeline"
	"github.com/jonathan/exec-search/internal/types"
)

var vetCmd = &cobra.Command{
	Use:   "vet",
	Short: "Vet a single resume against a role rubric",
	Long: `Send one plain-text resume through the vetting executor and print the scored
candidate as JSON. Executor failures yield the degraded placeholder score.`,
	RunE: runVet,
}

var (
	vetResume       string
	vetRole         string
	vetRequirements string
	vetName         string
	vetOut          string
)

func init() {
	vetCmd.Flags().StringVar(&vetResume, "resume", "", "Plain-text resume file, or - for stdin (required)")
	vetCmd.Flags().StringVarP(&vetRole, "role", "r", "", "Role title, e.g. \"Interim CFO\" (required)")
	vetCmd.Flags().StringVar(&vetRequirements, "requirements", "", "Free-text client requirements, e.g. \"$50M SaaS, ASC 606\"")
	vetCmd.Flags().StringVar(&vetName, "name", "", "Candidate name (defaults to the resume header)")
	vetCmd.Flags().StringVarP(&vetOut, "out", "o", "", "Output JSON file (defaults to stdout)")
	vetCmd.Flags().Bool("offline", true, "Use the deterministic offline executor")
	_ = vetCmd.MarkFlagRequired("resume")
	_ = vetCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(vetCmd)
}

func runVet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	resume, err := readInput(cmd, vetResume)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(resume)) == "" {
		return fmt.Errorf("resume is empty")
	}

	manager := metrics.NewManager()
	base, closeExecutor, err := buildExecutor(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeExecutor() }()
	exec, err := withResilience(base, cfg, manager, logger)
	if err != nil {
		return err
	}

	state := pipeline.Analyze(types.NewSearchState(uuid.NewString(), searchQuery(vetRole, vetRequirements)))
	name := vetName
	if name == "" {
		name = resumeName(string(resume))
	}
	state.CandidatePool = []types.Candidate{
		types.NewCandidate(uuid.NewString()[:8], name, string(resume), pipeline.CandidateRole(state.Query), nil),
	}

	vetted, err := pipeline.Vet(ctx, state, exec, &pipeline.Options{
		MaxVetting: 1,
		PaceDelay:  -1,
		Parser:     parsing.NewParser(parsing.WithLogger(logger), parsing.WithObserver(manager)),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("vetting interrupted: %w", err)
	}

	candidate := vetted.VettedCandidates[0]
	data, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (mean %.1f)\n", candidate.Name, candidate.FinalFit, candidate.MeanScore())
	return writeOutput(cmd, vetOut, append(data, '\n'))
}

// resumeName takes the candidate name from the resume header line
func resumeName(resume string) string {
	for _, line := range strings.Split(resume, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if name := strings.TrimSpace(strings.TrimPrefix(line, types.ResumeSentinel)); name != "" {
			return name
		}
	}
	return "Candidate"
}

// searchQuery joins a role and its requirements the way queries are written, "<role> - <requirements>"
func searchQuery(role, requirements string) string {
	role = strings.TrimSpace(role)
	requirements = strings.TrimSpace(requirements)
	switch {
	case requirements == "":
		return role
	case role == "":
		return requirements
	default:
		return role + " - " + requirements
	}
}
