package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/exec-search/internal/schemas"
	"github.com/jonathan/exec-search/internal/synthetic"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic candidate pool as JSON",
	Long: `Generate a deterministic pool of synthetic candidate profiles for a role.

Each profile is drawn as golden (30%), near-miss (40%) or red-flag (30%). The same
seed, role and count always produce byte-identical output.`,
	RunE: runGenerate,
}

var (
	generateRole         string
	generateRequirements string
	generateCount        int
	generateSeed         uint64
	generateOut          string
)

func init() {
	generateCmd.Flags().StringVarP(&generateRole, "role", "r", "", "Role title, e.g. \"Interim CFO\" (required)")
	generateCmd.Flags().StringVar(&generateRequirements, "requirements", "", "Free-text client requirements")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 0, "Number of profiles (defaults to pool_size)")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "Random seed (defaults to the configured seed)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output JSON file (defaults to stdout)")
	_ = generateCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if cmd.Flags().Changed("seed") {
		seed = generateSeed
	}
	count := generateCount
	if count <= 0 {
		count = cfg.PoolSize
	}

	generator := synthetic.NewGenerator(seed, synthetic.WithLogger(logger))
	profiles := generator.Generate(generateRole, generateRequirements, count)
	if err := schemas.ValidateValue(schemas.CandidateProfiles, profiles); err != nil {
		return fmt.Errorf("generated profiles do not validate against schema: %w", err)
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}
	if err := writeOutput(cmd, generateOut, append(data, '\n')); err != nil {
		return err
	}
	if generateOut != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Generated %d profiles\nOutput: %s\n", len(profiles), generateOut)
	}
	return nil
}
