package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/schemas"
	"github.com/jonathan/exec-search/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Recover structured records from raw model output",
	Long: `Recover a profile batch or a vetting score from raw text that may wrap JSON in
commentary, fence it, truncate it or rename its fields. Parsing never fails on
malformed input; the strategy used and per-record outcomes are reported on stderr.`,
	RunE: runParse,
}

var (
	parseIn    string
	parseShape string
	parseOut   string
)

func init() {
	parseCmd.Flags().StringVarP(&parseIn, "in", "i", "-", "Raw text file, or - for stdin")
	parseCmd.Flags().StringVar(&parseShape, "shape", string(parsing.ShapeProfiles), "Target shape: profiles or score")
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Output JSON file (defaults to stdout)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	shape := parsing.Shape(parseShape)
	if shape != parsing.ShapeProfiles && shape != parsing.ShapeScore {
		return fmt.Errorf("unknown shape %q: must be %s or %s", parseShape, parsing.ShapeProfiles, parsing.ShapeScore)
	}

	_, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	raw, err := readInput(cmd, parseIn)
	if err != nil {
		return err
	}

	parser := parsing.NewParser(parsing.WithLogger(logger))
	stderr := cmd.ErrOrStderr()

	var result any
	var schema string
	if shape == parsing.ShapeProfiles {
		extraction := parser.ParseProfiles(string(raw))
		_, _ = fmt.Fprintf(stderr, "Strategy: %s\n", extraction.Strategy)
		_, _ = fmt.Fprintf(stderr, "Records: %d recovered, %d defaulted, %d dropped\n",
			extraction.Count(parsing.RecordRecovered),
			extraction.Count(parsing.RecordDefaulted),
			extraction.Count(parsing.RecordDropped))
		profiles := extraction.Profiles
		if profiles == nil {
			profiles = []types.CandidateProfile{}
		}
		result, schema = profiles, schemas.CandidateProfiles
	} else {
		extraction := parser.ParseVettingScore(string(raw))
		_, _ = fmt.Fprintf(stderr, "Strategy: %s\n", extraction.Strategy)
		_, _ = fmt.Fprintf(stderr, "Recommendation: %s (upstream %q)\n", extraction.Score.FinalRecommendation, extraction.Upstream)
		result, schema = extraction.Score, schemas.VettingScore
	}

	if err := schemas.ValidateValue(schema, result); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("parsed output does not validate against schema: %w", err)
		}
		_, _ = fmt.Fprintf(stderr, "Warning: Could not validate output against schema: %v\n", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(cmd, parseOut, append(data, '\n'))
}
