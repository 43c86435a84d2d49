// Package main provides the search_agent CLI, an executive-search pipeline that
// sources, vets and ranks candidates.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "search_agent",
	Short: "Executive search pipeline",
	Long: `search_agent simulates an executive-search workflow: it sources a candidate pool,
vets each candidate against a role rubric and emits a ranked markdown report.

Candidates come from a deterministic synthetic generator (offline, the default) or
from a Gemini model when offline is disabled and GEMINI_API_KEY is set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (defaults to $SEARCH_AGENT_CONFIG)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
