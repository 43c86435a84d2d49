package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/exec-search/internal/config"
	"github.com/jonathan/exec-search/internal/db"
	"github.com/jonathan/exec-search/internal/metrics"
	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/pipeline"
	"github.com/jonathan/exec-search/internal/rendering"
	"github.com/jonathan/exec-search/internal/schemas"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run the full search pipeline end-to-end",
	Long: `Runs the search pipeline: analyze -> source -> vet -> report.

The query is either given as arguments, e.g. "Interim CFO - $50M SaaS, ASC 606", or
assembled from --role and --requirements. The ranked markdown report is printed to
stdout and optionally written to --out.`,
	RunE: runSearch,
}

var (
	searchRole         string
	searchRequirements string
	searchOut          string
	searchJSON         string
	searchMetrics      bool
	searchVerbose      bool
	searchPoolSize     int
	searchMaxVetting   int
	searchPlain        bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchRole, "role", "r", "", "Role title, e.g. \"Interim CFO\"")
	searchCmd.Flags().StringVar(&searchRequirements, "requirements", "", "Free-text client requirements")
	searchCmd.Flags().Bool("offline", true, "Use the deterministic offline executor instead of Gemini")
	searchCmd.Flags().StringVarP(&searchOut, "out", "o", "", "Write the markdown report to this file")
	searchCmd.Flags().StringVar(&searchJSON, "json", "", "Write the final search state as JSON to this file")
	searchCmd.Flags().BoolVar(&searchMetrics, "metrics", false, "Print a metrics snapshot after the run")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print detailed stage output")
	searchCmd.Flags().IntVar(&searchPoolSize, "pool-size", 0, "Candidates to source (defaults to pool_size)")
	searchCmd.Flags().IntVar(&searchMaxVetting, "max-vetting", 0, "Candidates to vet (defaults to max_vetting)")
	searchCmd.Flags().BoolVar(&searchPlain, "plain", false, "Print the report as raw markdown even on a terminal")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		query = searchQuery(searchRole, searchRequirements)
	}
	if query == "" {
		return fmt.Errorf("a query or --role must be provided")
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
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

	opts := &pipeline.Options{
		PoolSize:    firstPositive(searchPoolSize, cfg.PoolSize),
		MaxVetting:  firstPositive(searchMaxVetting, cfg.MaxVetting),
		Concurrency: cfg.VetConcurrency,
		PaceDelay:   paceDelay(cfg),
		Parser:      parsing.NewParser(parsing.WithLogger(logger), parsing.WithObserver(manager)),
		Observer:    manager,
		Logger:      logger,
		Out:         cmd.OutOrStdout(),
		Verbose:     searchVerbose || cfg.Verbose,
	}

	if store := openStore(ctx, cmd, cfg, logger); store != nil {
		defer store.Close()
		opts.Store = store
	}

	state, err := pipeline.Run(ctx, query, exec, opts)
	if err != nil {
		return err
	}

	if err := printReport(cmd, state.FinalReport); err != nil {
		return err
	}
	if searchOut != "" {
		if err := writeOutput(cmd, searchOut, []byte(state.FinalReport)); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\n", searchOut)
	}
	if searchJSON != "" {
		if err := schemas.ValidateValue(schemas.SearchState, state); err != nil {
			return fmt.Errorf("search state does not validate against schema: %w", err)
		}
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal search state: %w", err)
		}
		if err := writeOutput(cmd, searchJSON, append(data, '\n')); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "State: %s\n", searchJSON)
	}
	if searchMetrics {
		snapshot, err := manager.Snapshot()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nMetrics:\n%s\n", snapshot)
	}
	return nil
}

// openStore connects to the configured database; persistence is optional so failures only warn
func openStore(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) *db.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to connect to database, results will not be saved: %v\n", err)
		return nil
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to prepare database schema, results will not be saved: %v\n", err)
		return nil
	}
	logger.Info("persisting search runs")
	return database
}

// printReport writes the report, styled when stdout is a terminal
func printReport(cmd *cobra.Command, report string) error {
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && !searchPlain && rendering.IsTerminal(f) {
		styled, err := rendering.RenderTerminal(report, rendering.TerminalWidth(f), true)
		if err != nil {
			return err
		}
		report = styled
	}
	_, _ = fmt.Fprintf(out, "\n%s\n", report)
	return nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
