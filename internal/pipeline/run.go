package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/exec-search/internal/agents"
	"github.com/jonathan/exec-search/internal/types"
)

// Run drives a query through Analyze, Source, Vet and Report.
// A sourcing failure leaves an empty pool and the run continues to an empty report.
func Run(ctx context.Context, query string, exec agents.Executor, opts *Options) (types.SearchState, error) {
	opts = opts.withDefaults()
	printer := opts.printer()
	state := types.NewSearchState(uuid.NewString(), query)

	// Step 1: Analyze requirements
	fmt.Fprintf(opts.Out, "Step 1/4: Analyzing requirements for: %s...\n", query)
	state = Analyze(state)
	opts.emitProgress("analyze", state.Status, "requirements analyzed", state.ClientRequirements)
	if printer != nil {
		printer.PrintRequirements(&state)
	}
	persist(ctx, opts, "create search", func(store Store) error { return store.CreateSearch(ctx, &state) })

	// Step 2: Source candidates
	fmt.Fprintf(opts.Out, "Step 2/4: Sourcing candidates...\n")
	sourced, extraction, err := Source(ctx, state, exec, opts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sourced, ctxErr
		}
		fmt.Fprintf(opts.Out, "Warning: Sourcing failed: %v\n", err)
		fmt.Fprintf(opts.Out, "Continuing with an empty candidate pool...\n")
		opts.Logger.Warn("sourcing failed", slog.String("error", err.Error()))
	}
	state = sourced
	opts.emitProgress("source", state.Status, fmt.Sprintf("sourced %d candidates", len(state.CandidatePool)), extraction.Strategy)
	if printer != nil && err == nil {
		printer.PrintExtraction(&extraction)
		printer.PrintCandidatePool(state.CandidatePool)
	}

	// Step 3: Vet candidates
	fmt.Fprintf(opts.Out, "Step 3/4: Vetting up to %d of %d candidates...\n", opts.MaxVetting, len(state.CandidatePool))
	state, err = Vet(ctx, state, exec, opts)
	if err != nil {
		return state, fmt.Errorf("vetting interrupted: %w", err)
	}
	opts.emitProgress("vet", state.Status, fmt.Sprintf("vetted %d candidates", len(state.VettedCandidates)), nil)
	if printer != nil {
		printer.PrintVettingResults(state.VettedCandidates)
	}
	persist(ctx, opts, "save candidates", func(store Store) error {
		return store.SaveCandidates(ctx, state.ID, state.VettedCandidates)
	})

	// Step 4: Report
	fmt.Fprintf(opts.Out, "Step 4/4: Generating final report...\n")
	state, err = Report(state)
	if err != nil {
		return state, fmt.Errorf("report generation failed: %w", err)
	}
	opts.emitProgress("report", state.Status, "report generated", nil)
	persist(ctx, opts, "complete search", func(store Store) error { return store.CompleteSearch(ctx, &state) })

	return state, nil
}

// persist runs op against the store when one is configured; failures are reported, not returned
func persist(ctx context.Context, opts *Options, what string, op func(Store) error) {
	if opts.Store == nil || ctx.Err() != nil {
		return
	}
	if err := op(opts.Store); err != nil {
		fmt.Fprintf(opts.Out, "Warning: Failed to %s in database: %v\n", what, err)
		opts.Logger.Warn("persistence failed", slog.String("op", what), slog.String("error", err.Error()))
	}
}
