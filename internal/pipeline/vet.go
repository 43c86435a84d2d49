package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/exec-search/internal/agents"
	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/types"
)

// Vet scores the first MaxVetting candidates of the pool. Calls run on at most
// Concurrency workers; the vetted list keeps pool order. A candidate whose
// executor call fails receives the degraded placeholder score. Only context
// cancellation is returned as an error.
func Vet(ctx context.Context, state types.SearchState, exec agents.Executor, opts *Options) (types.SearchState, error) {
	opts = opts.withDefaults()
	next := cloneState(state)
	next.Status = types.StatusVetting

	toVet := next.CandidatePool
	if len(toVet) > opts.MaxVetting {
		toVet = toVet[:opts.MaxVetting]
	}
	opts.Logger.Info("vetting candidates", slog.Int("selected", len(toVet)), slog.Int("pool", len(next.CandidatePool)))

	vetted := make([]types.Candidate, len(toVet))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, candidate := range toVet {
		g.Go(func() error {
			if i >= opts.Concurrency {
				if err := pace(gctx, opts.PaceDelay); err != nil {
					return err
				}
			}
			opts.emitProgress("vet", types.StatusVetting, "vetting "+candidate.Name, i)
			vetted[i] = vetCandidate(gctx, next, candidate, exec, opts)
			if opts.Observer != nil {
				opts.Observer.ObserveVetted(&vetted[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return next, err
	}
	if err := ctx.Err(); err != nil {
		return next, err
	}
	next.VettedCandidates = vetted
	return next, nil
}

func vetCandidate(ctx context.Context, state types.SearchState, candidate types.Candidate, exec agents.Executor, opts *Options) types.Candidate {
	raw, err := exec.Vet(ctx, agents.VettingTask{
		CandidateID:  candidate.ID,
		Name:         candidate.Name,
		Resume:       candidate.ResumeText,
		Profile:      candidate.Profile,
		RoleTitle:    state.RoleTitle,
		Category:     state.RoleCategory,
		Requirements: state.ClientRequirements,
	})
	if err != nil {
		opts.Logger.Warn("vetting failed, using placeholder score",
			slog.String("candidate", candidate.Name),
			slog.String("error", err.Error()))
		return candidate.ApplyScore(parsing.EnforceRecommendation(agents.DegradedScore()))
	}

	extraction := opts.Parser.ParseVettingScore(raw)
	opts.Logger.Debug("vetting score recovered",
		slog.String("candidate", candidate.Name),
		slog.String("strategy", string(extraction.Strategy)),
		slog.String("final", string(extraction.Score.FinalRecommendation)))
	return candidate.ApplyScore(extraction.Score)
}

// pace waits d unless ctx ends first
func pace(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
