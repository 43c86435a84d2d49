package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/exec-search/internal/logging"
	"github.com/jonathan/exec-search/internal/prompts"
	"github.com/jonathan/exec-search/internal/ranking"
	"github.com/jonathan/exec-search/internal/synthetic"
)

// SyntheticExecutor answers tasks offline: sourcing draws from the synthetic
// generator and vetting runs the deterministic forensic audit.
type SyntheticExecutor struct {
	mu        sync.Mutex
	generator *synthetic.Generator
	auditor   *ranking.Auditor
	chatty    bool
	logger    *slog.Logger
}

// SyntheticOption configures a SyntheticExecutor
type SyntheticOption func(*syntheticSettings)

type syntheticSettings struct {
	asOf   time.Time
	chatty bool
	logger *slog.Logger
}

// WithAuditDate sets the date ongoing stints are resolved against
func WithAuditDate(asOf time.Time) SyntheticOption {
	return func(s *syntheticSettings) { s.asOf = asOf }
}

// WithChattyOutput wraps responses in commentary and a fenced json block,
// the way a conversational model tends to answer.
func WithChattyOutput(chatty bool) SyntheticOption {
	return func(s *syntheticSettings) { s.chatty = chatty }
}

// WithSyntheticLogger sets the logger
func WithSyntheticLogger(logger *slog.Logger) SyntheticOption {
	return func(s *syntheticSettings) { s.logger = logger }
}

// NewSyntheticExecutor creates an offline executor seeded with seed
func NewSyntheticExecutor(seed uint64, opts ...SyntheticOption) *SyntheticExecutor {
	settings := syntheticSettings{asOf: time.Now().UTC()}
	for _, opt := range opts {
		opt(&settings)
	}
	logger := logging.Named(logging.OrNop(settings.logger), "synthetic-executor")
	return &SyntheticExecutor{
		generator: synthetic.NewGenerator(seed, synthetic.WithLogger(logger)),
		auditor:   ranking.NewAuditor(settings.asOf),
		chatty:    settings.chatty,
		logger:    logger,
	}
}

// Source returns a JSON array of generated profiles
func (e *SyntheticExecutor) Source(ctx context.Context, task SourcingTask) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ExecutorError{Stage: StageSourcing, Message: "context done", Cause: err}
	}
	role := task.RoleTitle
	if role == "" {
		role = task.Query
	}

	// the generator's random source is not safe for concurrent use
	e.mu.Lock()
	out, err := e.generator.GenerateJSON(role, RequirementsJSON(task.Requirements), task.Count)
	e.mu.Unlock()
	if err != nil {
		return "", &ExecutorError{Stage: StageSourcing, Message: "failed to generate profiles", Cause: err}
	}

	e.logger.Debug("sourced synthetic pool", slog.String("role", role), slog.Int("chars", len(out)))
	if e.chatty {
		return fmt.Sprintf("Here are the candidate profiles for the %s search.\n\n```json\n%s\n```\n\nLet me know if you need more candidates.", role, out), nil
	}
	return out, nil
}

// Vet returns a vetting score JSON object computed by the forensic audit
func (e *SyntheticExecutor) Vet(ctx context.Context, task VettingTask) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ExecutorError{Stage: StageVetting, Message: "context done", Cause: err}
	}
	keywords, err := prompts.RubricKeywords(task.Category)
	if err != nil {
		return "", &ExecutorError{Stage: StageVetting, Message: "failed to load rubric keywords", Cause: err}
	}

	report := e.auditor.Audit(task.Profile, task.Resume, keywords)
	data, err := json.MarshalIndent(report.Score, "", "  ")
	if err != nil {
		return "", &ExecutorError{Stage: StageVetting, Message: "failed to marshal score", Cause: err}
	}

	e.logger.Debug("audited candidate",
		slog.String("candidate", task.CandidateID),
		slog.Int("findings", len(report.Findings)),
		slog.Float64("coverage", report.Coverage))
	if e.chatty {
		return fmt.Sprintf("The tribunal has reached a verdict on %s.\n\n```json\n%s\n```", task.Name, data), nil
	}
	return string(data), nil
}
