package agents

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/jonathan/exec-search/internal/llm"
	"github.com/jonathan/exec-search/internal/logging"
	"github.com/jonathan/exec-search/internal/prompts"
	"github.com/jonathan/exec-search/internal/synthetic"
)

// LLMExecutor fulfils tasks by prompting a language model
type LLMExecutor struct {
	client llm.Client
	logger *slog.Logger
}

// NewLLMExecutor creates an executor backed by client
func NewLLMExecutor(client llm.Client, logger *slog.Logger) *LLMExecutor {
	return &LLMExecutor{
		client: client,
		logger: logging.Named(logging.OrNop(logger), "llm-executor"),
	}
}

// Source prompts for a JSON array of candidate profiles
func (e *LLMExecutor) Source(ctx context.Context, task SourcingTask) (string, error) {
	template, err := prompts.Get(prompts.SourcingFile, prompts.SourceCandidateKey)
	if err != nil {
		return "", &ExecutorError{Stage: StageSourcing, Message: "failed to load prompt", Cause: err}
	}
	count := task.Count
	if count <= 0 {
		count = synthetic.DefaultCount
	}
	prompt := prompts.Format(template, map[string]string{
		"Count":        strconv.Itoa(count),
		"Query":        task.Query,
		"Requirements": RequirementsJSON(task.Requirements),
	})

	// Sourcing output is often long; a truncated response still goes to the parser
	resp, err := e.client.Generate(ctx, llm.Request{Prompt: prompt, Tier: llm.TierStandard})
	if err != nil {
		return "", &ExecutorError{Stage: StageSourcing, Message: "model call failed", Cause: err}
	}
	if resp.Truncated {
		e.logger.Warn("sourcing response truncated", slog.String("model", resp.Model), slog.Int("chars", len(resp.Text)))
	}
	return resp.Text, nil
}

// Vet prompts the three-reviewer tribunal for a score object
func (e *LLMExecutor) Vet(ctx context.Context, task VettingTask) (string, error) {
	template, err := prompts.Get(prompts.VettingFile, prompts.VetCandidateKey)
	if err != nil {
		return "", &ExecutorError{Stage: StageVetting, Message: "failed to load prompt", Cause: err}
	}
	rubric, err := prompts.Rubric(task.Category)
	if err != nil {
		return "", &ExecutorError{Stage: StageVetting, Message: "failed to load rubric", Cause: err}
	}
	role := task.RoleTitle
	if role == "" {
		role = task.Category.CanonicalTitle()
	}
	prompt := prompts.Format(template, map[string]string{
		"Role":         role,
		"Rubric":       rubric,
		"Requirements": RequirementsJSON(task.Requirements),
		"Resume":       task.Resume,
	})

	resp, err := e.client.Generate(ctx, llm.Request{Prompt: prompt, Tier: llm.TierAdvanced, JSON: true})
	if err != nil {
		return "", &ExecutorError{Stage: StageVetting, Message: "model call failed", Cause: err}
	}
	if resp.Truncated {
		e.logger.Warn("vetting response truncated", slog.String("candidate", task.CandidateID))
	}
	return resp.Text, nil
}

// Close releases the underlying client
func (e *LLMExecutor) Close() error {
	return e.client.Close()
}
