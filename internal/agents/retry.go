package agents

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/jonathan/exec-search/internal/llm"
	"github.com/jonathan/exec-search/internal/logging"
)

const (
	// DefaultAttempts is the total number of calls made before giving up
	DefaultAttempts = 3
	// DefaultBaseDelay is scaled by 2^attempt before each retry
	DefaultBaseDelay = 5 * time.Second
)

// RetryPolicy bounds the retries of one executor call
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

// DefaultRetryPolicy returns three attempts with a 5s base delay
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: DefaultAttempts, BaseDelay: DefaultBaseDelay}
}

// AttemptObserver is notified after every executor call
type AttemptObserver interface {
	ObserveAttempt(stage Stage, elapsed time.Duration, err error)
}

// RetryingExecutor retries failed calls of a delegate with exponential backoff.
// Errors the model provider reports as permanent are not retried.
type RetryingExecutor struct {
	delegate Executor
	policy   RetryPolicy
	observer AttemptObserver
	logger   *slog.Logger
}

// NewRetryingExecutor wraps delegate. A nil observer is allowed.
func NewRetryingExecutor(delegate Executor, policy RetryPolicy, observer AttemptObserver, logger *slog.Logger) *RetryingExecutor {
	if policy.Attempts <= 0 {
		policy.Attempts = DefaultAttempts
	}
	if policy.BaseDelay < 0 {
		policy.BaseDelay = 0
	}
	return &RetryingExecutor{
		delegate: delegate,
		policy:   policy,
		observer: observer,
		logger:   logging.Named(logging.OrNop(logger), "retry"),
	}
}

// Source retries the delegate's sourcing call
func (r *RetryingExecutor) Source(ctx context.Context, task SourcingTask) (string, error) {
	return r.do(ctx, StageSourcing, func() (string, error) {
		return r.delegate.Source(ctx, task)
	})
}

// Vet retries the delegate's vetting call
func (r *RetryingExecutor) Vet(ctx context.Context, task VettingTask) (string, error) {
	return r.do(ctx, StageVetting, func() (string, error) {
		return r.delegate.Vet(ctx, task)
	})
}

func (r *RetryingExecutor) do(ctx context.Context, stage Stage, call func() (string, error)) (string, error) {
	attempt := 0
	operation := func() (string, error) {
		attempt++
		start := time.Now()
		out, err := call()
		if r.observer != nil {
			r.observer.ObserveAttempt(stage, time.Since(start), err)
		}
		if err != nil && llm.IsPermanent(err) {
			return "", backoff.Permanent(err)
		}
		return out, err
	}

	notify := func(err error, wait time.Duration) {
		r.logger.Warn("executor call failed, retrying",
			slog.String("stage", string(stage)),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()))
	}

	out, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(r.schedule()),
		backoff.WithMaxTries(uint(r.policy.Attempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify))
	if err != nil {
		return "", &ExecutorError{Stage: stage, Message: "retries exhausted", Cause: err}
	}
	return out, nil
}

// schedule waits BaseDelay*2 before the second attempt, BaseDelay*4 before the third, and so on
func (r *RetryingExecutor) schedule() backoff.BackOff {
	if r.policy.BaseDelay == 0 {
		return &backoff.ZeroBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * r.policy.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = r.policy.BaseDelay << uint(r.policy.Attempts)
	return b
}
