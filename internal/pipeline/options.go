package pipeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jonathan/exec-search/internal/logging"
	"github.com/jonathan/exec-search/internal/observability"
	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/synthetic"
	"github.com/jonathan/exec-search/internal/types"
)

const (
	// DefaultMaxVetting caps the candidates sent for vetting
	DefaultMaxVetting = 5
	// DefaultPaceDelay separates consecutive vetting calls
	DefaultPaceDelay = 5 * time.Second
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string             `json:"step"`
	Status  types.SearchStatus `json:"status"`
	Message string             `json:"message"`
	Content any                `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// VettingObserver is told about every vetted candidate
type VettingObserver interface {
	ObserveVetted(candidate *types.Candidate)
}

// Store persists search runs
type Store interface {
	CreateSearch(ctx context.Context, state *types.SearchState) error
	SaveCandidates(ctx context.Context, searchID string, vetted []types.Candidate) error
	CompleteSearch(ctx context.Context, state *types.SearchState) error
}

// Options holds configuration for running the pipeline.
// The zero value is usable; unset fields take defaults.
type Options struct {
	PoolSize    int
	MaxVetting  int
	Concurrency int
	// PaceDelay precedes every vetting call after the first Concurrency calls.
	// Negative values disable pacing.
	PaceDelay time.Duration

	Parser     *parsing.Parser
	Observer   VettingObserver
	Store      Store
	Logger     *slog.Logger
	Out        io.Writer
	Verbose    bool
	// OnProgress may be called from several goroutines when Concurrency > 1
	OnProgress ProgressCallback

	resolved bool
}

func (o *Options) withDefaults() *Options {
	if o != nil && o.resolved {
		return o
	}
	var opts Options
	if o != nil {
		opts = *o
	}
	opts.resolved = true
	if opts.PoolSize <= 0 {
		opts.PoolSize = synthetic.DefaultCount
	}
	if opts.MaxVetting <= 0 {
		opts.MaxVetting = DefaultMaxVetting
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.PaceDelay == 0 {
		opts.PaceDelay = DefaultPaceDelay
	}
	if opts.PaceDelay < 0 {
		opts.PaceDelay = 0
	}
	opts.Logger = logging.Named(logging.OrNop(opts.Logger), "pipeline")
	if opts.Parser == nil {
		opts.Parser = parsing.NewParser(parsing.WithLogger(opts.Logger))
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &opts
}

func (o *Options) printer() *observability.Printer {
	if !o.Verbose {
		return nil
	}
	return observability.NewPrinter(o.Out)
}

// emitProgress calls the progress callback if configured
func (o *Options) emitProgress(step string, status types.SearchStatus, message string, content any) {
	if o.OnProgress != nil {
		o.OnProgress(ProgressEvent{
			Step:    step,
			Status:  status,
			Message: message,
			Content: content,
		})
	}
}
