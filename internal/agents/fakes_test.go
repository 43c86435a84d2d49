package agents

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/exec-search/internal/llm"
)

// scriptedExecutor fails the first failures calls of each stage with err
type scriptedExecutor struct {
	mu       sync.Mutex
	failures int
	err      error
	response string
	calls    map[Stage]int
}

func newScriptedExecutor(failures int, err error, response string) *scriptedExecutor {
	return &scriptedExecutor{failures: failures, err: err, response: response, calls: map[Stage]int{}}
}

func (s *scriptedExecutor) call(stage Stage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[stage]++
	if s.calls[stage] <= s.failures {
		return "", s.err
	}
	return s.response, nil
}

func (s *scriptedExecutor) Source(_ context.Context, _ SourcingTask) (string, error) {
	return s.call(StageSourcing)
}

func (s *scriptedExecutor) Vet(_ context.Context, _ VettingTask) (string, error) {
	return s.call(StageVetting)
}

func (s *scriptedExecutor) count(stage Stage) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[stage]
}

type recordingObserver struct {
	mu     sync.Mutex
	ok     int
	failed int
}

func (r *recordingObserver) ObserveAttempt(_ Stage, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failed++
		return
	}
	r.ok++
}

type fakeClient struct {
	text     string
	err      error
	requests []llm.Request
	closed   bool
}

func (f *fakeClient) Generate(_ context.Context, req llm.Request) (llm.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Text: f.text, Model: "fake"}, nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}
