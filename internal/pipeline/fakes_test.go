package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonathan/exec-search/internal/agents"
	"github.com/jonathan/exec-search/internal/types"
)

var errUnavailable = errors.New("503 service unavailable")

// fakeExecutor answers vetting by candidate id; ids in failing always error
type fakeExecutor struct {
	mu        sync.Mutex
	pool      string
	sourceErr error
	scores    map[string]string
	failing   map[string]bool
	delays    map[string]time.Duration
	vetted    []string
	tasks     []agents.VettingTask
}

func (f *fakeExecutor) Source(_ context.Context, _ agents.SourcingTask) (string, error) {
	if f.sourceErr != nil {
		return "", f.sourceErr
	}
	return f.pool, nil
}

func (f *fakeExecutor) Vet(ctx context.Context, task agents.VettingTask) (string, error) {
	if d := f.delays[task.CandidateID]; d > 0 {
		time.Sleep(d)
	}
	f.mu.Lock()
	f.vetted = append(f.vetted, task.CandidateID)
	f.tasks = append(f.tasks, task)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.failing[task.CandidateID] {
		return "", errUnavailable
	}
	if score, ok := f.scores[task.CandidateID]; ok {
		return score, nil
	}
	return `{"auditor_score": 80, "domain_score": 80, "matchmaker_score": 80, "final_recommendation": "Hire"}`, nil
}

type countingObserver struct {
	mu    sync.Mutex
	names []string
}

func (c *countingObserver) ObserveVetted(candidate *types.Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append(c.names, candidate.Name)
}

type fakeStore struct {
	calls     []string
	saved     []types.Candidate
	completed types.SearchState
	fail      bool
}

func (s *fakeStore) CreateSearch(_ context.Context, state *types.SearchState) error {
	s.calls = append(s.calls, "create:"+string(state.Status))
	if s.fail {
		return errors.New("connection refused")
	}
	return nil
}

func (s *fakeStore) SaveCandidates(_ context.Context, _ string, vetted []types.Candidate) error {
	s.calls = append(s.calls, "save")
	s.saved = vetted
	return nil
}

func (s *fakeStore) CompleteSearch(_ context.Context, state *types.SearchState) error {
	s.calls = append(s.calls, "complete:"+string(state.Status))
	s.completed = *state
	return nil
}

// poolOf builds a sourced state holding n candidates named c0..c(n-1)
func poolOf(n int) types.SearchState {
	state := types.NewSearchState("s1", "Interim CFO - $50M SaaS")
	state.RoleCategory = types.RoleCFO
	state.RoleTitle = "Interim CFO"
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		state.CandidatePool = append(state.CandidatePool,
			types.NewCandidate(id, "Candidate "+id, "CANDIDATE: Candidate "+id, "Interim CFO", nil))
	}
	return state
}
