package agents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestRetryingExecutor(t *testing.T) {
	transient := errors.New("429 resource exhausted")
	permanent := &googleapi.Error{Code: 401, Message: "unauthorized"}

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{name: "first try", failures: 0, err: transient, wantCalls: 1},
		{name: "recovers on third attempt", failures: 2, err: transient, wantCalls: 3},
		{name: "exhausted", failures: 5, err: transient, wantCalls: 3, wantErr: true},
		{name: "permanent error is not retried", failures: 5, err: permanent, wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delegate := newScriptedExecutor(tt.failures, tt.err, "ok")
			observer := &recordingObserver{}
			exec := NewRetryingExecutor(delegate, RetryPolicy{Attempts: 3}, observer, nil)

			out, err := exec.Vet(context.Background(), VettingTask{CandidateID: "c1"})
			assert.Equal(t, tt.wantCalls, delegate.count(StageVetting))
			assert.Equal(t, tt.wantCalls, observer.ok+observer.failed)
			if tt.wantErr {
				var execErr *ExecutorError
				require.ErrorAs(t, err, &execErr)
				assert.Equal(t, StageVetting, execErr.Stage)
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, out)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ok", out)
			assert.Equal(t, 1, observer.ok)
		})
	}
}

func TestRetryingExecutor_Source(t *testing.T) {
	delegate := newScriptedExecutor(1, errors.New("timeout"), "[]")
	exec := NewRetryingExecutor(delegate, RetryPolicy{Attempts: 2, BaseDelay: time.Millisecond}, nil, nil)

	out, err := exec.Source(context.Background(), SourcingTask{Query: "CFO"})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
	assert.Equal(t, 2, delegate.count(StageSourcing))
	assert.Zero(t, delegate.count(StageVetting))
}

func TestRetryingExecutor_Defaults(t *testing.T) {
	exec := NewRetryingExecutor(newScriptedExecutor(0, nil, ""), RetryPolicy{Attempts: -1, BaseDelay: -time.Second}, nil, nil)
	assert.Equal(t, DefaultAttempts, exec.policy.Attempts)
	assert.Zero(t, exec.policy.BaseDelay)
	assert.Equal(t, RetryPolicy{Attempts: 3, BaseDelay: 5 * time.Second}, DefaultRetryPolicy())
}

func TestRetryingExecutor_Schedule(t *testing.T) {
	exec := NewRetryingExecutor(newScriptedExecutor(0, nil, ""), DefaultRetryPolicy(), nil, nil)
	b := exec.schedule()
	b.Reset()

	assert.Equal(t, 10*time.Second, b.NextBackOff())
	assert.Equal(t, 20*time.Second, b.NextBackOff())

	zero := NewRetryingExecutor(newScriptedExecutor(0, nil, ""), RetryPolicy{Attempts: 3}, nil, nil).schedule()
	assert.IsType(t, &backoff.ZeroBackOff{}, zero)
}

func TestRetryingExecutor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	delegate := newScriptedExecutor(5, errors.New("unavailable"), "ok")
	exec := NewRetryingExecutor(delegate, RetryPolicy{Attempts: 3, BaseDelay: time.Hour}, nil, nil)

	cancel()
	_, err := exec.Vet(ctx, VettingTask{})
	require.Error(t, err)
	assert.LessOrEqual(t, delegate.count(StageVetting), 1)
}
