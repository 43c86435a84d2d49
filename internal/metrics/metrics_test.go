package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/exec-search/internal/agents"
	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/types"
)

func TestManager_ParserObserver(t *testing.T) {
	m := NewManager()
	parser := parsing.NewParser(parsing.WithObserver(m))

	parser.ParseProfiles("```json\n[{\"full_name\": \"Jane Roe\"}, 42]\n```")
	parser.ParseVettingScore(`{"auditor_score": 90, "domain_score": 90, "matchmaker_score": 90}`)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.extractions.WithLabelValues("profiles", "fenced")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.extractions.WithLabelValues("score", "whole")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.records.WithLabelValues("profiles", "defaulted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.records.WithLabelValues("profiles", "dropped")))
}

func TestManager_ObserveAttempt(t *testing.T) {
	m := NewManager()

	m.ObserveAttempt(agents.StageVetting, 10*time.Millisecond, errors.New("quota"))
	m.ObserveAttempt(agents.StageVetting, 20*time.Millisecond, nil)
	m.ObserveAttempt(agents.StageSourcing, time.Second, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("vetting", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("vetting", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("sourcing", "success")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.callLatency))
}

func TestManager_ObserveVetted(t *testing.T) {
	m := NewManager()

	degraded := types.NewCandidate("a", "A", "", "CFO", nil).ApplyScore(agents.DegradedScore())
	hire := types.NewCandidate("b", "B", "", "CFO", nil)
	hire.FinalFit = types.RecommendationHire

	m.ObserveVetted(&degraded)
	m.ObserveVetted(&hire)
	m.ObserveVetted(&hire)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.degraded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recommendations.WithLabelValues("Risk Flag")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.recommendations.WithLabelValues("Hire")))
}

func TestManager_Snapshot(t *testing.T) {
	m := NewManager(WithNamespace("test"))

	empty, err := m.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, empty)

	m.ObserveExtraction(parsing.ShapeScore, parsing.StrategyRepaired)
	m.ObserveAttempt(agents.StageVetting, time.Millisecond, nil)

	snapshot, err := m.Snapshot()
	require.NoError(t, err)
	assert.Equal(t,
		"test_executor_attempts_total{outcome=\"success\",stage=\"vetting\"} 1\n"+
			"test_executor_call_duration_seconds_count{stage=\"vetting\"} 1\n"+
			"test_parser_extractions_total{shape=\"score\",strategy=\"repaired\"} 1",
		snapshot)
}

func TestManager_WithRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewManager(WithRegistry(registry))
	assert.Same(t, registry, m.Registry())

	// a second manager on the same registry collides
	assert.Panics(t, func() { NewManager(WithRegistry(registry)) })
}
