// Package metrics provides Prometheus counters for parser strategies, record
// outcomes and executor calls of a search run.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/jonathan/exec-search/internal/agents"
	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/types"
)

const (
	defaultNamespace = "exec_search"

	outcomeSuccess = "success"
	outcomeError   = "error"
)

// latencyBuckets covers offline calls in microseconds up to slow model calls
var latencyBuckets = []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120}

// Manager owns the metrics of one process on its own registry
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	extractions     *prometheus.CounterVec
	records         *prometheus.CounterVec
	attempts        *prometheus.CounterVec
	callLatency     *prometheus.HistogramVec
	degraded        prometheus.Counter
	recommendations *prometheus.CounterVec
}

// Option configures a Manager
type Option func(*Manager)

// WithNamespace sets the metric namespace
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry registers the metrics on registry instead of a fresh one
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a manager with all metrics registered
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: defaultNamespace,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.extractions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "parser",
		Name:      "extractions_total",
		Help:      "Extractions by payload shape and the strategy that recovered them",
	}, []string{"shape", "strategy"})

	m.records = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "parser",
		Name:      "records_total",
		Help:      "Records by payload shape and outcome",
	}, []string{"shape", "status"})

	m.attempts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "executor",
		Name:      "attempts_total",
		Help:      "Executor calls by stage and outcome, retries included",
	}, []string{"stage", "outcome"})

	m.callLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "executor",
		Name:      "call_duration_seconds",
		Help:      "Duration of single executor calls",
		Buckets:   latencyBuckets,
	}, []string{"stage"})

	m.degraded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "vetting",
		Name:      "degraded_total",
		Help:      "Candidates that received the placeholder score after retries were exhausted",
	})

	m.recommendations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "vetting",
		Name:      "recommendations_total",
		Help:      "Final recommendations assigned to vetted candidates",
	}, []string{"recommendation"})
}

// Registry returns the registry the metrics live on
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveExtraction counts the strategy that produced an extraction
func (m *Manager) ObserveExtraction(shape parsing.Shape, strategy parsing.Strategy) {
	m.extractions.WithLabelValues(string(shape), string(strategy)).Inc()
}

// ObserveRecord counts one record outcome
func (m *Manager) ObserveRecord(shape parsing.Shape, status parsing.RecordStatus) {
	m.records.WithLabelValues(string(shape), string(status)).Inc()
}

// ObserveAttempt counts one executor call and records its latency
func (m *Manager) ObserveAttempt(stage agents.Stage, elapsed time.Duration, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
	}
	m.attempts.WithLabelValues(string(stage), outcome).Inc()
	m.callLatency.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
}

// ObserveVetted counts the final label of a vetted candidate
func (m *Manager) ObserveVetted(candidate *types.Candidate) {
	if candidate.VettingIncomplete {
		m.degraded.Inc()
	}
	m.recommendations.WithLabelValues(string(candidate.FinalFit)).Inc()
}

// Snapshot renders every non-zero counter and histogram count as sorted
// "name{labels} value" lines.
func (m *Manager) Snapshot() (string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("failed to gather metrics: %w", err)
	}

	var lines []string
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			name := family.GetName()
			var value float64
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				value = metric.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				name += "_count"
				value = float64(metric.GetHistogram().GetSampleCount())
			default:
				continue
			}
			if value == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s%s %g", name, formatLabels(metric.GetLabel()), value))
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n"), nil
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
