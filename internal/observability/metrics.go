package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the benchmark run.
type Metrics struct {
	registry         *prometheus.Registry
	Attempts         *prometheus.CounterVec
	Retries          *prometheus.CounterVec
	ModelUsage       *prometheus.CounterVec
	QuestionFailures prometheus.Counter
	InFlight         prometheus.Gauge
	RunDuration      prometheus.Histogram
}

// NewMetrics constructs a metrics registry with benchmark collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "routebench_completion_attempts_total",
		Help: "Completion attempts by outcome",
	}, []string{"outcome"})

	retries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "routebench_retries_total",
		Help: "Retry waits by trigger reason",
	}, []string{"reason"})

	modelUsage := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "routebench_model_usage_total",
		Help: "Answers by responding model",
	}, []string{"model"})

	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "routebench_question_failures_total",
		Help: "Questions with no answer after all attempts",
	})

	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "routebench_requests_in_flight",
		Help: "Question handlers currently running",
	})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "routebench_run_duration_seconds",
		Help:    "End-to-end benchmark run duration in seconds",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	reg.MustRegister(attempts, retries, modelUsage, failures, inFlight, runDuration)

	return &Metrics{
		registry:         reg,
		Attempts:         attempts,
		Retries:          retries,
		ModelUsage:       modelUsage,
		QuestionFailures: failures,
		InFlight:         inFlight,
		RunDuration:      runDuration,
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAttempt records one completion attempt outcome (success, rate_limited,
// server_error, connection, fatal).
func (m *Metrics) RecordAttempt(outcome string) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.Attempts.WithLabelValues(outcome).Inc()
}

// RecordRetry records one backoff wait by reason.
func (m *Metrics) RecordRetry(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.Retries.WithLabelValues(reason).Inc()
}

// RecordModelUsage increments the usage counter for the responding model.
func (m *Metrics) RecordModelUsage(model string) {
	if m == nil {
		return
	}
	if model == "" {
		model = "unknown"
	}
	m.ModelUsage.WithLabelValues(model).Inc()
}

// RecordQuestionFailure counts a question that produced no answer.
func (m *Metrics) RecordQuestionFailure() {
	if m == nil {
		return
	}
	m.QuestionFailures.Inc()
}

// IncInFlight increments the in-flight handler gauge.
func (m *Metrics) IncInFlight() {
	if m == nil {
		return
	}
	m.InFlight.Inc()
}

// DecInFlight decrements the in-flight handler gauge.
func (m *Metrics) DecInFlight() {
	if m == nil {
		return
	}
	m.InFlight.Dec()
}

// ObserveRunDuration records the total run duration.
func (m *Metrics) ObserveRunDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RunDuration.Observe(d.Seconds())
}
