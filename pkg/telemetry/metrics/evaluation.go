package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EvaluationMetrics tracks decision evaluations and their verification
// results.
type EvaluationMetrics struct {
	// evaluationsTotal counts completed evaluations by engine and outcome.
	evaluationsTotal *prometheus.CounterVec

	// evaluationDuration measures evaluation latency by engine.
	evaluationDuration *prometheus.HistogramVec

	// evaluationErrors counts failed evaluations by engine and error type.
	evaluationErrors *prometheus.CounterVec

	// verificationResults counts predicate outcomes by engine and result.
	verificationResults *prometheus.CounterVec

	// constraintViolations counts policy constraint violations.
	constraintViolations *prometheus.CounterVec
}

// NewEvaluationMetrics creates and registers evaluation metrics.
func NewEvaluationMetrics(cfg *Config, registry *prometheus.Registry) *EvaluationMetrics {
	m := &EvaluationMetrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of completed decision evaluations",
			},
			[]string{"engine", "outcome"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Evaluation duration including proof construction and verification",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"engine"},
		),

		evaluationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_errors_total",
				Help:      "Total number of evaluations that returned an error",
			},
			[]string{"engine", "error_type"},
		),

		verificationResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "verification_results_total",
				Help:      "Verification predicate results by engine",
			},
			[]string{"engine", "result"},
		),

		constraintViolations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "constraint_violations_total",
				Help:      "Policy constraint violations observed during replay",
			},
			[]string{"engine", "constraint", "severity"},
		),
	}

	registry.MustRegister(
		m.evaluationsTotal,
		m.evaluationDuration,
		m.evaluationErrors,
		m.verificationResults,
		m.constraintViolations,
	)

	return m
}

// RecordEvaluation records a completed evaluation.
func (m *EvaluationMetrics) RecordEvaluation(engine, outcome, result string, duration time.Duration) {
	m.evaluationsTotal.WithLabelValues(engine, outcome).Inc()
	m.evaluationDuration.WithLabelValues(engine).Observe(duration.Seconds())
	m.verificationResults.WithLabelValues(engine, result).Inc()
}

// RecordError records an evaluation error.
func (m *EvaluationMetrics) RecordError(engine, errorType string) {
	m.evaluationErrors.WithLabelValues(engine, errorType).Inc()
}

// RecordConstraintViolation records a constraint violation.
func (m *EvaluationMetrics) RecordConstraintViolation(engine, constraint, severity string) {
	m.constraintViolations.WithLabelValues(engine, constraint, severity).Inc()
}
