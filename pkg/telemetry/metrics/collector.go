package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Enabled turns metric recording on. When false, every Record*
	// method is a no-op.
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix (default "attestor").
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric name subsystem (default "core").
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets are histogram buckets for evaluation latency
	// in seconds.
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// Collector manages Prometheus metric registration and provides a
// unified interface for recording metrics across the pipeline.
type Collector struct {
	config   *Config
	registry *prometheus.Registry

	// Evaluation and verification metrics
	evaluationMetrics *EvaluationMetrics

	// Ledger and intake metrics
	ledgerMetrics *LedgerMetrics

	// Cardinality tracking for the constraint label
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
func NewCollector(cfg *Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "attestor"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "core"
	}
	if len(cfg.DurationBuckets) == 0 {
		// Rule evaluation plus proof construction lands in the
		// sub-millisecond to low-millisecond range; SQLite writes
		// stretch the tail.
		cfg.DurationBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5}
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}

	c.evaluationMetrics = NewEvaluationMetrics(cfg, registry)
	c.ledgerMetrics = NewLedgerMetrics(cfg, registry)

	return c
}

// RecordEvaluation records a completed evaluation.
//
// Parameters:
//   - engine: decision engine name (e.g., "credit_assessment")
//   - outcome: decided outcome value (e.g., "APPROVED")
//   - result: verification predicate result ("VERIFIED", "FAILED")
//   - duration: total evaluation duration including proof construction
func (c *Collector) RecordEvaluation(engine, outcome, result string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.evaluationMetrics.RecordEvaluation(engine, outcome, result, duration)
}

// RecordEvaluationError records an evaluation that returned an error
// instead of a result.
//
// Parameters:
//   - engine: decision engine name
//   - errorType: error category (e.g., "invalid_input", "proof", "integrity")
func (c *Collector) RecordEvaluationError(engine, errorType string) {
	if !c.config.Enabled {
		return
	}

	c.evaluationMetrics.RecordError(engine, errorType)
}

// RecordConstraintViolation records a policy constraint violation
// observed during replay.
//
// Parameters:
//   - engine: decision engine name
//   - constraint: constraint identifier (e.g., "C2")
//   - severity: "mandatory" or "warning"
func (c *Collector) RecordConstraintViolation(engine, constraint, severity string) {
	if !c.config.Enabled {
		return
	}

	// Constraint identifiers come from sealed policies, but intake
	// files can name arbitrary engines; cap the label space.
	labelSet := fmt.Sprintf("violation:%s:%s:%s", engine, constraint, severity)
	if !c.cardinalityLimiter.Allow(labelSet) {
		constraint = "other"
	}

	c.evaluationMetrics.RecordConstraintViolation(engine, constraint, severity)
}

// RecordLedgerWrite records an attempt to persist a ledger record.
//
// Parameters:
//   - backend: storage backend ("sqlite", "memory")
//   - status: "success" or "error"
func (c *Collector) RecordLedgerWrite(backend, status string) {
	if !c.config.Enabled {
		return
	}

	c.ledgerMetrics.RecordWrite(backend, status)
}

// RecordPrunedRecords records the number of ledger records removed by
// a retention pruning cycle.
func (c *Collector) RecordPrunedRecords(count int64) {
	if !c.config.Enabled {
		return
	}

	c.ledgerMetrics.RecordPruned(count)
}

// RecordIntakeFile records a file picked up by the intake watcher.
//
// Parameters:
//   - status: "processed", "invalid", or "error"
func (c *Collector) RecordIntakeFile(status string) {
	if !c.config.Enabled {
		return
	}

	c.ledgerMetrics.RecordIntakeFile(status)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the
// specified maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if the cardinality limit has not been reached.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
