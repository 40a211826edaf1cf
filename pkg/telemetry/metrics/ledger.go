package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics tracks ledger persistence, retention, and intake
// activity.
type LedgerMetrics struct {
	// writesTotal counts ledger write attempts by backend and status.
	writesTotal *prometheus.CounterVec

	// prunedTotal counts records removed by retention pruning.
	prunedTotal prometheus.Counter

	// intakeFilesTotal counts files handled by the intake watcher.
	intakeFilesTotal *prometheus.CounterVec
}

// NewLedgerMetrics creates and registers ledger metrics.
func NewLedgerMetrics(cfg *Config, registry *prometheus.Registry) *LedgerMetrics {
	m := &LedgerMetrics{
		writesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ledger_writes_total",
				Help:      "Ledger record write attempts by backend and status",
			},
			[]string{"backend", "status"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ledger_pruned_records_total",
				Help:      "Ledger records removed by retention pruning",
			},
		),

		intakeFilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "intake_files_total",
				Help:      "Files handled by the intake watcher by status",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		m.writesTotal,
		m.prunedTotal,
		m.intakeFilesTotal,
	)

	return m
}

// RecordWrite records a ledger write attempt.
func (m *LedgerMetrics) RecordWrite(backend, status string) {
	m.writesTotal.WithLabelValues(backend, status).Inc()
}

// RecordPruned records records removed by a pruning cycle.
func (m *LedgerMetrics) RecordPruned(count int64) {
	if count <= 0 {
		return
	}
	m.prunedTotal.Add(float64(count))
}

// RecordIntakeFile records a file handled by the intake watcher.
func (m *LedgerMetrics) RecordIntakeFile(status string) {
	m.intakeFilesTotal.WithLabelValues(status).Inc()
}
