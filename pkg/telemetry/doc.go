// Package telemetry provides observability for the verification core.
//
// # Components
//
//   - logging: structured logging with subject-data redaction
//   - metrics: Prometheus metrics for evaluations, verification, and
//     the ledger
//   - health: liveness and readiness endpoints for watch mode
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	logger.InstallDefault()
//
//	collector := metrics.NewCollector(&metrics.Config{Enabled: true}, nil)
//	collector.RecordEvaluation("medical_triage", "HIGH", "VERIFIED", elapsed)
//
//	mux := http.NewServeMux()
//	mux.Handle("/metrics", collector.Handler())
//	health.Register(mux, checker, version, commit, buildTime)
//
// Evaluation inputs describe real people. The logging component redacts
// subject data by default in watch mode; metrics carry only engine
// names, outcome values, and constraint identifiers, never input
// fields.
package telemetry
