// Package metrics provides Prometheus metrics for the decision pipeline.
//
// # Overview
//
// The metrics package tracks evaluations, verification results,
// constraint violations, and ledger activity. All metrics are
// registered against a dedicated registry so tests and embedders can
// isolate their metric state.
//
// # Usage
//
//	collector := metrics.NewCollector(&metrics.Config{Enabled: true}, nil)
//
//	collector.RecordEvaluation("credit_assessment", "APPROVED", "VERIFIED", 12*time.Millisecond)
//	collector.RecordConstraintViolation("credit_assessment", "C2", "mandatory")
//	collector.RecordLedgerWrite("sqlite", "success")
//
//	http.Handle("/metrics", collector.Handler())
//
// # Exposed metrics
//
//   - attestor_core_evaluations_total{engine, outcome}
//   - attestor_core_evaluation_duration_seconds{engine}
//   - attestor_core_evaluation_errors_total{engine, error_type}
//   - attestor_core_verification_results_total{engine, result}
//   - attestor_core_constraint_violations_total{engine, constraint, severity}
//   - attestor_core_ledger_writes_total{backend, status}
//   - attestor_core_ledger_pruned_records_total{}
//   - attestor_core_intake_files_total{status}
package metrics
