package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	return NewCollector(&Config{Enabled: true}, prometheus.NewRegistry())
}

func TestRecordEvaluation(t *testing.T) {
	c := newTestCollector(t)

	c.RecordEvaluation("credit_assessment", "APPROVED", "VERIFIED", 5*time.Millisecond)
	c.RecordEvaluation("credit_assessment", "APPROVED", "VERIFIED", 7*time.Millisecond)
	c.RecordEvaluation("medical_triage", "HIGH", "VERIFIED", time.Millisecond)

	got := testutil.ToFloat64(
		c.evaluationMetrics.evaluationsTotal.WithLabelValues("credit_assessment", "APPROVED"))
	if got != 2 {
		t.Errorf("evaluations_total{credit_assessment,APPROVED} = %v, want 2", got)
	}

	got = testutil.ToFloat64(
		c.evaluationMetrics.verificationResults.WithLabelValues("medical_triage", "VERIFIED"))
	if got != 1 {
		t.Errorf("verification_results_total{medical_triage,VERIFIED} = %v, want 1", got)
	}
}

func TestRecordEvaluationError(t *testing.T) {
	c := newTestCollector(t)

	c.RecordEvaluationError("legal_compliance", "invalid_input")

	got := testutil.ToFloat64(
		c.evaluationMetrics.evaluationErrors.WithLabelValues("legal_compliance", "invalid_input"))
	if got != 1 {
		t.Errorf("evaluation_errors_total = %v, want 1", got)
	}
}

func TestRecordConstraintViolation(t *testing.T) {
	c := newTestCollector(t)

	c.RecordConstraintViolation("building_permit", "C3", "mandatory")
	c.RecordConstraintViolation("building_permit", "C3", "mandatory")

	got := testutil.ToFloat64(
		c.evaluationMetrics.constraintViolations.WithLabelValues("building_permit", "C3", "mandatory"))
	if got != 2 {
		t.Errorf("constraint_violations_total = %v, want 2", got)
	}
}

func TestRecordLedgerMetrics(t *testing.T) {
	c := newTestCollector(t)

	c.RecordLedgerWrite("sqlite", "success")
	c.RecordLedgerWrite("sqlite", "error")
	c.RecordPrunedRecords(17)
	c.RecordPrunedRecords(-3) // ignored
	c.RecordIntakeFile("processed")

	if got := testutil.ToFloat64(c.ledgerMetrics.writesTotal.WithLabelValues("sqlite", "success")); got != 1 {
		t.Errorf("ledger_writes_total{sqlite,success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.ledgerMetrics.prunedTotal); got != 17 {
		t.Errorf("ledger_pruned_records_total = %v, want 17", got)
	}
	if got := testutil.ToFloat64(c.ledgerMetrics.intakeFilesTotal.WithLabelValues("processed")); got != 1 {
		t.Errorf("intake_files_total{processed} = %v, want 1", got)
	}
}

func TestDisabledCollectorIsNoOp(t *testing.T) {
	c := NewCollector(&Config{Enabled: false}, prometheus.NewRegistry())

	c.RecordEvaluation("credit_assessment", "APPROVED", "VERIFIED", time.Millisecond)
	c.RecordLedgerWrite("memory", "success")

	got := testutil.ToFloat64(
		c.evaluationMetrics.evaluationsTotal.WithLabelValues("credit_assessment", "APPROVED"))
	if got != 0 {
		t.Errorf("disabled collector recorded evaluations_total = %v, want 0", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := newTestCollector(t)
	c.RecordEvaluation("government_service", "GRANTED", "VERIFIED", time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("metrics endpoint status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "attestor_core_evaluations_total") {
		t.Errorf("metrics output missing evaluations_total:\n%s", body)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	cl := NewCardinalityLimiter(2)

	if !cl.Allow("a") || !cl.Allow("b") {
		t.Fatal("first two label sets should be allowed")
	}
	if cl.Allow("c") {
		t.Error("third label set should be rejected")
	}
	if !cl.Allow("a") {
		t.Error("existing label set should remain allowed")
	}
	if cl.Count() != 2 {
		t.Errorf("Count = %d, want 2", cl.Count())
	}
}
