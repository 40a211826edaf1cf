package compliance

import (
	"testing"
	"time"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
	"attestor-hq/attestor/pkg/verify"
)

var testSecret = []byte("compliance-test-secret")

func staticCheck(satisfied, triggered bool) policy.CheckFunc {
	return func(in engine.Record, d *engine.Decision) (bool, bool, string) {
		return satisfied, triggered, "replayed detail"
	}
}

func testPolicy(t *testing.T, constraints []policy.Constraint) *policy.Policy {
	t.Helper()
	p, err := policy.New("Test Policy", "Test Authority", "2025-01-01T00:00:00.000Z", constraints, testSecret)
	if err != nil {
		t.Fatalf("policy.New: %v", err)
	}
	return p
}

func testDecision(timestamp string) *engine.Decision {
	return &engine.Decision{
		Engine:    "test_engine",
		Outcome:   "APPROVED",
		Timestamp: timestamp,
	}
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
}

func TestVerifyAllSatisfied(t *testing.T) {
	p := testPolicy(t, []policy.Constraint{
		{ID: "C1", Name: "Mandatory OK", Rule: "r1", Severity: policy.SeverityMandatory, Check: staticCheck(true, false)},
	})
	checker := NewCheckerWithClock(p, fixedClock)

	poi := checker.Verify(engine.Record{}, testDecision("2026-08-23T09:00:00.000Z"))

	if !poi.AllSatisfied {
		t.Error("all_satisfied should hold")
	}
	if poi.Policy != "Test Policy" || poi.PolicyHash != p.Hash {
		t.Errorf("policy identity wrong: %+v", poi)
	}
	if poi.VerificationTime != "2026-08-23T10:00:00.000Z" {
		t.Errorf("verification time = %q", poi.VerificationTime)
	}
	// One declared constraint plus the synthetic temporal row.
	if len(poi.Results) != 2 {
		t.Fatalf("result rows = %d, want 2", len(poi.Results))
	}
	if poi.Results[1].Constraint != verify.TemporalConstraintName {
		t.Errorf("last row = %q, want temporal precedence", poi.Results[1].Constraint)
	}
}

func TestVerifyMandatoryViolationFails(t *testing.T) {
	p := testPolicy(t, []policy.Constraint{
		{ID: "C1", Name: "Mandatory violated", Rule: "r1", Severity: policy.SeverityMandatory, Check: staticCheck(false, true)},
	})
	checker := NewCheckerWithClock(p, fixedClock)

	poi := checker.Verify(engine.Record{}, testDecision("2026-08-23T09:00:00.000Z"))

	if poi.AllSatisfied {
		t.Error("mandatory violation must fail all_satisfied")
	}
	if poi.Results[0].Satisfied {
		t.Error("violated constraint reported satisfied")
	}
	if poi.Results[0].Triggered != nil {
		t.Error("mandatory rows must not carry a triggered annotation")
	}
}

func TestVerifyWarningNeverBlocks(t *testing.T) {
	p := testPolicy(t, []policy.Constraint{
		{ID: "C1", Name: "Warning fired", Rule: "r1", Severity: policy.SeverityWarning, Check: staticCheck(false, true)},
	})
	checker := NewCheckerWithClock(p, fixedClock)

	poi := checker.Verify(engine.Record{}, testDecision("2026-08-23T09:00:00.000Z"))

	if !poi.AllSatisfied {
		t.Error("a fired warning must not fail all_satisfied")
	}
	row := poi.Results[0]
	if !row.Satisfied {
		t.Error("warning rows are always reported satisfied")
	}
	if row.Triggered == nil || !*row.Triggered {
		t.Error("warning row should annotate triggered=true")
	}
}

func TestVerifyTemporalPrecedence(t *testing.T) {
	p := testPolicy(t, nil)
	checker := NewCheckerWithClock(p, fixedClock)

	// Decision after declaration: satisfied.
	poi := checker.Verify(engine.Record{}, testDecision("2026-08-23T09:00:00.000Z"))
	if !poi.TemporalResult() || !poi.AllSatisfied {
		t.Error("decision after declaration should satisfy temporal precedence")
	}

	// Decision timestamp before the declaration: violated, and it fails
	// the whole verification.
	poi = checker.Verify(engine.Record{}, testDecision("2024-12-31T23:59:59.000Z"))
	if poi.TemporalResult() {
		t.Error("decision before declaration should violate temporal precedence")
	}
	if poi.AllSatisfied {
		t.Error("temporal violation must fail all_satisfied")
	}

	// Equal timestamps: precedence is strict.
	poi = checker.Verify(engine.Record{}, testDecision("2025-01-01T00:00:00.000Z"))
	if poi.TemporalResult() {
		t.Error("equal timestamps should violate strict precedence")
	}
}
