package triage

import (
	"testing"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
	"attestor-hq/attestor/pkg/verify"
)

var testSecret = policy.Secret{Key: []byte("triage-test-secret")}

// evaluate runs one intake through the engine and checks the bundle
// verifies offline before handing the result back.
func evaluate(t *testing.T, in engine.Record) *engine.Result {
	t.Helper()

	eng, err := New(testSecret)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.Evaluate(in)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Bundle.OverallResult != verify.ResultVerified {
		t.Errorf("overall result = %q, want VERIFIED", res.Bundle.OverallResult)
	}
	if !verify.Recheck(res.Bundle, testSecret.Key).OK() {
		t.Error("bundle failed offline recheck")
	}
	return res
}

func TestCriticalVitalsMandateHigh(t *testing.T) {
	res := evaluate(t, engine.Record{
		"vital_score":       0.3,
		"age":               70,
		"comorbidity_index": 0.6,
	})

	if res.Decision.Outcome != PriorityHigh {
		t.Errorf("priority = %q, want HIGH", res.Decision.Outcome)
	}
	if !res.Decision.Flags["critical"] {
		t.Error("critical flag missing for vital_score below the threshold")
	}
	// Three independent findings (vitals, elderly comorbidity, composite)
	// also trip the multi-trigger escalation note.
	if !res.Decision.Flags["multi_trigger_escalation"] {
		t.Error("multi_trigger_escalation flag missing")
	}
}

func TestStablePatientIsLow(t *testing.T) {
	res := evaluate(t, engine.Record{
		"vital_score":       0.9,
		"comorbidity_index": 0.1,
		"age":               30,
	})

	if res.Decision.Outcome != PriorityLow {
		t.Errorf("priority = %q, want LOW", res.Decision.Outcome)
	}
	if len(res.Decision.Flags) != 0 {
		t.Errorf("stable patient carries flags %v", res.Decision.Flags)
	}
}

func TestLongWaitEscalatesOneLevel(t *testing.T) {
	res := evaluate(t, engine.Record{
		"vital_score":       0.85,
		"comorbidity_index": 0.2,
		"wait_time":         75,
		"age":               40,
	})

	if res.Decision.Outcome != PriorityMedium {
		t.Errorf("priority = %q; a long wait escalates LOW to MEDIUM", res.Decision.Outcome)
	}
}

func TestTraumaCaseMandatesHigh(t *testing.T) {
	res := evaluate(t, engine.Record{
		"trauma_case": true,
		"vital_score": 0.9,
	})

	if res.Decision.Outcome != PriorityHigh {
		t.Errorf("priority = %q, want HIGH", res.Decision.Outcome)
	}
	if !res.Decision.Flags["critical"] {
		t.Error("trauma presentation must set the critical flag")
	}
}

func TestUrgencyCompositeRecorded(t *testing.T) {
	res := evaluate(t, engine.Record{
		"vital_score":       0.3,
		"age":               70,
		"comorbidity_index": 0.6,
	})

	// 0.40*(1-0.3) + 0.25*0.6 + 0.20*0 + 0.15*(70/90), rounded.
	if got := res.Decision.Scores["urgency_score"]; got != 0.55 {
		t.Errorf("urgency_score = %v, want 0.55", got)
	}
}

func TestElderlyComorbidArrivalFullIntake(t *testing.T) {
	// A complete intake record for a deteriorating elderly patient: poor
	// vitals and high comorbidity each mandate HIGH on their own.
	res := evaluate(t, engine.Record{
		"vital_score":       0.3,
		"age":               70,
		"comorbidity_index": 0.7,
		"wait_time":         45,
		"resource_score":    0.6,
	})

	if res.Decision.Outcome != PriorityHigh {
		t.Errorf("priority = %q, want HIGH", res.Decision.Outcome)
	}
	if !res.Decision.Flags["critical"] {
		t.Error("critical flag missing")
	}
}

func TestScarceResourcesFlagged(t *testing.T) {
	res := evaluate(t, engine.Record{
		"vital_score":    0.9,
		"resource_score": 0.1,
	})

	if !res.Decision.Flags["resource_constrained"] {
		t.Error("resource_constrained flag missing")
	}
}
