package govservice

import (
	"testing"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
	"attestor-hq/attestor/pkg/verify"
)

var testSecret = policy.Secret{Key: []byte("govservice-test-secret")}

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

func TestStrongApplicantGranted(t *testing.T) {
	res := evaluate(t, engine.Record{
		"eligibility_score":   0.85,
		"documentation_score": 0.9,
		"residency_verified":  true,
		"income_ratio":        0.6,
	})

	if res.Decision.Outcome != DeterminationGranted {
		t.Errorf("determination = %q, want GRANTED", res.Decision.Outcome)
	}
	// 0.40*0.85 + 0.30*(1-0.6/1.5) + 0.30*0.9, rounded.
	if got := res.Decision.Scores["entitlement_score"]; got != 0.79 {
		t.Errorf("entitlement_score = %v, want 0.79", got)
	}
}

func TestPriorFraudRefused(t *testing.T) {
	res := evaluate(t, engine.Record{
		"prior_fraud":        true,
		"residency_verified": true,
	})

	if res.Decision.Outcome != DeterminationRefused {
		t.Errorf("determination = %q, want REFUSED", res.Decision.Outcome)
	}
	if !res.Decision.Flags["fraud_bar"] {
		t.Error("fraud_bar flag missing")
	}
}

func TestIncompleteDocumentsPending(t *testing.T) {
	res := evaluate(t, engine.Record{
		"residency_verified":  false,
		"documentation_score": 0.4,
		"eligibility_score":   0.6,
		"household_size":      6,
	})

	if res.Decision.Outcome != DeterminationPending {
		t.Errorf("determination = %q, want PENDING_DOCUMENTS", res.Decision.Outcome)
	}
	if !res.Decision.Flags["residency_unverified"] {
		t.Error("residency_unverified flag missing")
	}
	if !res.Decision.Flags["large_household"] {
		t.Error("large_household flag missing")
	}
	if !res.Decision.Flags["multi_trigger_escalation"] {
		t.Error("multi_trigger_escalation flag missing")
	}
}

func TestUrgentNeedExpedited(t *testing.T) {
	res := evaluate(t, engine.Record{
		"urgent_need":         true,
		"residency_verified":  true,
		"eligibility_score":   0.6,
		"documentation_score": 0.7,
		"income_ratio":        0.5,
	})

	if res.Decision.Outcome != DeterminationGranted {
		t.Errorf("determination = %q, want GRANTED", res.Decision.Outcome)
	}
	if !res.Decision.Flags["expedited"] {
		t.Error("expedited flag missing")
	}
}

func TestIncomeAboveCeilingRefused(t *testing.T) {
	res := evaluate(t, engine.Record{
		"income_ratio":       2.0,
		"residency_verified": true,
	})

	if res.Decision.Outcome != DeterminationRefused {
		t.Errorf("determination = %q, want REFUSED", res.Decision.Outcome)
	}
}

func TestEligibilityFloorRefused(t *testing.T) {
	res := evaluate(t, engine.Record{
		"eligibility_score":  0.1,
		"residency_verified": true,
	})

	if res.Decision.Outcome != DeterminationRefused {
		t.Errorf("determination = %q, want REFUSED", res.Decision.Outcome)
	}
}
