package credit

import (
	"testing"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
	"attestor-hq/attestor/pkg/verify"
)

var testSecret = policy.Secret{Key: []byte("credit-test-secret")}

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

func TestScoreFloorMandatesDenial(t *testing.T) {
	res := evaluate(t, engine.Record{"credit_score": 480})

	if res.Decision.Outcome != RecommendationDenied {
		t.Errorf("recommendation = %q, want DENIED", res.Decision.Outcome)
	}
	if !res.Decision.Flags["hard_denial"] {
		t.Error("hard_denial flag missing")
	}
}

func TestPrimeBorrowerApproved(t *testing.T) {
	res := evaluate(t, engine.Record{
		"credit_score":     760,
		"annual_income":    120000,
		"loan_amount":      20000,
		"debt_to_income":   0.3,
		"employment_years": 8,
	})

	if res.Decision.Outcome != RecommendationApproved {
		t.Errorf("recommendation = %q, want APPROVED", res.Decision.Outcome)
	}
	// 0.35*(760-300)/550 + 0.25*1 + 0.25*(1-0.3) + 0.15*0.8, rounded.
	if got := res.Decision.Scores["approval_score"]; got != 0.84 {
		t.Errorf("approval_score = %v, want 0.84", got)
	}
}

func TestOversizeLoanNeedsReview(t *testing.T) {
	res := evaluate(t, engine.Record{
		"credit_score":  700,
		"annual_income": 50000,
		"loan_amount":   300000,
	})

	if res.Decision.Outcome != RecommendationReview {
		t.Errorf("recommendation = %q; a loan above 5x income needs MANUAL_REVIEW", res.Decision.Outcome)
	}
}

func TestRepeatDefaultsMandateDenial(t *testing.T) {
	res := evaluate(t, engine.Record{
		"credit_score":   650,
		"prior_defaults": 3,
	})

	if res.Decision.Outcome != RecommendationDenied {
		t.Errorf("recommendation = %q, want DENIED", res.Decision.Outcome)
	}
	if !res.Decision.Flags["hard_denial"] {
		t.Error("hard_denial flag missing")
	}
}

func TestDeepSubprimeScoreOverridesHealthyFinances(t *testing.T) {
	// Moderate income, low leverage, and steady employment cannot rescue
	// an application once the score falls under the hard floor.
	res := evaluate(t, engine.Record{
		"credit_score":     450,
		"annual_income":    50000,
		"debt_to_income":   0.3,
		"loan_amount":      20000,
		"employment_years": 5,
	})

	if res.Decision.Outcome != RecommendationDenied {
		t.Errorf("recommendation = %q, want DENIED", res.Decision.Outcome)
	}
	if !res.Decision.Flags["hard_denial"] {
		t.Error("hard_denial flag missing")
	}
}

func TestCollateralNotedWithoutChangingOutcome(t *testing.T) {
	res := evaluate(t, engine.Record{"collateral": true})

	if !res.Decision.Flags["collateral_backed"] {
		t.Error("collateral_backed flag missing")
	}
	if res.Decision.Outcome != RecommendationReview {
		t.Errorf("recommendation = %q; collateral alone keeps the default MANUAL_REVIEW", res.Decision.Outcome)
	}
}

func TestSubprimeBandNeedsReview(t *testing.T) {
	res := evaluate(t, engine.Record{"credit_score": 540})

	if res.Decision.Outcome != RecommendationReview {
		t.Errorf("recommendation = %q, want MANUAL_REVIEW", res.Decision.Outcome)
	}
	if !res.Decision.Flags["subprime"] {
		t.Error("subprime flag missing")
	}
}
