package attest

import (
	"fmt"
	"testing"
	"time"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/graph"
	"attestor-hq/attestor/pkg/policy"
	"attestor-hq/attestor/pkg/verify"
)

var testSecret = policy.Secret{Key: []byte("attest-test-secret")}

// testEngine wires a one-rule engine with one mandatory constraint that
// replays the same threshold the rule reads.
func testEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	const threshold = 0.5

	rules := []engine.Rule{
		{
			ID:   "R1",
			Text: "score < 0.5 mandates DENY",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				score, err := in.FloatIn("score", 1, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if score < threshold {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("score %.2f < %.2f", score, threshold),
						Outcome:   &engine.Proposal{Value: "DENY", Rank: 1},
					}, nil
				}
				return engine.RuleResult{Detail: fmt.Sprintf("score %.2f >= %.2f", score, threshold)}, nil
			},
		},
	}

	constraints := []policy.Constraint{
		{
			ID:       "C1",
			Name:     "Low score denial",
			Rule:     "score < 0.5 must yield DENY",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				score := in.FloatOr("score", 1)
				if score < threshold {
					return d.Outcome == "DENY", true, fmt.Sprintf("score %.2f, outcome %s", score, d.Outcome)
				}
				return true, false, fmt.Sprintf("score %.2f above threshold", score)
			},
		},
	}

	p, err := policy.New("Attest Test Policy", "Test Authority", "2025-01-01T00:00:00.000Z", constraints, testSecret.Key)
	if err != nil {
		t.Fatalf("policy.New: %v", err)
	}

	buildGraph := func(in engine.Record, d *engine.Decision) *graph.Graph {
		return graph.NewBuilder().
			Premise("p:score", "score input").
			Rule("r:R1", "score threshold").
			Conclusion("c:out", "outcome "+d.Outcome).
			Connect("p:score", "r:R1", graph.RelationInput).
			Connect("r:R1", "c:out", graph.RelationEntails).
			Graph()
	}

	cfg := engine.Config{
		Engine:      "attest_test",
		OutcomeName: "verdict",
		Default:     engine.Proposal{Value: "ALLOW", Rank: 0},
		Rules:       rules,
	}

	return New(cfg, p, testSecret, buildGraph, opts...)
}

func TestEvaluateProducesDecisionAndBundle(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.Evaluate(engine.Record{"score": 0.3})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if res.Decision.Outcome != "DENY" {
		t.Errorf("outcome = %q, want DENY", res.Decision.Outcome)
	}
	if res.Bundle == nil {
		t.Fatal("bundle missing")
	}
	if res.Bundle.OverallResult != verify.ResultVerified {
		t.Errorf("overall result = %q; a denial consistent with policy is VERIFIED", res.Bundle.OverallResult)
	}
	if !verify.Recheck(res.Bundle, testSecret.Key).OK() {
		t.Error("fresh bundle failed offline recheck")
	}
}

func TestEvaluateBundleBindsPolicy(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.Evaluate(engine.Record{"score": 0.9})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if res.Bundle.PoI.Policy != eng.Policy().Name {
		t.Errorf("bundle policy = %q, want %q", res.Bundle.PoI.Policy, eng.Policy().Name)
	}
	if res.Bundle.PoI.PolicyHash != eng.Policy().Hash {
		t.Error("bundle policy hash does not match the sealed policy")
	}
}

func TestEvaluateWithClockPinsTimestamps(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	}
	eng := testEngine(t, WithClock(clock))

	res, err := eng.Evaluate(engine.Record{"score": 0.9})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	want := "2026-08-23T10:00:00.000Z"
	if res.Decision.Timestamp != want {
		t.Errorf("decision timestamp = %q, want %q", res.Decision.Timestamp, want)
	}
	if res.Bundle.PoO.Timestamp != want {
		t.Errorf("poo timestamp = %q, want %q", res.Bundle.PoO.Timestamp, want)
	}
	if res.Bundle.PoI.VerificationTime != want {
		t.Errorf("verification time = %q, want %q", res.Bundle.PoI.VerificationTime, want)
	}
}

func TestEvaluateDeterministicHashes(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	}
	eng := testEngine(t, WithClock(clock))

	first, err := eng.Evaluate(engine.Record{"score": 0.3})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	second, err := eng.Evaluate(engine.Record{"score": 0.3})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if first.Bundle.PoO.Hash != second.Bundle.PoO.Hash {
		t.Error("poo hashes differ for identical evaluations")
	}
	if first.Bundle.PoR.Hash != second.Bundle.PoR.Hash {
		t.Error("por hashes differ for identical evaluations")
	}
	if first.Bundle.MerkleRoot != second.Bundle.MerkleRoot {
		t.Error("merkle roots differ for identical evaluations")
	}
	if first.Bundle.BundleID == second.Bundle.BundleID {
		t.Error("bundle ids must be unique per evaluation")
	}
}

func TestEvaluateInvalidInput(t *testing.T) {
	eng := testEngine(t)

	if _, err := eng.Evaluate(engine.Record{"score": "bogus"}); err == nil {
		t.Error("expected error for uncoercible input")
	}
}
