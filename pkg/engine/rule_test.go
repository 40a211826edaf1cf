package engine

import (
	"errors"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
}

func staticRule(id string, res RuleResult) Rule {
	return Rule{
		ID:   id,
		Text: "static " + id,
		Eval: func(in Record, st *State) (RuleResult, error) {
			return res, nil
		},
	}
}

func TestEvaluateDefaultOutcome(t *testing.T) {
	cfg := Config{
		Engine:      "test_engine",
		OutcomeName: "verdict",
		Default:     Proposal{Value: "NEUTRAL", Rank: 0},
		Rules:       []Rule{staticRule("R1", RuleResult{Detail: "no-op"})},
		Clock:       fixedClock,
	}

	d, err := Evaluate(cfg, Record{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if d.Outcome != "NEUTRAL" {
		t.Errorf("outcome = %q, want default NEUTRAL", d.Outcome)
	}
	if d.Engine != "test_engine" || d.OutcomeName != "verdict" {
		t.Errorf("identity fields wrong: %+v", d)
	}
	if d.Timestamp != "2026-08-23T10:00:00.000Z" {
		t.Errorf("timestamp = %q", d.Timestamp)
	}
	if d.Scores == nil || d.Flags == nil || d.Reasons == nil {
		t.Error("collections must be non-nil for stable serialization")
	}
}

func TestEvaluateEscalationOnlyMerge(t *testing.T) {
	cfg := Config{
		Engine:  "test_engine",
		Default: Proposal{Value: "LOW", Rank: 0},
		Rules: []Rule{
			staticRule("R1", RuleResult{Triggered: true, Outcome: &Proposal{Value: "HIGH", Rank: 2}}),
			staticRule("R2", RuleResult{Triggered: true, Outcome: &Proposal{Value: "MEDIUM", Rank: 1}}),
			staticRule("R3", RuleResult{Outcome: &Proposal{Value: "LOW", Rank: 0}}),
		},
		Clock: fixedClock,
	}

	d, err := Evaluate(cfg, Record{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if d.Outcome != "HIGH" {
		t.Errorf("outcome = %q; later lower-rank proposals must not downgrade", d.Outcome)
	}
}

func TestEvaluateEqualRankDoesNotReplace(t *testing.T) {
	cfg := Config{
		Engine:  "test_engine",
		Default: Proposal{Value: "LOW", Rank: 0},
		Rules: []Rule{
			staticRule("R1", RuleResult{Outcome: &Proposal{Value: "FIRST", Rank: 1}}),
			staticRule("R2", RuleResult{Outcome: &Proposal{Value: "SECOND", Rank: 1}}),
		},
		Clock: fixedClock,
	}

	d, err := Evaluate(cfg, Record{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if d.Outcome != "FIRST" {
		t.Errorf("outcome = %q; equal rank must keep the earlier proposal", d.Outcome)
	}
}

func TestEvaluateTriggerCountVisibleToLaterRules(t *testing.T) {
	var seen int
	cfg := Config{
		Engine:  "test_engine",
		Default: Proposal{Value: "LOW", Rank: 0},
		Rules: []Rule{
			staticRule("R1", RuleResult{Triggered: true}),
			staticRule("R2", RuleResult{Triggered: true}),
			{
				ID:   "R3",
				Text: "reads trigger count",
				Eval: func(in Record, st *State) (RuleResult, error) {
					seen = st.Triggers
					return RuleResult{}, nil
				},
			},
		},
		Clock: fixedClock,
	}

	if _, err := Evaluate(cfg, Record{}); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if seen != 2 {
		t.Errorf("later rule saw %d triggers, want 2", seen)
	}
}

func TestEvaluateCollectsFlagsAndReasons(t *testing.T) {
	cfg := Config{
		Engine:  "test_engine",
		Default: Proposal{Value: "LOW", Rank: 0},
		Rules: []Rule{
			staticRule("R1", RuleResult{
				Triggered: true,
				Flags:     map[string]bool{"critical": true},
				Reasons:   []string{"first reason"},
			}),
			staticRule("R2", RuleResult{
				// Not triggered: flags and reasons must be ignored.
				Flags:   map[string]bool{"ignored": true},
				Reasons: []string{"ignored reason"},
			}),
		},
		Clock: fixedClock,
	}

	d, err := Evaluate(cfg, Record{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !d.Flags["critical"] {
		t.Error("triggered rule's flag missing")
	}
	if d.Flags["ignored"] {
		t.Error("untriggered rule's flag applied")
	}
	if len(d.Reasons) != 1 || d.Reasons[0] != "first reason" {
		t.Errorf("reasons = %v", d.Reasons)
	}
}

func TestEvaluateAuditCoversEveryRule(t *testing.T) {
	cfg := Config{
		Engine:  "test_engine",
		Default: Proposal{Value: "LOW", Rank: 0},
		Rules: []Rule{
			staticRule("R1", RuleResult{Triggered: true, Detail: "fired"}),
			staticRule("R2", RuleResult{Detail: "quiet"}),
		},
		Clock: fixedClock,
	}

	d, err := Evaluate(cfg, Record{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(d.AllRules) != 2 {
		t.Fatalf("audit rows = %d, want 2", len(d.AllRules))
	}
	if !d.AllRules[0].Triggered || d.AllRules[0].Detail != "fired" {
		t.Errorf("audit[0] = %+v", d.AllRules[0])
	}
	if d.AllRules[1].Triggered {
		t.Error("quiet rule audited as triggered")
	}
}

func TestEvaluateSurfacesInvalidInput(t *testing.T) {
	cfg := Config{
		Engine:  "test_engine",
		Default: Proposal{Value: "LOW", Rank: 0},
		Rules: []Rule{
			{
				ID:   "R1",
				Text: "reads a numeric field",
				Eval: func(in Record, st *State) (RuleResult, error) {
					if _, err := in.Float("score", 0); err != nil {
						return RuleResult{}, err
					}
					return RuleResult{}, nil
				},
			},
		},
		Clock: fixedClock,
	}

	_, err := Evaluate(cfg, Record{"score": "not-a-number"})
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidInputError", err)
	}
	if invalid.Field != "score" {
		t.Errorf("error field = %q", invalid.Field)
	}
}
