package compliance

import (
	"fmt"
	"time"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
	"attestor-hq/attestor/pkg/verify"
)

// Checker replays a sealed policy's constraints against decisions.
type Checker struct {
	policy *policy.Policy
	clock  func() time.Time
}

// NewChecker creates a compliance checker for the given policy.
func NewChecker(p *policy.Policy) *Checker {
	return &Checker{policy: p, clock: time.Now}
}

// NewCheckerWithClock creates a checker with an injected clock, used by
// tests that need a fixed verification time.
func NewCheckerWithClock(p *policy.Policy, clock func() time.Time) *Checker {
	return &Checker{policy: p, clock: clock}
}

// Verify replays every declared constraint against the decision and input
// and appends the synthetic temporal precedence row. all_satisfied is the
// AND over the satisfied flags of mandatory constraints only; warnings
// never block.
func (c *Checker) Verify(in engine.Record, d *engine.Decision) *verify.PoI {
	results := make([]verify.ConstraintResult, 0, len(c.policy.Constraints)+1)
	allSatisfied := true

	for _, constraint := range c.policy.Constraints {
		satisfied, triggered, detail := constraint.Check(in, d)

		result := verify.ConstraintResult{
			Constraint: constraint.Name,
			Severity:   string(constraint.Severity),
			Detail:     detail,
		}

		switch constraint.Severity {
		case policy.SeverityWarning:
			// Warnings are informational: always satisfied, annotated
			// with whether the guard fired.
			result.Satisfied = true
			t := triggered
			result.Triggered = &t
		default:
			result.Satisfied = satisfied
			if !satisfied {
				allSatisfied = false
			}
		}

		results = append(results, result)
	}

	temporal := c.temporalResult(d)
	if !temporal.Satisfied {
		allSatisfied = false
	}
	results = append(results, temporal)

	return &verify.PoI{
		Policy:           c.policy.Name,
		PolicyHash:       c.policy.Hash,
		DeclarationTime:  c.policy.DeclaredAt,
		VerificationTime: verify.FormatTimestamp(c.clock()),
		AllSatisfied:     allSatisfied,
		Results:          results,
	}
}

// temporalResult builds the synthetic row verifying that the policy was
// declared strictly before the decision. Both timestamps are zero-padded
// UTC ISO-8601, so string comparison is chronologically valid.
func (c *Checker) temporalResult(d *engine.Decision) verify.ConstraintResult {
	satisfied := c.policy.DeclaredAt < d.Timestamp
	return verify.ConstraintResult{
		Constraint: verify.TemporalConstraintName,
		Satisfied:  satisfied,
		Severity:   string(policy.SeverityMandatory),
		Detail: fmt.Sprintf("policy declared %s, decision at %s",
			c.policy.DeclaredAt, d.Timestamp),
	}
}
