package triage

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
)

// Policy identity. The declaration timestamp is fixed to a point before
// any possible decision, which is what makes temporal precedence provable.
const (
	PolicyName      = "medical-triage-policy-v1"
	PolicyAuthority = "Chief Medical Officer"
	DeclaredAt      = "2024-01-01T00:00:00.000Z"
)

// NewPolicy seals the triage constraint table under the given secret.
func NewPolicy(secret policy.Secret) (*policy.Policy, error) {
	return policy.New(PolicyName, PolicyAuthority, DeclaredAt, constraints(), secret.Key)
}

func constraints() []policy.Constraint {
	return []policy.Constraint{
		{
			ID:       "C1",
			Name:     "Critical Vitals",
			Rule:     "vital_score < 0.5 implies priority HIGH",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				vital := engine.Clamp01(in.FloatOr("vital_score", 0.5))
				guard := vital < CriticalVitalThreshold
				satisfied := !guard || d.Outcome == PriorityHigh
				return satisfied, guard, fmt.Sprintf("vital_score %.2f, priority %s", vital, d.Outcome)
			},
		},
		{
			ID:       "C2",
			Name:     "Elderly Comorbid Floor",
			Rule:     "age >= 65 and comorbidity_index >= 0.5 implies priority not LOW",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				age := engine.Clamp(in.FloatOr("age", 40), 0, 120)
				comorbidity := engine.Clamp01(in.FloatOr("comorbidity_index", 0))
				guard := age >= ElderlyAge && comorbidity >= ElderlyComorbidity
				satisfied := !guard || d.Outcome != PriorityLow
				return satisfied, guard, fmt.Sprintf("age %.0f, comorbidity_index %.2f, priority %s", age, comorbidity, d.Outcome)
			},
		},
		{
			ID:       "C3",
			Name:     "Trauma Escalation",
			Rule:     "trauma_case implies priority HIGH",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				guard := in.BoolOr("trauma_case", false)
				satisfied := !guard || d.Outcome == PriorityHigh
				return satisfied, guard, fmt.Sprintf("trauma_case %v, priority %s", guard, d.Outcome)
			},
		},
		{
			ID:       "C4",
			Name:     "Resource Scarcity Advisory",
			Rule:     "resource_score < 0.2 warrants resource-constrained handling",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				resource := engine.Clamp01(in.FloatOr("resource_score", 0.5))
				triggered := resource < ScarceResourceLevel
				return true, triggered, fmt.Sprintf("resource_score %.2f", resource)
			},
		},
		{
			ID:       "C5",
			Name:     "Extended Wait Advisory",
			Rule:     "wait_time >= 60 minutes warrants escalation review",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				wait := engine.Clamp(in.FloatOr("wait_time", 0), 0, 10000)
				triggered := wait >= LongWaitMinutes
				return true, triggered, fmt.Sprintf("wait_time %.0f minutes", wait)
			},
		},
	}
}
