package govservice

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
)

// Policy identity. The declaration timestamp is fixed to a point before
// any possible decision, which is what makes temporal precedence provable.
const (
	PolicyName      = "government-service-policy-v1"
	PolicyAuthority = "Program Administrator"
	DeclaredAt      = "2024-01-01T00:00:00.000Z"
)

// NewPolicy seals the service constraint table under the given secret.
func NewPolicy(secret policy.Secret) (*policy.Policy, error) {
	return policy.New(PolicyName, PolicyAuthority, DeclaredAt, constraints(), secret.Key)
}

func constraints() []policy.Constraint {
	return []policy.Constraint{
		{
			ID:       "C1",
			Name:     "Fraud Bar",
			Rule:     "prior_fraud implies determination REFUSED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				guard := in.BoolOr("prior_fraud", false)
				satisfied := !guard || d.Outcome == DeterminationRefused
				return satisfied, guard, fmt.Sprintf("prior_fraud %v, determination %s", guard, d.Outcome)
			},
		},
		{
			ID:       "C2",
			Name:     "Income Ceiling",
			Rule:     "income_ratio > 1.5 implies determination REFUSED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				ratio := engine.Clamp(in.FloatOr("income_ratio", 1.0), 0, 100)
				guard := ratio > IncomeRefusalRatio
				satisfied := !guard || d.Outcome == DeterminationRefused
				return satisfied, guard, fmt.Sprintf("income_ratio %.2f, determination %s", ratio, d.Outcome)
			},
		},
		{
			ID:       "C3",
			Name:     "Residency Gate",
			Rule:     "unverified residency implies determination not GRANTED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				guard := !in.BoolOr("residency_verified", false)
				satisfied := !guard || d.Outcome != DeterminationGranted
				return satisfied, guard, fmt.Sprintf("residency_verified %v, determination %s", !guard, d.Outcome)
			},
		},
		{
			ID:       "C4",
			Name:     "Documentation Advisory",
			Rule:     "documentation_score < 0.5 warrants a document request",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				docs := engine.Clamp01(in.FloatOr("documentation_score", 0.5))
				triggered := docs < WeakDocumentationLevel
				return true, triggered, fmt.Sprintf("documentation_score %.2f", docs)
			},
		},
		{
			ID:       "C5",
			Name:     "Household Advisory",
			Rule:     "household_size >= 5 warrants priority handling",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				size := in.IntOr("household_size", 1)
				triggered := size >= LargeHouseholdSize
				return true, triggered, fmt.Sprintf("household_size %d", size)
			},
		},
	}
}
