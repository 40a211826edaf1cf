package legal

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
)

// Policy identity. The declaration timestamp is fixed to a point before
// any possible decision, which is what makes temporal precedence provable.
const (
	PolicyName      = "legal-compliance-policy-v1"
	PolicyAuthority = "General Counsel"
	DeclaredAt      = "2024-01-01T00:00:00.000Z"
)

// NewPolicy seals the legal constraint table under the given secret.
func NewPolicy(secret policy.Secret) (*policy.Policy, error) {
	return policy.New(PolicyName, PolicyAuthority, DeclaredAt, constraints(), secret.Key)
}

func constraints() []policy.Constraint {
	return []policy.Constraint{
		{
			ID:       "C1",
			Name:     "Sanctions Bar",
			Rule:     "sanctions_match implies status NON_COMPLIANT",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				guard := in.BoolOr("sanctions_match", false)
				satisfied := !guard || d.Outcome == StatusNonCompliant
				return satisfied, guard, fmt.Sprintf("sanctions_match %v, status %s", guard, d.Outcome)
			},
		},
		{
			ID:       "C2",
			Name:     "Violations Bar",
			Rule:     "regulatory_violations >= 3 implies status NON_COMPLIANT",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				violations := in.IntOr("regulatory_violations", 0)
				guard := violations >= ViolationsBarCount
				satisfied := !guard || d.Outcome == StatusNonCompliant
				return satisfied, guard, fmt.Sprintf("regulatory_violations %d, status %s", violations, d.Outcome)
			},
		},
		{
			ID:       "C3",
			Name:     "Disclosure Floor",
			Rule:     "disclosure_completeness < 0.5 implies status NON_COMPLIANT",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				disclosure := engine.Clamp01(in.FloatOr("disclosure_completeness", 0.5))
				guard := disclosure < NondisclosureLevel
				satisfied := !guard || d.Outcome == StatusNonCompliant
				return satisfied, guard, fmt.Sprintf("disclosure_completeness %.2f, status %s", disclosure, d.Outcome)
			},
		},
		{
			ID:       "C4",
			Name:     "Contract Risk Advisory",
			Rule:     "contract_risk_score > 0.8 warrants counsel review of terms",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				risk := engine.Clamp01(in.FloatOr("contract_risk_score", 0.5))
				triggered := risk > HighContractRisk
				return true, triggered, fmt.Sprintf("contract_risk_score %.2f", risk)
			},
		},
		{
			ID:       "C5",
			Name:     "Litigation Advisory",
			Rule:     "litigation_history >= 2 warrants a dispute posture review",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				litigation := in.IntOr("litigation_history", 0)
				triggered := litigation >= LitigationHistoryCount
				return true, triggered, fmt.Sprintf("litigation_history %d", litigation)
			},
		},
	}
}
