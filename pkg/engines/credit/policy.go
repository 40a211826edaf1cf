package credit

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
)

// Policy identity. The declaration timestamp is fixed to a point before
// any possible decision, which is what makes temporal precedence provable.
const (
	PolicyName      = "credit-assessment-policy-v1"
	PolicyAuthority = "Chief Credit Officer"
	DeclaredAt      = "2024-01-01T00:00:00.000Z"
)

// NewPolicy seals the credit constraint table under the given secret.
func NewPolicy(secret policy.Secret) (*policy.Policy, error) {
	return policy.New(PolicyName, PolicyAuthority, DeclaredAt, constraints(), secret.Key)
}

func constraints() []policy.Constraint {
	return []policy.Constraint{
		{
			ID:       "C1",
			Name:     "Credit Floor",
			Rule:     "credit_score < 500 implies recommendation DENIED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				score := engine.Clamp(in.FloatOr("credit_score", 600), CreditScoreMin, CreditScoreMax)
				guard := score < CreditScoreFloor
				satisfied := !guard || d.Outcome == RecommendationDenied
				return satisfied, guard, fmt.Sprintf("credit_score %.0f, recommendation %s", score, d.Outcome)
			},
		},
		{
			ID:       "C2",
			Name:     "Debt Ceiling",
			Rule:     "debt_to_income > 0.6 implies recommendation DENIED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				dti := engine.Clamp01(in.FloatOr("debt_to_income", 0.35))
				guard := dti > DenialDTI
				satisfied := !guard || d.Outcome == RecommendationDenied
				return satisfied, guard, fmt.Sprintf("debt_to_income %.2f, recommendation %s", dti, d.Outcome)
			},
		},
		{
			ID:       "C3",
			Name:     "Default History Bar",
			Rule:     "prior_defaults >= 2 implies recommendation DENIED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				defaults := in.IntOr("prior_defaults", 0)
				guard := defaults >= DenialDefaults
				satisfied := !guard || d.Outcome == RecommendationDenied
				return satisfied, guard, fmt.Sprintf("prior_defaults %d, recommendation %s", defaults, d.Outcome)
			},
		},
		{
			ID:       "C4",
			Name:     "Loan Proportionality Advisory",
			Rule:     "loan_amount above 5x annual_income warrants underwriter attention",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				loan := in.FloatOr("loan_amount", 10000)
				income := in.FloatOr("annual_income", 40000)
				triggered := loan > LoanIncomeMultiple*income
				return true, triggered, fmt.Sprintf("loan_amount %.0f, annual_income %.0f", loan, income)
			},
		},
		{
			ID:       "C5",
			Name:     "Subprime Advisory",
			Rule:     "credit_score in [500, 580) warrants enhanced documentation",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				score := engine.Clamp(in.FloatOr("credit_score", 600), CreditScoreMin, CreditScoreMax)
				triggered := score >= CreditScoreFloor && score < SubprimeCeiling
				return true, triggered, fmt.Sprintf("credit_score %.0f", score)
			},
		},
	}
}
