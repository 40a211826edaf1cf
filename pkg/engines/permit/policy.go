package permit

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
)

// Policy identity. The declaration timestamp is fixed to a point before
// any possible decision, which is what makes temporal precedence provable.
const (
	PolicyName      = "building-permit-policy-v1"
	PolicyAuthority = "Chief Building Inspector"
	DeclaredAt      = "2024-01-01T00:00:00.000Z"
)

// NewPolicy seals the permit constraint table under the given secret.
func NewPolicy(secret policy.Secret) (*policy.Policy, error) {
	return policy.New(PolicyName, PolicyAuthority, DeclaredAt, constraints(), secret.Key)
}

func constraints() []policy.Constraint {
	return []policy.Constraint{
		{
			ID:       "C1",
			Name:     "Zoning Floor",
			Rule:     "zoning_compliance < 0.4 implies recommendation REJECTED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				zoning := engine.Clamp01(in.FloatOr("zoning_compliance", 0.5))
				guard := zoning < ZoningRejectLevel
				satisfied := !guard || d.Outcome == RecommendationRejected
				return satisfied, guard, fmt.Sprintf("zoning_compliance %.2f, recommendation %s", zoning, d.Outcome)
			},
		},
		{
			ID:       "C2",
			Name:     "Structural Safety Floor",
			Rule:     "structural_safety < 0.5 implies recommendation REJECTED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				structural := engine.Clamp01(in.FloatOr("structural_safety", 0.5))
				guard := structural < StructuralRejectLevel
				satisfied := !guard || d.Outcome == RecommendationRejected
				return satisfied, guard, fmt.Sprintf("structural_safety %.2f, recommendation %s", structural, d.Outcome)
			},
		},
		{
			ID:       "C3",
			Name:     "Fire Safety Floor",
			Rule:     "fire_safety_score < 0.4 implies recommendation REJECTED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				fire := engine.Clamp01(in.FloatOr("fire_safety_score", 0.5))
				guard := fire < FireRejectLevel
				satisfied := !guard || d.Outcome == RecommendationRejected
				return satisfied, guard, fmt.Sprintf("fire_safety_score %.2f, recommendation %s", fire, d.Outcome)
			},
		},
		{
			ID:       "C4",
			Name:     "Environmental Ceiling",
			Rule:     "environmental_impact > 0.8 implies recommendation REJECTED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				impact := engine.Clamp01(in.FloatOr("environmental_impact", 0.5))
				guard := impact > EnvironmentRejectLevel
				satisfied := !guard || d.Outcome == RecommendationRejected
				return satisfied, guard, fmt.Sprintf("environmental_impact %.2f, recommendation %s", impact, d.Outcome)
			},
		},
		{
			ID:       "C5",
			Name:     "Density Advisory",
			Rule:     "plot_coverage_ratio > 0.8 warrants a site plan review",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				coverage := engine.Clamp01(in.FloatOr("plot_coverage_ratio", 0.5))
				triggered := coverage > CoverageRevisionLevel
				return true, triggered, fmt.Sprintf("plot_coverage_ratio %.2f", coverage)
			},
		},
		{
			ID:       "C6",
			Name:     "Heritage Advisory",
			Rule:     "a heritage zone site warrants conservation board review",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				triggered := in.BoolOr("heritage_zone", false)
				return true, triggered, fmt.Sprintf("heritage_zone %v", triggered)
			},
		},
	}
}
