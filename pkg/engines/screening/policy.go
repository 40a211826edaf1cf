package screening

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
)

// Policy identity. The declaration timestamp is fixed to a point before
// any possible decision, which is what makes temporal precedence provable.
const (
	PolicyName      = "employment-screening-policy-v1"
	PolicyAuthority = "Head of Talent Acquisition"
	DeclaredAt      = "2024-01-01T00:00:00.000Z"
)

// NewPolicy seals the screening constraint table under the given secret.
func NewPolicy(secret policy.Secret) (*policy.Policy, error) {
	return policy.New(PolicyName, PolicyAuthority, DeclaredAt, constraints(), secret.Key)
}

func constraints() []policy.Constraint {
	return []policy.Constraint{
		{
			ID:       "C1",
			Name:     "Skill Floor",
			Rule:     "skill_match_score < 0.3 implies recommendation NOT_RECOMMENDED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				skill := engine.Clamp01(in.FloatOr("skill_match_score", 0.5))
				guard := skill < SkillDisqualifyLevel
				satisfied := !guard || d.Outcome == RecommendationNotRecommended
				return satisfied, guard, fmt.Sprintf("skill_match_score %.2f, recommendation %s", skill, d.Outcome)
			},
		},
		{
			ID:       "C2",
			Name:     "Background Check Bar",
			Rule:     "background_check_failed implies recommendation NOT_RECOMMENDED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				guard := in.BoolOr("background_check_failed", false)
				satisfied := !guard || d.Outcome == RecommendationNotRecommended
				return satisfied, guard, fmt.Sprintf("background_check_failed %v, recommendation %s", guard, d.Outcome)
			},
		},
		{
			ID:       "C3",
			Name:     "Interview Floor",
			Rule:     "interview_score < 0.3 implies recommendation NOT_RECOMMENDED",
			Severity: policy.SeverityMandatory,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				interview := engine.Clamp01(in.FloatOr("interview_score", 0.5))
				guard := interview < InterviewDisqualify
				satisfied := !guard || d.Outcome == RecommendationNotRecommended
				return satisfied, guard, fmt.Sprintf("interview_score %.2f, recommendation %s", interview, d.Outcome)
			},
		},
		{
			ID:       "C4",
			Name:     "Reference Advisory",
			Rule:     "reference_score < 0.4 warrants an additional reference round",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				reference := engine.Clamp01(in.FloatOr("reference_score", 0.5))
				triggered := reference < WeakReferenceLevel
				return true, triggered, fmt.Sprintf("reference_score %.2f", reference)
			},
		},
		{
			ID:       "C5",
			Name:     "Experience Advisory",
			Rule:     "experience_years < 1 warrants a probationary arrangement",
			Severity: policy.SeverityWarning,
			Check: func(in engine.Record, d *engine.Decision) (bool, bool, string) {
				years := engine.Clamp(in.FloatOr("experience_years", 3), 0, 60)
				triggered := years < MinExperienceYears
				return true, triggered, fmt.Sprintf("experience_years %.1f", years)
			},
		},
	}
}
