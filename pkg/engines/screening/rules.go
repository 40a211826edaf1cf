package screening

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
)

// Recommendation outcomes, ranked by severity.
const (
	RecommendationRecommended    = "RECOMMENDED"
	RecommendationFurtherReview  = "FURTHER_REVIEW"
	RecommendationNotRecommended = "NOT_RECOMMENDED"
)

const (
	rankRecommended = iota
	rankFurtherReview
	rankNotRecommended
)

// Thresholds shared by the rule evaluator and the compliance checker.
const (
	SkillDisqualifyLevel   = 0.3
	InterviewDisqualify    = 0.3
	WeakReferenceLevel     = 0.4
	MinExperienceYears     = 1.0
	StrongSkillLevel       = 0.8
	StrongInterviewLevel   = 0.8
	AdvancedEducationLevel = 5.0
	LowEducationLevel      = 2.0
	UnderqualifiedSkill    = 0.5
	FitHighBand            = 0.75
	FitLowBand             = 0.45
	EducationFloor         = 1.0
	EducationCeiling       = 5.0
	EscalationTriggerMin   = 3
)

// Fit composite weights.
const (
	fitSkillWeight      = 0.35
	fitInterviewWeight  = 0.25
	fitReferenceWeight  = 0.20
	fitExperienceWeight = 0.10
	fitEducationWeight  = 0.10
	experienceCeiling   = 10.0
)

func proposal(value string, rank int) *engine.Proposal {
	return &engine.Proposal{Value: value, Rank: rank}
}

func rules() []engine.Rule {
	return []engine.Rule{
		{
			ID:   "E1",
			Text: "skill_match_score < 0.3 mandates NOT_RECOMMENDED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				skill, err := in.FloatIn("skill_match_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if skill < SkillDisqualifyLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("skill_match_score %.2f < %.2f", skill, SkillDisqualifyLevel),
						Outcome:   proposal(RecommendationNotRecommended, rankNotRecommended),
						Flags:     map[string]bool{"disqualified": true},
						Reasons:   []string{"skill match below the screening floor"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("skill_match_score %.2f >= %.2f", skill, SkillDisqualifyLevel),
				}, nil
			},
		},
		{
			ID:   "E2",
			Text: "a failed background check mandates NOT_RECOMMENDED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				failed, err := in.Bool("background_check_failed", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if failed {
					return engine.RuleResult{
						Triggered: true,
						Detail:    "background_check_failed true",
						Outcome:   proposal(RecommendationNotRecommended, rankNotRecommended),
						Flags:     map[string]bool{"disqualified": true},
						Reasons:   []string{"failed background check"},
					}, nil
				}
				return engine.RuleResult{Detail: "background_check_failed false"}, nil
			},
		},
		{
			ID:   "E3",
			Text: "interview_score < 0.3 mandates NOT_RECOMMENDED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				interview, err := in.FloatIn("interview_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if interview < InterviewDisqualify {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("interview_score %.2f < %.2f", interview, InterviewDisqualify),
						Outcome:   proposal(RecommendationNotRecommended, rankNotRecommended),
						Reasons:   []string{"interview performance below the screening floor"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("interview_score %.2f >= %.2f", interview, InterviewDisqualify),
				}, nil
			},
		},
		{
			ID:   "E4",
			Text: "reference_score < 0.4 requires FURTHER_REVIEW",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				reference, err := in.FloatIn("reference_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if reference < WeakReferenceLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("reference_score %.2f < %.2f", reference, WeakReferenceLevel),
						Outcome:   proposal(RecommendationFurtherReview, rankFurtherReview),
						Reasons:   []string{"weak references"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("reference_score %.2f >= %.2f", reference, WeakReferenceLevel),
				}, nil
			},
		},
		{
			ID:   "E5",
			Text: "experience under one year requires FURTHER_REVIEW",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				years, err := in.FloatIn("experience_years", 3, 0, 60)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if years < MinExperienceYears {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("experience_years %.1f < %.0f", years, MinExperienceYears),
						Outcome:   proposal(RecommendationFurtherReview, rankFurtherReview),
						Reasons:   []string{"insufficient professional experience"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("experience_years %.1f >= %.0f", years, MinExperienceYears),
				}, nil
			},
		},
		{
			ID:   "E6",
			Text: "strong skill and interview (both >= 0.8) recommend the candidate",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				skill, err := in.FloatIn("skill_match_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				interview, err := in.FloatIn("interview_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if skill >= StrongSkillLevel && interview >= StrongInterviewLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("skill_match_score %.2f >= %.2f and interview_score %.2f >= %.2f", skill, StrongSkillLevel, interview, StrongInterviewLevel),
						Outcome:   proposal(RecommendationRecommended, rankRecommended),
						Reasons:   []string{"strong skill match and interview performance"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("skill_match_score %.2f, interview_score %.2f", skill, interview),
				}, nil
			},
		},
		{
			ID:   "E7",
			Text: "fit composite >= 0.75 RECOMMENDED, < 0.45 FURTHER_REVIEW",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				fit, err := fitScore(in)
				if err != nil {
					return engine.RuleResult{}, err
				}
				st.SetScore("fit_score", fit)

				detail := fmt.Sprintf("fit_score %.2f (RECOMMENDED >= %.2f, FURTHER_REVIEW < %.2f)",
					fit, FitHighBand, FitLowBand)

				switch {
				case fit >= FitHighBand:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(RecommendationRecommended, rankRecommended),
						Reasons:   []string{"fit composite in RECOMMENDED band"},
					}, nil
				case fit < FitLowBand:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(RecommendationFurtherReview, rankFurtherReview),
						Reasons:   []string{"fit composite below review floor"},
					}, nil
				default:
					return engine.RuleResult{Detail: detail}, nil
				}
			},
		},
		{
			ID:   "E8",
			Text: "doctoral-level education is noted in favor of the candidate",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				education, err := in.FloatIn("education_level", 3, EducationFloor, EducationCeiling)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if education >= AdvancedEducationLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("education_level %.0f >= %.0f", education, AdvancedEducationLevel),
						Flags:     map[string]bool{"advanced_education": true},
						Reasons:   []string{"advanced academic credentials"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("education_level %.0f < %.0f", education, AdvancedEducationLevel),
				}, nil
			},
		},
		{
			ID:   "E9",
			Text: "low education with weak skill match requires FURTHER_REVIEW",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				education, err := in.FloatIn("education_level", 3, EducationFloor, EducationCeiling)
				if err != nil {
					return engine.RuleResult{}, err
				}
				skill, err := in.FloatIn("skill_match_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if education < LowEducationLevel && skill < UnderqualifiedSkill {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("education_level %.0f < %.0f and skill_match_score %.2f < %.2f", education, LowEducationLevel, skill, UnderqualifiedSkill),
						Outcome:   proposal(RecommendationFurtherReview, rankFurtherReview),
						Flags:     map[string]bool{"underqualified": true},
						Reasons:   []string{"qualifications below the role profile"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("education_level %.0f, skill_match_score %.2f", education, skill),
				}, nil
			},
		},
		{
			ID:   "E10",
			Text: "three or more triggered rules escalate RECOMMENDED to FURTHER_REVIEW",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				if st.Triggers >= EscalationTriggerMin {
					var outcome *engine.Proposal
					if cur := st.Outcome(); cur == nil || cur.Rank == rankRecommended {
						outcome = proposal(RecommendationFurtherReview, rankFurtherReview)
					}
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("%d prior rule triggers >= %d", st.Triggers, EscalationTriggerMin),
						Outcome:   outcome,
						Flags:     map[string]bool{"multi_trigger_escalation": true},
						Reasons:   []string{"multiple independent screening findings"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("%d prior rule triggers < %d", st.Triggers, EscalationTriggerMin),
				}, nil
			},
		},
	}
}

// fitScore computes the fixed linear fit composite, clamped to [0,1] and
// rounded to two decimals.
func fitScore(in engine.Record) (float64, error) {
	skill, err := in.FloatIn("skill_match_score", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}
	interview, err := in.FloatIn("interview_score", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}
	reference, err := in.FloatIn("reference_score", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}
	years, err := in.FloatIn("experience_years", 3, 0, 60)
	if err != nil {
		return 0, err
	}
	education, err := in.FloatIn("education_level", 3, EducationFloor, EducationCeiling)
	if err != nil {
		return 0, err
	}

	educationNorm := (education - EducationFloor) / (EducationCeiling - EducationFloor)

	fit := fitSkillWeight*skill +
		fitInterviewWeight*interview +
		fitReferenceWeight*reference +
		fitExperienceWeight*engine.Clamp01(years/experienceCeiling) +
		fitEducationWeight*educationNorm

	return engine.Round2(engine.Clamp01(fit)), nil
}
