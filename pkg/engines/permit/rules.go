package permit

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
)

// Recommendation outcomes, ranked by severity.
const (
	RecommendationApproved      = "APPROVED"
	RecommendationNeedsRevision = "NEEDS_REVISION"
	RecommendationRejected      = "REJECTED"
)

const (
	rankApproved = iota
	rankNeedsRevision
	rankRejected
)

// Thresholds shared by the rule evaluator and the compliance checker.
const (
	ZoningRejectLevel      = 0.4
	StructuralRejectLevel  = 0.5
	FireRejectLevel        = 0.4
	EnvironmentRejectLevel = 0.8
	CoverageRevisionLevel  = 0.8
	ExemplarySafetyLevel   = 0.9
	ComplianceHighBand     = 0.7
	ComplianceLowBand      = 0.4
	EscalationTriggerMin   = 3
)

// Compliance composite weights. Environmental impact and plot coverage
// enter inverted because lower values are better.
const (
	complianceZoningWeight      = 0.30
	complianceStructuralWeight  = 0.25
	complianceEnvironmentWeight = 0.20
	complianceFireWeight        = 0.15
	complianceCoverageWeight    = 0.10
)

func proposal(value string, rank int) *engine.Proposal {
	return &engine.Proposal{Value: value, Rank: rank}
}

func rules() []engine.Rule {
	return []engine.Rule{
		{
			ID:   "P1",
			Text: "zoning_compliance < 0.4 mandates REJECTED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				zoning, err := in.FloatIn("zoning_compliance", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if zoning < ZoningRejectLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("zoning_compliance %.2f < %.2f", zoning, ZoningRejectLevel),
						Outcome:   proposal(RecommendationRejected, rankRejected),
						Flags:     map[string]bool{"code_violation": true},
						Reasons:   []string{"application violates zoning requirements"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("zoning_compliance %.2f >= %.2f", zoning, ZoningRejectLevel),
				}, nil
			},
		},
		{
			ID:   "P2",
			Text: "structural_safety < 0.5 mandates REJECTED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				structural, err := in.FloatIn("structural_safety", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if structural < StructuralRejectLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("structural_safety %.2f < %.2f", structural, StructuralRejectLevel),
						Outcome:   proposal(RecommendationRejected, rankRejected),
						Flags:     map[string]bool{"code_violation": true},
						Reasons:   []string{"structural design below the safety floor"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("structural_safety %.2f >= %.2f", structural, StructuralRejectLevel),
				}, nil
			},
		},
		{
			ID:   "P3",
			Text: "fire_safety_score < 0.4 mandates REJECTED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				fire, err := in.FloatIn("fire_safety_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if fire < FireRejectLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("fire_safety_score %.2f < %.2f", fire, FireRejectLevel),
						Outcome:   proposal(RecommendationRejected, rankRejected),
						Flags:     map[string]bool{"code_violation": true},
						Reasons:   []string{"fire protection below the safety floor"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("fire_safety_score %.2f >= %.2f", fire, FireRejectLevel),
				}, nil
			},
		},
		{
			ID:   "P4",
			Text: "environmental_impact > 0.8 mandates REJECTED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				impact, err := in.FloatIn("environmental_impact", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if impact > EnvironmentRejectLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("environmental_impact %.2f > %.2f", impact, EnvironmentRejectLevel),
						Outcome:   proposal(RecommendationRejected, rankRejected),
						Reasons:   []string{"environmental impact exceeds the permissible ceiling"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("environmental_impact %.2f <= %.2f", impact, EnvironmentRejectLevel),
				}, nil
			},
		},
		{
			ID:   "P5",
			Text: "plot_coverage_ratio > 0.8 requires NEEDS_REVISION",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				coverage, err := in.FloatIn("plot_coverage_ratio", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if coverage > CoverageRevisionLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("plot_coverage_ratio %.2f > %.2f", coverage, CoverageRevisionLevel),
						Outcome:   proposal(RecommendationNeedsRevision, rankNeedsRevision),
						Reasons:   []string{"plot coverage exceeds the density guideline"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("plot_coverage_ratio %.2f <= %.2f", coverage, CoverageRevisionLevel),
				}, nil
			},
		},
		{
			ID:   "P6",
			Text: "a heritage zone site requires NEEDS_REVISION pending heritage review",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				heritage, err := in.Bool("heritage_zone", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if heritage {
					return engine.RuleResult{
						Triggered: true,
						Detail:    "heritage_zone true",
						Outcome:   proposal(RecommendationNeedsRevision, rankNeedsRevision),
						Flags:     map[string]bool{"heritage_review": true},
						Reasons:   []string{"site falls inside a protected heritage zone"},
					}, nil
				}
				return engine.RuleResult{Detail: "heritage_zone false"}, nil
			},
		},
		{
			ID:   "P7",
			Text: "compliance composite >= 0.7 APPROVED, < 0.4 NEEDS_REVISION",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				compliance, err := complianceScore(in)
				if err != nil {
					return engine.RuleResult{}, err
				}
				st.SetScore("compliance_score", compliance)

				detail := fmt.Sprintf("compliance_score %.2f (APPROVED >= %.2f, NEEDS_REVISION < %.2f)",
					compliance, ComplianceHighBand, ComplianceLowBand)

				switch {
				case compliance >= ComplianceHighBand:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(RecommendationApproved, rankApproved),
						Reasons:   []string{"compliance composite in APPROVED band"},
					}, nil
				case compliance < ComplianceLowBand:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(RecommendationNeedsRevision, rankNeedsRevision),
						Reasons:   []string{"compliance composite below revision floor"},
					}, nil
				default:
					return engine.RuleResult{Detail: detail}, nil
				}
			},
		},
		{
			ID:   "P8",
			Text: "a floodplain site requires NEEDS_REVISION with a mitigation plan",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				flood, err := in.Bool("floodplain", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if flood {
					return engine.RuleResult{
						Triggered: true,
						Detail:    "floodplain true",
						Outcome:   proposal(RecommendationNeedsRevision, rankNeedsRevision),
						Flags:     map[string]bool{"flood_mitigation": true},
						Reasons:   []string{"site lies in a designated floodplain"},
					}, nil
				}
				return engine.RuleResult{Detail: "floodplain false"}, nil
			},
		},
		{
			ID:   "P9",
			Text: "exemplary structural and fire safety (both >= 0.9) is noted",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				structural, err := in.FloatIn("structural_safety", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				fire, err := in.FloatIn("fire_safety_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if structural >= ExemplarySafetyLevel && fire >= ExemplarySafetyLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("structural_safety %.2f and fire_safety_score %.2f >= %.2f", structural, fire, ExemplarySafetyLevel),
						Flags:     map[string]bool{"exemplary_safety": true},
						Reasons:   []string{"safety engineering exceeds code requirements"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("structural_safety %.2f, fire_safety_score %.2f", structural, fire),
				}, nil
			},
		},
		{
			ID:   "P10",
			Text: "three or more triggered rules escalate APPROVED to NEEDS_REVISION",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				if st.Triggers >= EscalationTriggerMin {
					var outcome *engine.Proposal
					if cur := st.Outcome(); cur == nil || cur.Rank == rankApproved {
						outcome = proposal(RecommendationNeedsRevision, rankNeedsRevision)
					}
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("%d prior rule triggers >= %d", st.Triggers, EscalationTriggerMin),
						Outcome:   outcome,
						Flags:     map[string]bool{"multi_trigger_escalation": true},
						Reasons:   []string{"multiple independent review findings"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("%d prior rule triggers < %d", st.Triggers, EscalationTriggerMin),
				}, nil
			},
		},
	}
}

// complianceScore computes the fixed linear compliance composite, clamped
// to [0,1] and rounded to two decimals.
func complianceScore(in engine.Record) (float64, error) {
	zoning, err := in.FloatIn("zoning_compliance", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}
	structural, err := in.FloatIn("structural_safety", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}
	impact, err := in.FloatIn("environmental_impact", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}
	fire, err := in.FloatIn("fire_safety_score", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}
	coverage, err := in.FloatIn("plot_coverage_ratio", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}

	compliance := complianceZoningWeight*zoning +
		complianceStructuralWeight*structural +
		complianceEnvironmentWeight*(1-impact) +
		complianceFireWeight*fire +
		complianceCoverageWeight*(1-coverage)

	return engine.Round2(engine.Clamp01(compliance)), nil
}
