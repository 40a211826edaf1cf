package legal

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
)

// Status outcomes, ranked by severity.
const (
	StatusCompliant       = "COMPLIANT"
	StatusRequiresCounsel = "REQUIRES_COUNSEL"
	StatusNonCompliant    = "NON_COMPLIANT"
)

const (
	rankCompliant = iota
	rankRequiresCounsel
	rankNonCompliant
)

// Thresholds shared by the rule evaluator and the compliance checker.
const (
	ViolationsBarCount      = 3
	MinorViolationsFloor    = 1
	NondisclosureLevel      = 0.5
	HighContractRisk        = 0.8
	LitigationHistoryCount  = 2
	ComplexJurisdiction     = 0.7
	FullDisclosureLevel     = 0.9
	ComplianceCompliantBand = 0.75
	ComplianceCounselBand   = 0.45
	EscalationTriggerMin    = 3
)

// Compliance composite weights. Violation and litigation counts are
// normalized against a five-incident ceiling and inverted because fewer
// incidents is better.
const (
	complianceViolationWeight  = 0.30
	complianceRiskWeight       = 0.25
	complianceDisclosureWeight = 0.25
	complianceLitigationWeight = 0.20
	incidentCeiling            = 5.0
)

func proposal(value string, rank int) *engine.Proposal {
	return &engine.Proposal{Value: value, Rank: rank}
}

func rules() []engine.Rule {
	return []engine.Rule{
		{
			ID:   "L1",
			Text: "a sanctions list match mandates NON_COMPLIANT",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				match, err := in.Bool("sanctions_match", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if match {
					return engine.RuleResult{
						Triggered: true,
						Detail:    "sanctions_match true",
						Outcome:   proposal(StatusNonCompliant, rankNonCompliant),
						Flags:     map[string]bool{"sanctions": true},
						Reasons:   []string{"counterparty matches a sanctions list"},
					}, nil
				}
				return engine.RuleResult{Detail: "sanctions_match false"}, nil
			},
		},
		{
			ID:   "L2",
			Text: "three or more regulatory violations mandate NON_COMPLIANT",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				violations, err := in.Int("regulatory_violations", 0)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if violations >= ViolationsBarCount {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("regulatory_violations %d >= %d", violations, ViolationsBarCount),
						Outcome:   proposal(StatusNonCompliant, rankNonCompliant),
						Reasons:   []string{"repeated regulatory violations"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("regulatory_violations %d < %d", violations, ViolationsBarCount),
				}, nil
			},
		},
		{
			ID:   "L3",
			Text: "disclosure_completeness < 0.5 mandates NON_COMPLIANT",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				disclosure, err := in.FloatIn("disclosure_completeness", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if disclosure < NondisclosureLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("disclosure_completeness %.2f < %.2f", disclosure, NondisclosureLevel),
						Outcome:   proposal(StatusNonCompliant, rankNonCompliant),
						Flags:     map[string]bool{"material_nondisclosure": true},
						Reasons:   []string{"material nondisclosure"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("disclosure_completeness %.2f >= %.2f", disclosure, NondisclosureLevel),
				}, nil
			},
		},
		{
			ID:   "L4",
			Text: "contract_risk_score > 0.8 requires REQUIRES_COUNSEL",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				risk, err := in.FloatIn("contract_risk_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if risk > HighContractRisk {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("contract_risk_score %.2f > %.2f", risk, HighContractRisk),
						Outcome:   proposal(StatusRequiresCounsel, rankRequiresCounsel),
						Reasons:   []string{"elevated contractual risk"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("contract_risk_score %.2f <= %.2f", risk, HighContractRisk),
				}, nil
			},
		},
		{
			ID:   "L5",
			Text: "two or more prior litigations require REQUIRES_COUNSEL",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				litigation, err := in.Int("litigation_history", 0)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if litigation >= LitigationHistoryCount {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("litigation_history %d >= %d", litigation, LitigationHistoryCount),
						Outcome:   proposal(StatusRequiresCounsel, rankRequiresCounsel),
						Reasons:   []string{"material litigation history"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("litigation_history %d < %d", litigation, LitigationHistoryCount),
				}, nil
			},
		},
		{
			ID:   "L6",
			Text: "jurisdiction_complexity > 0.7 requires REQUIRES_COUNSEL",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				complexity, err := in.FloatIn("jurisdiction_complexity", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if complexity > ComplexJurisdiction {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("jurisdiction_complexity %.2f > %.2f", complexity, ComplexJurisdiction),
						Outcome:   proposal(StatusRequiresCounsel, rankRequiresCounsel),
						Flags:     map[string]bool{"multi_jurisdiction": true},
						Reasons:   []string{"multi-jurisdictional exposure"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("jurisdiction_complexity %.2f <= %.2f", complexity, ComplexJurisdiction),
				}, nil
			},
		},
		{
			ID:   "L7",
			Text: "compliance composite >= 0.75 COMPLIANT, < 0.45 REQUIRES_COUNSEL",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				compliance, err := complianceScore(in)
				if err != nil {
					return engine.RuleResult{}, err
				}
				st.SetScore("compliance_score", compliance)

				detail := fmt.Sprintf("compliance_score %.2f (COMPLIANT >= %.2f, REQUIRES_COUNSEL < %.2f)",
					compliance, ComplianceCompliantBand, ComplianceCounselBand)

				switch {
				case compliance >= ComplianceCompliantBand:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(StatusCompliant, rankCompliant),
						Reasons:   []string{"compliance composite in COMPLIANT band"},
					}, nil
				case compliance < ComplianceCounselBand:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(StatusRequiresCounsel, rankRequiresCounsel),
						Reasons:   []string{"compliance composite below counsel floor"},
					}, nil
				default:
					return engine.RuleResult{Detail: detail}, nil
				}
			},
		},
		{
			ID:   "L8",
			Text: "one or two regulatory violations require REQUIRES_COUNSEL",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				violations, err := in.Int("regulatory_violations", 0)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if violations >= MinorViolationsFloor && violations < ViolationsBarCount {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("regulatory_violations %d in [%d, %d)", violations, MinorViolationsFloor, ViolationsBarCount),
						Outcome:   proposal(StatusRequiresCounsel, rankRequiresCounsel),
						Flags:     map[string]bool{"minor_violations": true},
						Reasons:   []string{"unresolved regulatory findings"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("regulatory_violations %d outside [%d, %d)", violations, MinorViolationsFloor, ViolationsBarCount),
				}, nil
			},
		},
		{
			ID:   "L9",
			Text: "full disclosure with zero violations is noted as a clean record",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				disclosure, err := in.FloatIn("disclosure_completeness", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				violations, err := in.Int("regulatory_violations", 0)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if disclosure >= FullDisclosureLevel && violations == 0 {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("disclosure_completeness %.2f >= %.2f and regulatory_violations %d", disclosure, FullDisclosureLevel, violations),
						Flags:     map[string]bool{"clean_record": true},
						Reasons:   []string{"complete disclosure with a clean regulatory record"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("disclosure_completeness %.2f, regulatory_violations %d", disclosure, violations),
				}, nil
			},
		},
		{
			ID:   "L10",
			Text: "three or more triggered rules escalate COMPLIANT to REQUIRES_COUNSEL",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				if st.Triggers >= EscalationTriggerMin {
					var outcome *engine.Proposal
					if cur := st.Outcome(); cur == nil || cur.Rank == rankCompliant {
						outcome = proposal(StatusRequiresCounsel, rankRequiresCounsel)
					}
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("%d prior rule triggers >= %d", st.Triggers, EscalationTriggerMin),
						Outcome:   outcome,
						Flags:     map[string]bool{"multi_trigger_escalation": true},
						Reasons:   []string{"multiple independent compliance findings"},
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
	violations, err := in.Int("regulatory_violations", 0)
	if err != nil {
		return 0, err
	}
	risk, err := in.FloatIn("contract_risk_score", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}
	litigation, err := in.Int("litigation_history", 0)
	if err != nil {
		return 0, err
	}
	disclosure, err := in.FloatIn("disclosure_completeness", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}

	compliance := complianceViolationWeight*(1-engine.Clamp01(float64(violations)/incidentCeiling)) +
		complianceRiskWeight*(1-risk) +
		complianceDisclosureWeight*disclosure +
		complianceLitigationWeight*(1-engine.Clamp01(float64(litigation)/incidentCeiling))

	return engine.Round2(engine.Clamp01(compliance)), nil
}
