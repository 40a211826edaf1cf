package govservice

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
)

// Determination outcomes, ranked by severity.
const (
	DeterminationGranted = "GRANTED"
	DeterminationPending = "PENDING_DOCUMENTS"
	DeterminationRefused = "REFUSED"
)

const (
	rankGranted = iota
	rankPending
	rankRefused
)

// Thresholds shared by the rule evaluator and the compliance checker.
const (
	IncomeRefusalRatio      = 1.5
	WeakDocumentationLevel  = 0.5
	EligibilityRefusalFloor = 0.2
	UrgentEligibilityFloor  = 0.5
	StrongEligibilityLevel  = 0.8
	StrongDocumentation     = 0.8
	LargeHouseholdSize      = 5
	EntitlementHighBand     = 0.7
	EntitlementLowBand      = 0.4
	EscalationTriggerMin    = 3
)

// Entitlement composite weights. The income component decays linearly
// from ratio 0 to the refusal ceiling.
const (
	entitlementEligibilityWeight   = 0.40
	entitlementIncomeWeight        = 0.30
	entitlementDocumentationWeight = 0.30
)

func proposal(value string, rank int) *engine.Proposal {
	return &engine.Proposal{Value: value, Rank: rank}
}

func rules() []engine.Rule {
	return []engine.Rule{
		{
			ID:   "G1",
			Text: "a prior fraud finding mandates REFUSED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				fraud, err := in.Bool("prior_fraud", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if fraud {
					return engine.RuleResult{
						Triggered: true,
						Detail:    "prior_fraud true",
						Outcome:   proposal(DeterminationRefused, rankRefused),
						Flags:     map[string]bool{"fraud_bar": true},
						Reasons:   []string{"prior fraud finding bars the applicant"},
					}, nil
				}
				return engine.RuleResult{Detail: "prior_fraud false"}, nil
			},
		},
		{
			ID:   "G2",
			Text: "income_ratio > 1.5 mandates REFUSED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				ratio, err := in.FloatIn("income_ratio", 1.0, 0, 100)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if ratio > IncomeRefusalRatio {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("income_ratio %.2f > %.2f", ratio, IncomeRefusalRatio),
						Outcome:   proposal(DeterminationRefused, rankRefused),
						Reasons:   []string{"household income exceeds the program ceiling"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("income_ratio %.2f <= %.2f", ratio, IncomeRefusalRatio),
				}, nil
			},
		},
		{
			ID:   "G3",
			Text: "unverified residency requires PENDING_DOCUMENTS",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				verified, err := in.Bool("residency_verified", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if !verified {
					return engine.RuleResult{
						Triggered: true,
						Detail:    "residency_verified false",
						Outcome:   proposal(DeterminationPending, rankPending),
						Flags:     map[string]bool{"residency_unverified": true},
						Reasons:   []string{"residency has not been verified"},
					}, nil
				}
				return engine.RuleResult{Detail: "residency_verified true"}, nil
			},
		},
		{
			ID:   "G4",
			Text: "documentation_score < 0.5 requires PENDING_DOCUMENTS",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				docs, err := in.FloatIn("documentation_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if docs < WeakDocumentationLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("documentation_score %.2f < %.2f", docs, WeakDocumentationLevel),
						Outcome:   proposal(DeterminationPending, rankPending),
						Reasons:   []string{"supporting documentation is incomplete"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("documentation_score %.2f >= %.2f", docs, WeakDocumentationLevel),
				}, nil
			},
		},
		{
			ID:   "G5",
			Text: "eligibility_score < 0.2 mandates REFUSED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				eligibility, err := in.FloatIn("eligibility_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if eligibility < EligibilityRefusalFloor {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("eligibility_score %.2f < %.2f", eligibility, EligibilityRefusalFloor),
						Outcome:   proposal(DeterminationRefused, rankRefused),
						Reasons:   []string{"eligibility score below the program floor"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("eligibility_score %.2f >= %.2f", eligibility, EligibilityRefusalFloor),
				}, nil
			},
		},
		{
			ID:   "G6",
			Text: "urgent need with verified residency and eligibility >= 0.5 grants expedited",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				urgent, err := in.Bool("urgent_need", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				verified, err := in.Bool("residency_verified", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				eligibility, err := in.FloatIn("eligibility_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if urgent && verified && eligibility >= UrgentEligibilityFloor {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("urgent_need true, residency_verified true, eligibility_score %.2f >= %.2f", eligibility, UrgentEligibilityFloor),
						Outcome:   proposal(DeterminationGranted, rankGranted),
						Flags:     map[string]bool{"expedited": true},
						Reasons:   []string{"expedited grant on urgent need"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("urgent_need %v, residency_verified %v, eligibility_score %.2f", urgent, verified, eligibility),
				}, nil
			},
		},
		{
			ID:   "G7",
			Text: "entitlement composite >= 0.7 GRANTED, < 0.4 PENDING_DOCUMENTS",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				entitlement, err := entitlementScore(in)
				if err != nil {
					return engine.RuleResult{}, err
				}
				st.SetScore("entitlement_score", entitlement)

				detail := fmt.Sprintf("entitlement_score %.2f (GRANTED >= %.2f, PENDING_DOCUMENTS < %.2f)",
					entitlement, EntitlementHighBand, EntitlementLowBand)

				switch {
				case entitlement >= EntitlementHighBand:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(DeterminationGranted, rankGranted),
						Reasons:   []string{"entitlement composite in GRANTED band"},
					}, nil
				case entitlement < EntitlementLowBand:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(DeterminationPending, rankPending),
						Reasons:   []string{"entitlement composite below documentation floor"},
					}, nil
				default:
					return engine.RuleResult{Detail: detail}, nil
				}
			},
		},
		{
			ID:   "G8",
			Text: "a household of five or more is noted for priority handling",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				size, err := in.Int("household_size", 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if size >= LargeHouseholdSize {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("household_size %d >= %d", size, LargeHouseholdSize),
						Flags:     map[string]bool{"large_household": true},
						Reasons:   []string{"large household qualifies for priority handling"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("household_size %d < %d", size, LargeHouseholdSize),
				}, nil
			},
		},
		{
			ID:   "G9",
			Text: "strong eligibility and documentation with verified residency grant the service",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				eligibility, err := in.FloatIn("eligibility_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				docs, err := in.FloatIn("documentation_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				verified, err := in.Bool("residency_verified", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if eligibility >= StrongEligibilityLevel && docs >= StrongDocumentation && verified {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("eligibility_score %.2f >= %.2f, documentation_score %.2f >= %.2f, residency_verified true", eligibility, StrongEligibilityLevel, docs, StrongDocumentation),
						Outcome:   proposal(DeterminationGranted, rankGranted),
						Reasons:   []string{"strong eligibility profile"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("eligibility_score %.2f, documentation_score %.2f, residency_verified %v", eligibility, docs, verified),
				}, nil
			},
		},
		{
			ID:   "G10",
			Text: "three or more triggered rules escalate GRANTED to PENDING_DOCUMENTS",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				if st.Triggers >= EscalationTriggerMin {
					var outcome *engine.Proposal
					if cur := st.Outcome(); cur == nil || cur.Rank == rankGranted {
						outcome = proposal(DeterminationPending, rankPending)
					}
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("%d prior rule triggers >= %d", st.Triggers, EscalationTriggerMin),
						Outcome:   outcome,
						Flags:     map[string]bool{"multi_trigger_escalation": true},
						Reasons:   []string{"multiple independent eligibility findings"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("%d prior rule triggers < %d", st.Triggers, EscalationTriggerMin),
				}, nil
			},
		},
	}
}

// entitlementScore computes the fixed linear entitlement composite,
// clamped to [0,1] and rounded to two decimals.
func entitlementScore(in engine.Record) (float64, error) {
	eligibility, err := in.FloatIn("eligibility_score", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}
	ratio, err := in.FloatIn("income_ratio", 1.0, 0, 100)
	if err != nil {
		return 0, err
	}
	docs, err := in.FloatIn("documentation_score", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}

	incomeFit := engine.Clamp01(1 - ratio/IncomeRefusalRatio)

	entitlement := entitlementEligibilityWeight*eligibility +
		entitlementIncomeWeight*incomeFit +
		entitlementDocumentationWeight*docs

	return engine.Round2(engine.Clamp01(entitlement)), nil
}
