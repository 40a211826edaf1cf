package credit

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
)

// Recommendation outcomes, ranked by severity.
const (
	RecommendationApproved = "APPROVED"
	RecommendationReview   = "MANUAL_REVIEW"
	RecommendationDenied   = "DENIED"
)

const (
	rankApproved = iota
	rankReview
	rankDenied
)

// Thresholds shared by the rule evaluator and the compliance checker.
const (
	CreditScoreFloor     = 500.0
	CreditScoreMin       = 300.0
	CreditScoreMax       = 850.0
	DenialDTI            = 0.6
	DenialDefaults       = 2
	LoanIncomeMultiple   = 5.0
	MinEmploymentYears   = 1.0
	PrimeScore           = 740.0
	PrimeDTI             = 0.35
	SubprimeCeiling      = 580.0
	ApprovalHighBand     = 0.7
	ApprovalLowBand      = 0.4
	EscalationTriggerMin = 3
)

// Approval composite weights.
const (
	approvalScoreWeight      = 0.35
	approvalCoverageWeight   = 0.25
	approvalDTIWeight        = 0.25
	approvalEmploymentWeight = 0.15
	employmentCeilingYears   = 10.0
	coverageLoanMultiple     = 2.0 // income covering 2x the loan saturates
)

func proposal(value string, rank int) *engine.Proposal {
	return &engine.Proposal{Value: value, Rank: rank}
}

func rules() []engine.Rule {
	return []engine.Rule{
		{
			ID:   "F1",
			Text: "credit_score < 500 mandates DENIED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				score, err := in.FloatIn("credit_score", 600, CreditScoreMin, CreditScoreMax)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if score < CreditScoreFloor {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("credit_score %.0f < %.0f", score, CreditScoreFloor),
						Outcome:   proposal(RecommendationDenied, rankDenied),
						Flags:     map[string]bool{"hard_denial": true},
						Reasons:   []string{"credit score below the lending floor"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("credit_score %.0f >= %.0f", score, CreditScoreFloor),
				}, nil
			},
		},
		{
			ID:   "C2",
			Text: "debt_to_income > 0.6 mandates DENIED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				dti, err := in.FloatIn("debt_to_income", 0.35, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if dti > DenialDTI {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("debt_to_income %.2f > %.2f", dti, DenialDTI),
						Outcome:   proposal(RecommendationDenied, rankDenied),
						Flags:     map[string]bool{"hard_denial": true},
						Reasons:   []string{"debt-to-income ratio exceeds the lending ceiling"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("debt_to_income %.2f <= %.2f", dti, DenialDTI),
				}, nil
			},
		},
		{
			ID:   "C3",
			Text: "two or more prior defaults mandate DENIED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				defaults, err := in.Int("prior_defaults", 0)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if defaults >= DenialDefaults {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("prior_defaults %d >= %d", defaults, DenialDefaults),
						Outcome:   proposal(RecommendationDenied, rankDenied),
						Flags:     map[string]bool{"hard_denial": true},
						Reasons:   []string{"repeated prior defaults"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("prior_defaults %d < %d", defaults, DenialDefaults),
				}, nil
			},
		},
		{
			ID:   "C4",
			Text: "loan_amount above 5x annual_income requires MANUAL_REVIEW",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				loan, err := in.Float("loan_amount", 10000)
				if err != nil {
					return engine.RuleResult{}, err
				}
				income, err := in.Float("annual_income", 40000)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if loan > LoanIncomeMultiple*income {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("loan_amount %.0f > %.0fx annual_income %.0f", loan, LoanIncomeMultiple, income),
						Outcome:   proposal(RecommendationReview, rankReview),
						Reasons:   []string{"loan amount disproportionate to income"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("loan_amount %.0f <= %.0fx annual_income %.0f", loan, LoanIncomeMultiple, income),
				}, nil
			},
		},
		{
			ID:   "C5",
			Text: "employment under one year requires MANUAL_REVIEW",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				years, err := in.FloatIn("employment_years", 3, 0, 60)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if years < MinEmploymentYears {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("employment_years %.1f < %.0f", years, MinEmploymentYears),
						Outcome:   proposal(RecommendationReview, rankReview),
						Reasons:   []string{"insufficient employment history"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("employment_years %.1f >= %.0f", years, MinEmploymentYears),
				}, nil
			},
		},
		{
			ID:   "C6",
			Text: "prime borrowers (score >= 740, dti <= 0.35) are APPROVED",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				score, err := in.FloatIn("credit_score", 600, CreditScoreMin, CreditScoreMax)
				if err != nil {
					return engine.RuleResult{}, err
				}
				dti, err := in.FloatIn("debt_to_income", 0.35, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if score >= PrimeScore && dti <= PrimeDTI {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("credit_score %.0f >= %.0f and debt_to_income %.2f <= %.2f", score, PrimeScore, dti, PrimeDTI),
						Outcome:   proposal(RecommendationApproved, rankApproved),
						Reasons:   []string{"prime borrower profile"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("credit_score %.0f, debt_to_income %.2f", score, dti),
				}, nil
			},
		},
		{
			ID:   "C7",
			Text: "approval composite >= 0.7 APPROVED, < 0.4 MANUAL_REVIEW",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				approval, err := approvalScore(in)
				if err != nil {
					return engine.RuleResult{}, err
				}
				st.SetScore("approval_score", approval)

				detail := fmt.Sprintf("approval_score %.2f (APPROVED >= %.2f, MANUAL_REVIEW < %.2f)",
					approval, ApprovalHighBand, ApprovalLowBand)

				switch {
				case approval >= ApprovalHighBand:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(RecommendationApproved, rankApproved),
						Reasons:   []string{"approval composite in APPROVED band"},
					}, nil
				case approval < ApprovalLowBand:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(RecommendationReview, rankReview),
						Reasons:   []string{"approval composite below review floor"},
					}, nil
				default:
					return engine.RuleResult{Detail: detail}, nil
				}
			},
		},
		{
			ID:   "C8",
			Text: "pledged collateral is noted in favor of the applicant",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				collateral, err := in.Bool("collateral", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if collateral {
					return engine.RuleResult{
						Triggered: true,
						Detail:    "collateral true",
						Flags:     map[string]bool{"collateral_backed": true},
						Reasons:   []string{"application is collateral-backed"},
					}, nil
				}
				return engine.RuleResult{Detail: "collateral false"}, nil
			},
		},
		{
			ID:   "C9",
			Text: "subprime band (500-579) requires MANUAL_REVIEW",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				score, err := in.FloatIn("credit_score", 600, CreditScoreMin, CreditScoreMax)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if score >= CreditScoreFloor && score < SubprimeCeiling {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("credit_score %.0f in subprime band [%.0f, %.0f)", score, CreditScoreFloor, SubprimeCeiling),
						Outcome:   proposal(RecommendationReview, rankReview),
						Flags:     map[string]bool{"subprime": true},
						Reasons:   []string{"subprime credit band"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("credit_score %.0f outside subprime band", score),
				}, nil
			},
		},
		{
			ID:   "C10",
			Text: "three or more triggered rules escalate APPROVED to MANUAL_REVIEW",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				if st.Triggers >= EscalationTriggerMin {
					var outcome *engine.Proposal
					if cur := st.Outcome(); cur == nil || cur.Rank == rankApproved {
						outcome = proposal(RecommendationReview, rankReview)
					}
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("%d prior rule triggers >= %d", st.Triggers, EscalationTriggerMin),
						Outcome:   outcome,
						Flags:     map[string]bool{"multi_trigger_escalation": true},
						Reasons:   []string{"multiple independent risk indicators"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("%d prior rule triggers < %d", st.Triggers, EscalationTriggerMin),
				}, nil
			},
		},
	}
}

// approvalScore computes the fixed linear approval composite, clamped to
// [0,1] and rounded to two decimals.
func approvalScore(in engine.Record) (float64, error) {
	score, err := in.FloatIn("credit_score", 600, CreditScoreMin, CreditScoreMax)
	if err != nil {
		return 0, err
	}
	income, err := in.Float("annual_income", 40000)
	if err != nil {
		return 0, err
	}
	loan, err := in.Float("loan_amount", 10000)
	if err != nil {
		return 0, err
	}
	dti, err := in.FloatIn("debt_to_income", 0.35, 0, 1)
	if err != nil {
		return 0, err
	}
	years, err := in.FloatIn("employment_years", 3, 0, 60)
	if err != nil {
		return 0, err
	}

	scoreNorm := engine.Clamp01((score - CreditScoreMin) / (CreditScoreMax - CreditScoreMin))

	coverage := 1.0
	if loan > 0 {
		coverage = engine.Clamp01(income / (loan * coverageLoanMultiple))
	}

	approval := approvalScoreWeight*scoreNorm +
		approvalCoverageWeight*coverage +
		approvalDTIWeight*(1-dti) +
		approvalEmploymentWeight*engine.Clamp01(years/employmentCeilingYears)

	return engine.Round2(engine.Clamp01(approval)), nil
}
