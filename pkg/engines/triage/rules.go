package triage

import (
	"fmt"

	"attestor-hq/attestor/pkg/engine"
)

// Priority outcomes, ranked by severity. The rank order is what makes the
// escalation-only merge meaningful: HIGH set by a hard rule can never be
// lowered by a later soft rule.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

const (
	rankLow = iota
	rankMedium
	rankHigh
)

// Thresholds shared by the rule evaluator and the compliance checker, so
// the two cannot silently diverge.
const (
	CriticalVitalThreshold = 0.5
	ElderlyAge             = 65
	ElderlyComorbidity     = 0.5
	LongWaitMinutes        = 60.0
	SevereComorbidity      = 0.8
	StableVitalThreshold   = 0.8
	MildComorbidity        = 0.3
	ScarceResourceLevel    = 0.2
	UrgencyHighThreshold   = 0.7
	UrgencyMediumThreshold = 0.4
	EscalationTriggerCount = 3
)

// Urgency composite weights (fixed linear combination).
const (
	urgencyVitalWeight       = 0.40
	urgencyComorbidityWeight = 0.25
	urgencyWaitWeight        = 0.20
	urgencyAgeWeight         = 0.15
	urgencyWaitCeiling       = 120.0 // minutes at which wait saturates
	urgencyAgeCeiling        = 90.0  // years at which age saturates
)

func proposal(value string, rank int) *engine.Proposal {
	return &engine.Proposal{Value: value, Rank: rank}
}

// escalate returns the next priority above the current outcome, or nil
// when already at HIGH.
func escalate(st *engine.State) *engine.Proposal {
	cur := st.Outcome()
	switch {
	case cur == nil || cur.Rank == rankLow:
		return proposal(PriorityMedium, rankMedium)
	case cur.Rank == rankMedium:
		return proposal(PriorityHigh, rankHigh)
	default:
		return nil
	}
}

func rules() []engine.Rule {
	return []engine.Rule{
		{
			ID:   "H1",
			Text: "vital_score < 0.5 mandates HIGH priority and critical flag",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				vital, err := in.FloatIn("vital_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if vital < CriticalVitalThreshold {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("vital_score %.2f < %.2f", vital, CriticalVitalThreshold),
						Outcome:   proposal(PriorityHigh, rankHigh),
						Flags:     map[string]bool{"critical": true},
						Reasons:   []string{"critically low vital score"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("vital_score %.2f >= %.2f", vital, CriticalVitalThreshold),
				}, nil
			},
		},
		{
			ID:   "H2",
			Text: "age >= 65 with comorbidity_index >= 0.5 mandates HIGH priority",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				age, err := in.FloatIn("age", 40, 0, 120)
				if err != nil {
					return engine.RuleResult{}, err
				}
				comorbidity, err := in.FloatIn("comorbidity_index", 0, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if age >= ElderlyAge && comorbidity >= ElderlyComorbidity {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("age %.0f >= %d and comorbidity_index %.2f >= %.2f", age, ElderlyAge, comorbidity, ElderlyComorbidity),
						Outcome:   proposal(PriorityHigh, rankHigh),
						Reasons:   []string{"elderly patient with significant comorbidities"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("age %.0f, comorbidity_index %.2f", age, comorbidity),
				}, nil
			},
		},
		{
			ID:   "H3",
			Text: "wait_time >= 60 minutes escalates priority one level",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				wait, err := in.FloatIn("wait_time", 0, 0, 10000)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if wait >= LongWaitMinutes {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("wait_time %.0f >= %.0f minutes", wait, LongWaitMinutes),
						Outcome:   escalate(st),
						Reasons:   []string{"extended waiting time"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("wait_time %.0f < %.0f minutes", wait, LongWaitMinutes),
				}, nil
			},
		},
		{
			ID:   "H4",
			Text: "trauma case mandates HIGH priority and critical flag",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				trauma, err := in.Bool("trauma_case", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if trauma {
					return engine.RuleResult{
						Triggered: true,
						Detail:    "trauma_case true",
						Outcome:   proposal(PriorityHigh, rankHigh),
						Flags:     map[string]bool{"critical": true},
						Reasons:   []string{"trauma presentation"},
					}, nil
				}
				return engine.RuleResult{Detail: "trauma_case false"}, nil
			},
		},
		{
			ID:   "H5",
			Text: "maternal case mandates HIGH priority",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				maternal, err := in.Bool("maternal_case", false)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if maternal {
					return engine.RuleResult{
						Triggered: true,
						Detail:    "maternal_case true",
						Outcome:   proposal(PriorityHigh, rankHigh),
						Reasons:   []string{"maternal presentation"},
					}, nil
				}
				return engine.RuleResult{Detail: "maternal_case false"}, nil
			},
		},
		{
			ID:   "H6",
			Text: "comorbidity_index >= 0.8 requires at least MEDIUM priority",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				comorbidity, err := in.FloatIn("comorbidity_index", 0, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if comorbidity >= SevereComorbidity {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("comorbidity_index %.2f >= %.2f", comorbidity, SevereComorbidity),
						Outcome:   proposal(PriorityMedium, rankMedium),
						Reasons:   []string{"severe comorbidity burden"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("comorbidity_index %.2f < %.2f", comorbidity, SevereComorbidity),
				}, nil
			},
		},
		{
			ID:   "H7",
			Text: "stable vitals with mild comorbidity baseline LOW priority",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				vital, err := in.FloatIn("vital_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				comorbidity, err := in.FloatIn("comorbidity_index", 0, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if vital >= StableVitalThreshold && comorbidity < MildComorbidity {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("vital_score %.2f >= %.2f and comorbidity_index %.2f < %.2f", vital, StableVitalThreshold, comorbidity, MildComorbidity),
						Outcome:   proposal(PriorityLow, rankLow),
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("vital_score %.2f, comorbidity_index %.2f", vital, comorbidity),
				}, nil
			},
		},
		{
			ID:   "H8",
			Text: "resource_score < 0.2 flags resource-constrained handling",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				resource, err := in.FloatIn("resource_score", 0.5, 0, 1)
				if err != nil {
					return engine.RuleResult{}, err
				}
				if resource < ScarceResourceLevel {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("resource_score %.2f < %.2f", resource, ScarceResourceLevel),
						Flags:     map[string]bool{"resource_constrained": true},
						Reasons:   []string{"ward resources critically scarce"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("resource_score %.2f >= %.2f", resource, ScarceResourceLevel),
				}, nil
			},
		},
		{
			ID:   "H9",
			Text: "urgency composite >= 0.7 HIGH, >= 0.4 MEDIUM, else LOW",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				urgency, err := urgencyScore(in)
				if err != nil {
					return engine.RuleResult{}, err
				}
				st.SetScore("urgency_score", urgency)

				detail := fmt.Sprintf("urgency_score %.2f (HIGH >= %.2f, MEDIUM >= %.2f)",
					urgency, UrgencyHighThreshold, UrgencyMediumThreshold)

				switch {
				case urgency >= UrgencyHighThreshold:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(PriorityHigh, rankHigh),
						Reasons:   []string{"composite urgency in HIGH band"},
					}, nil
				case urgency >= UrgencyMediumThreshold:
					return engine.RuleResult{
						Triggered: true,
						Detail:    detail,
						Outcome:   proposal(PriorityMedium, rankMedium),
						Reasons:   []string{"composite urgency in MEDIUM band"},
					}, nil
				default:
					return engine.RuleResult{
						Detail:  detail,
						Outcome: proposal(PriorityLow, rankLow),
					}, nil
				}
			},
		},
		{
			ID:   "H10",
			Text: "three or more triggered rules escalate priority one level",
			Eval: func(in engine.Record, st *engine.State) (engine.RuleResult, error) {
				if st.Triggers >= EscalationTriggerCount {
					return engine.RuleResult{
						Triggered: true,
						Detail:    fmt.Sprintf("%d prior rule triggers >= %d", st.Triggers, EscalationTriggerCount),
						Outcome:   escalate(st),
						Flags:     map[string]bool{"multi_trigger_escalation": true},
						Reasons:   []string{"multiple independent risk indicators"},
					}, nil
				}
				return engine.RuleResult{
					Detail: fmt.Sprintf("%d prior rule triggers < %d", st.Triggers, EscalationTriggerCount),
				}, nil
			},
		},
	}
}

// urgencyScore computes the fixed linear urgency composite, clamped to
// [0,1] and rounded to two decimals.
func urgencyScore(in engine.Record) (float64, error) {
	vital, err := in.FloatIn("vital_score", 0.5, 0, 1)
	if err != nil {
		return 0, err
	}
	comorbidity, err := in.FloatIn("comorbidity_index", 0, 0, 1)
	if err != nil {
		return 0, err
	}
	wait, err := in.FloatIn("wait_time", 0, 0, 10000)
	if err != nil {
		return 0, err
	}
	age, err := in.FloatIn("age", 40, 0, 120)
	if err != nil {
		return 0, err
	}

	urgency := urgencyVitalWeight*(1-vital) +
		urgencyComorbidityWeight*comorbidity +
		urgencyWaitWeight*engine.Clamp01(wait/urgencyWaitCeiling) +
		urgencyAgeWeight*engine.Clamp01(age/urgencyAgeCeiling)

	return engine.Round2(engine.Clamp01(urgency)), nil
}
