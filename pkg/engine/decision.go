package engine

import "attestor-hq/attestor/pkg/verify"

// RuleAudit is one entry of the decision's audit array: every rule of the
// engine appears exactly once, fired or not, with a rendered detail string
// embedding the actual compared values.
type RuleAudit struct {
	ID        string `json:"id"`
	Rule      string `json:"rule"`
	Triggered bool   `json:"triggered"`
	Detail    string `json:"detail"`
}

// Decision is an engine's output: the primary categorical outcome, derived
// scores, boolean flags, human-readable reasons, the evaluation timestamp,
// and the full per-rule audit array.
type Decision struct {
	Engine      string             `json:"engine"`
	OutcomeName string             `json:"outcome_name"`
	Outcome     string             `json:"outcome"`
	Scores      map[string]float64 `json:"scores"`
	Flags       map[string]bool    `json:"flags"`
	Reasons     []string           `json:"reasons"`
	Timestamp   string             `json:"timestamp"`
	AllRules    []RuleAudit        `json:"allRules"`
}

// Result pairs a decision with its verification bundle. It is the sole
// contract surface external callers consume.
type Result struct {
	Decision *Decision      `json:"decision"`
	Bundle   *verify.Bundle `json:"verification_bundle"`
}
