package legal

import (
	"attestor-hq/attestor/pkg/attest"
	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
)

// EngineName identifies this engine in decisions, the ledger, and metrics.
const EngineName = "legal_compliance"

// New constructs the legal compliance engine with its sealed policy.
func New(secret policy.Secret, opts ...attest.Option) (*attest.Engine, error) {
	p, err := NewPolicy(secret)
	if err != nil {
		return nil, err
	}

	cfg := engine.Config{
		Engine:      EngineName,
		OutcomeName: "status",
		Default:     engine.Proposal{Value: StatusRequiresCounsel, Rank: rankRequiresCounsel},
		Rules:       rules(),
	}

	return attest.New(cfg, p, secret, buildGraph, opts...), nil
}
