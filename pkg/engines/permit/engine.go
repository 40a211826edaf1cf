package permit

import (
	"attestor-hq/attestor/pkg/attest"
	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/policy"
)

// EngineName identifies this engine in decisions, the ledger, and metrics.
const EngineName = "building_permit"

// New constructs the building permit engine with its sealed policy.
func New(secret policy.Secret, opts ...attest.Option) (*attest.Engine, error) {
	p, err := NewPolicy(secret)
	if err != nil {
		return nil, err
	}

	cfg := engine.Config{
		Engine:      EngineName,
		OutcomeName: "recommendation",
		Default:     engine.Proposal{Value: RecommendationNeedsRevision, Rank: rankNeedsRevision},
		Rules:       rules(),
	}

	return attest.New(cfg, p, secret, buildGraph, opts...), nil
}
