package attest

import (
	"log/slog"
	"time"

	"attestor-hq/attestor/pkg/compliance"
	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/graph"
	"attestor-hq/attestor/pkg/policy"
	"attestor-hq/attestor/pkg/verify"
)

// GraphBuilder constructs the reason graph mirroring the rule firings of a
// finished decision. Builders must be deterministic: the same (input,
// decision) pair always yields the same graph.
type GraphBuilder func(in engine.Record, d *engine.Decision) *graph.Graph

// Engine is one domain decision engine: a sealed policy, an ordered rule
// list, and a graph builder, bound to the shared evaluation pipeline.
type Engine struct {
	cfg        engine.Config
	policy     *policy.Policy
	secret     policy.Secret
	buildGraph GraphBuilder
	checker    *compliance.Checker
	logger     *slog.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock injects the evaluation clock. Tests use it to pin decision
// timestamps; production uses the default time.Now.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.cfg.Clock = clock
		e.checker = compliance.NewCheckerWithClock(e.policy, clock)
	}
}

// New binds a domain engine to the shared pipeline. The policy must
// already be sealed; the secret must be the same one the policy was sealed
// under, since all proof signatures share it.
func New(cfg engine.Config, p *policy.Policy, secret policy.Secret, buildGraph GraphBuilder, opts ...Option) *Engine {
	e := &Engine{
		cfg:        cfg,
		policy:     p,
		secret:     secret,
		buildGraph: buildGraph,
		checker:    compliance.NewChecker(p),
		logger:     slog.Default().With("component", "attest."+cfg.Engine),
	}

	if secret.Default {
		e.logger.Warn("no HMAC secret configured, using default literal",
			"policy", p.Name,
		)
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return e.cfg.Engine
}

// Policy returns the engine's sealed policy.
func (e *Engine) Policy() *policy.Policy {
	return e.policy
}

// Evaluate runs the full pipeline: rule fold, reason graph, proof triad,
// bundle assembly. It is the sole contract surface callers use.
//
// The only error path is an InvalidInputError from field coercion (or a
// canonical-serialization failure, which indicates misconfiguration). A
// bundle with overall_result FAILED is a normal, successful return.
func (e *Engine) Evaluate(in engine.Record) (*engine.Result, error) {
	decision, err := engine.Evaluate(e.cfg, in)
	if err != nil {
		return nil, err
	}

	g := e.buildGraph(in, decision)

	poo, err := verify.GeneratePoO(in, e.policy.Name, decision.Timestamp, e.secret.Key)
	if err != nil {
		return nil, err
	}

	por, err := verify.NewPoR(g, e.secret.Key)
	if err != nil {
		return nil, err
	}

	poi := e.checker.Verify(in, decision)
	bundle := verify.Assemble(poo, por, poi, e.secret.Key)

	e.logger.Debug("evaluation complete",
		"outcome", decision.Outcome,
		"overall_result", bundle.OverallResult,
		"bundle_id", bundle.BundleID,
	)

	return &engine.Result{Decision: decision, Bundle: bundle}, nil
}
