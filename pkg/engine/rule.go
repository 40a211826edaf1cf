package engine

import (
	"time"

	"attestor-hq/attestor/pkg/verify"
)

// Proposal is an outcome proposed by a rule together with its severity
// rank. Ranks are engine-specific; higher means more severe.
type Proposal struct {
	Value string
	Rank  int
}

// RuleResult is what a single rule evaluation yields.
type RuleResult struct {
	// Triggered reports whether the rule's guard condition held.
	Triggered bool

	// Detail is the rendered audit string embedding the actual compared
	// values (e.g. "vital_score 0.30 < 0.50").
	Detail string

	// Outcome is the rule's outcome proposal, nil if the rule does not
	// propose one. Proposals are merged escalation-only.
	Outcome *Proposal

	// Flags are boolean decision flags to set when the rule fired.
	Flags map[string]bool

	// Reasons are human-readable reason strings to append when the rule
	// fired.
	Reasons []string
}

// EvalFunc evaluates one rule against the input and the cumulative state.
// It must be pure apart from reading st, and must return an
// InvalidInputError (not panic, not NaN) on malformed input.
type EvalFunc func(in Record, st *State) (RuleResult, error)

// Rule is a single declared rule: a short id, the human-readable rule
// text, and its evaluation function. Rules are evaluated in declaration
// order because later rules may read cumulative state.
type Rule struct {
	ID   string
	Text string
	Eval EvalFunc
}

// State is the cumulative evaluation state visible to later rules.
type State struct {
	// Triggers is the number of rules that have fired so far. Used by
	// multi-trigger escalation rules.
	Triggers int

	outcome *Proposal
	scores  map[string]float64
	flags   map[string]bool
	reasons []string
}

// Outcome returns the current outcome proposal, nil if none was made yet.
func (s *State) Outcome() *Proposal {
	return s.outcome
}

// SetScore records a derived score. Scores are clamped to [0,1] and
// rounded to two decimals by convention before being recorded.
func (s *State) SetScore(name string, value float64) {
	if s.scores == nil {
		s.scores = make(map[string]float64)
	}
	s.scores[name] = value
}

// Score returns a previously recorded score, 0 if absent.
func (s *State) Score(name string) float64 {
	return s.scores[name]
}

// apply merges a rule result into the state. The outcome merge is
// escalation-only: a proposal replaces the current outcome only when its
// rank is strictly higher, so terminal negative outcomes set early can
// never be downgraded by later rules.
func (s *State) apply(res RuleResult) {
	if res.Triggered {
		s.Triggers++
		for k, v := range res.Flags {
			if s.flags == nil {
				s.flags = make(map[string]bool)
			}
			s.flags[k] = v
		}
		s.reasons = append(s.reasons, res.Reasons...)
	}

	if res.Outcome != nil {
		if s.outcome == nil || res.Outcome.Rank > s.outcome.Rank {
			s.outcome = res.Outcome
		}
	}
}

// Config describes one engine's evaluation: its name, the domain-specific
// outcome field name (e.g. "priority", "recommendation"), the default
// outcome applied when no rule proposes one, and the ordered rule list.
type Config struct {
	Engine      string
	OutcomeName string
	Default     Proposal
	Rules       []Rule

	// Clock supplies the decision timestamp; defaults to time.Now. The
	// clock is read exactly once, after the last rule has been evaluated.
	Clock func() time.Time
}

// Evaluate runs the ordered rule fold and assembles the decision. It never
// mutates the input record. The only error path is an InvalidInputError
// surfaced from a rule's field coercion.
func Evaluate(cfg Config, in Record) (*Decision, error) {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	st := &State{}
	audits := make([]RuleAudit, 0, len(cfg.Rules))

	for _, rule := range cfg.Rules {
		res, err := rule.Eval(in, st)
		if err != nil {
			return nil, err
		}

		audits = append(audits, RuleAudit{
			ID:        rule.ID,
			Rule:      rule.Text,
			Triggered: res.Triggered,
			Detail:    res.Detail,
		})

		st.apply(res)
	}

	outcome := cfg.Default
	if st.outcome != nil {
		outcome = *st.outcome
	}

	scores := st.scores
	if scores == nil {
		scores = map[string]float64{}
	}
	flags := st.flags
	if flags == nil {
		flags = map[string]bool{}
	}
	reasons := st.reasons
	if reasons == nil {
		reasons = []string{}
	}

	return &Decision{
		Engine:      cfg.Engine,
		OutcomeName: cfg.OutcomeName,
		Outcome:     outcome.Value,
		Scores:      scores,
		Flags:       flags,
		Reasons:     reasons,
		Timestamp:   verify.FormatTimestamp(clock()),
		AllRules:    audits,
	}, nil
}
