// Package engine provides the shared rule-evaluation machinery used by all
// six decision engines: typed input records, the ordered rule fold, and
// the decision audit record.
//
// # Evaluation Model
//
// A domain engine declares an ordered list of rules. Evaluation is a pure
// fold over that list: each rule reads the input record (and the
// cumulative state, e.g. the number of prior triggers) and returns a
// RuleResult with a triggered flag, a rendered detail string embedding the
// actual compared values, and optionally an outcome proposal.
//
// # Escalation-Only Merge
//
// Outcome proposals carry a severity rank. The merge is explicit and
// escalation-only: a proposal replaces the current outcome only when its
// rank is strictly higher. Hard terminal outcomes (DENIED, REJECTED,
// NOT_RECOMMENDED) therefore always win over softer review or upgrade
// rules evaluated later, and multi-trigger escalation rules can raise but
// never lower the severity already set.
//
// # Input Validation
//
// Record accessors coerce numeric and boolean fields explicitly. A field
// that cannot be coerced fails evaluation with an InvalidInputError naming
// the offending field; malformed input never propagates NaN into a
// decision. Missing optional fields take the engine-documented neutral
// default, and numeric fields are clamped to their documented domain
// before use.
//
// Every rule appears in the decision's all_rules audit array whether or
// not it fired: the audit record is the product, not just the verdict.
package engine
