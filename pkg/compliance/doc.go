// Package compliance implements the Proof of Intent: a replay of the
// declared policy constraints against a finished decision and its input.
//
// The checker is a consistency audit, not a re-derivation of the decision
// from scratch. Each constraint's check function re-derives the guard
// condition from the same threshold constants the rule evaluator used and
// verifies the decision is logically consistent with the constraint's
// stated implication (a constraint "x < t implies outcome O" is satisfied
// iff x >= t OR outcome == O).
//
// Mandatory constraints gate the overall verdict; warning constraints are
// always reported satisfied but annotate whether their guard fired. A
// synthetic Temporal Precedence row is appended to every result, verifying
// that the policy's declaration timestamp precedes the decision timestamp.
//
// Verification is idempotent: running the checker twice on the same
// (decision, input) pair yields identical results and all_satisfied.
package compliance
