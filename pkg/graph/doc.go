// Package graph provides the reason graph: a directed acyclic graph of
// premise, rule, and conclusion vertices mirroring the rule firings that
// produced a decision.
//
// # Vertex Types
//
//   - premise: a raw input field referenced by at least one rule
//   - rule: a rule that fired and contributed to a conclusion
//   - conclusion: a decision output field
//
// # Edge Relations
//
//   - input: a premise feeds a rule
//   - entails / determines: a rule mechanically fixes a conclusion value
//   - influences: a rule is one of several contributing factors
//   - produces: one conclusion mathematically derives another
//     (e.g. composite score -> tier)
//
// Graphs are built once per decision through a Builder and never mutated
// afterwards; their canonical JSON form is hashed and signed as the Proof
// of Reason. A graph with zero edges is treated as a validity failure by
// the bundle assembler, since a decision that used any rule must be able
// to show at least one edge.
package graph
