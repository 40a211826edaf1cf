// Package attest wires the five verification-core components into one
// evaluation pipeline shared by all six decision engines:
//
//	caller -> rule evaluator -> decision
//	              |
//	              +-> reason graph builder -> PoR
//	              +-> PoO generator         -> PoO
//	              +-> compliance checker    -> PoI
//	                           |
//	                     bundle assembler -> {decision, verification_bundle}
//
// A domain engine is an Engine value holding its sealed policy, its
// ordered rule list, and its graph builder; the six engine packages differ
// only in those three inputs. The pipeline itself is pure per call: no
// blocking I/O, no shared mutable state beyond the once-sealed policy, so
// concurrent evaluations need no coordination.
package attest
