// Package verify implements the cryptographic half of the verification core:
// proof-of-operation generation, reason-graph signing, Merkle folding, and
// final bundle assembly.
//
// # Proof Triad
//
// Every evaluation produces three proofs that are folded into one bundle:
//
//  1. PoO (Proof of Operation) - SHA-256 hash over the canonical JSON of
//     {D: input, P: policy name, T: timestamp}, HMAC-signed. Binds the
//     exact input state to the policy and the evaluation instant.
//  2. PoR (Proof of Reason) - the reason graph plus the SHA-256 hash of
//     its canonical JSON form, HMAC-signed. Shows how the decision was
//     derived.
//  3. PoI (Proof of Intent) - the compliance checker's replay of the
//     declared constraints against the decision (built in pkg/compliance,
//     carried here as part of the bundle).
//
// # Merkle Root
//
// The bundle's merkle_root is computed over the three leaf hashes
// [poo.hash, por.hash, poi.policy_hash] by pairwise SHA-256 folding:
// adjacent pairs are concatenated and hashed, an odd node is paired with
// itself, a single remaining hash is the root, and zero leaves hash the
// literal string "empty".
//
// # Determinism
//
// All functions in this package are pure: identical inputs (including the
// timestamp and secret) always produce identical hashes and signatures.
// Canonical JSON serialization (sorted object keys, verbatim number
// rendering) guarantees byte-stable hashing across runs.
//
// # Basic Usage
//
//	poo, err := verify.GeneratePoO(input, policy.Name, decision.Timestamp, secret)
//	por, err := verify.NewPoR(reasonGraph, secret)
//	poi := checker.Verify(input, decision)
//	bundle := verify.Assemble(poo, por, poi, secret)
//
//	if bundle.OverallResult == verify.ResultVerified {
//	    // decision is consistent with the declared policy
//	}
//
// FAILED is a legitimate terminal result, not an error: it attests that a
// well-formed evaluation did not satisfy the declared constraints (or
// produced an empty reason graph), never that the request was
// unprocessable.
package verify
