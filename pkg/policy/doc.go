// Package policy provides the hash-sealed policy registry: a named,
// versioned constraint table declared once at process start and immutable
// for the process lifetime.
//
// # Sealing
//
// New serializes {name, declaration_timestamp, constraints: [id + rule
// text]} as canonical JSON, computes its SHA-256 hash, and HMAC-signs that
// hash under the shared secret. Hash and signature are computed exactly
// once, at construction: any later constraint change would change the
// hash, which is what makes the declaration tamper-evident.
//
// # Temporal Precedence
//
// The declaration timestamp is fixed to a point before any possible
// decision, so every decision's timestamp compares strictly greater. Both
// timestamps are zero-padded UTC ISO-8601, making string comparison
// chronologically valid.
//
// # No Global State
//
// Policies are plain values constructed at process start and injected into
// their engines; there is no module-level singleton. Tests can construct
// alternate policies freely.
package policy
