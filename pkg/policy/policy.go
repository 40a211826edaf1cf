package policy

import (
	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/verify"
)

// Severity classifies a constraint's weight in the overall verdict.
type Severity string

const (
	// SeverityMandatory constraints gate the overall PoI verdict: one
	// unsatisfied mandatory constraint fails the whole verification.
	SeverityMandatory Severity = "mandatory"

	// SeverityWarning constraints never block the verdict; they are
	// reported with a triggered/not-triggered annotation only.
	SeverityWarning Severity = "warning"
)

// CheckFunc re-derives a constraint's guard condition from the input and
// decision. For mandatory constraints the satisfied flag gates the
// verdict; for warnings satisfied is ignored (always reported true) and
// triggered annotates whether the guard fired. The detail string embeds
// the compared values for the audit record.
type CheckFunc func(in engine.Record, d *engine.Decision) (satisfied, triggered bool, detail string)

// Constraint is one declared rule of a policy.
type Constraint struct {
	// ID is a short code, e.g. "C1".
	ID string

	// Name is the human-readable constraint name.
	Name string

	// Rule is the natural-language rule text. It is part of the sealed
	// serialization, so editing it changes the policy hash.
	Rule string

	// Severity is mandatory or warning.
	Severity Severity

	// Check replays the constraint against a finished decision. It must
	// read the same threshold constants as the rule evaluator so the two
	// cannot silently diverge.
	Check CheckFunc
}

// Policy is a sealed constraint table. All fields are immutable after New.
type Policy struct {
	Name        string
	Authority   string
	DeclaredAt  string // ISO-8601, strictly before any decision timestamp
	Constraints []Constraint

	// Hash is the SHA-256 over the canonical serialization of the policy
	// declaration, computed once at construction.
	Hash string

	// Signature is HMAC-SHA256(Hash) under the shared secret.
	Signature string
}

// New seals a policy: it serializes the declaration deterministically,
// hashes it, and signs the hash. There are no runtime inputs and the only
// error path is a serialization failure, which indicates misconfiguration
// and is surfaced as an IntegrityError.
func New(name, authority, declaredAt string, constraints []Constraint, secret []byte) (*Policy, error) {
	sealed := make([]map[string]any, 0, len(constraints))
	for _, c := range constraints {
		sealed = append(sealed, map[string]any{
			"id":   c.ID,
			"rule": c.Rule,
		})
	}

	canonical, err := verify.CanonicalJSON(map[string]any{
		"name":                  name,
		"declaration_timestamp": declaredAt,
		"constraints":           sealed,
	})
	if err != nil {
		return nil, NewIntegrityError(name, err)
	}

	hash := verify.SHA256Hex(canonical)

	return &Policy{
		Name:        name,
		Authority:   authority,
		DeclaredAt:  declaredAt,
		Constraints: constraints,
		Hash:        hash,
		Signature:   verify.HMACSHA256Hex([]byte(hash), secret),
	}, nil
}

// MustNew is New for statically declared policies whose construction
// cannot fail at runtime. It panics on error, which only occurs on
// process-start misconfiguration.
func MustNew(name, authority, declaredAt string, constraints []Constraint, secret []byte) *Policy {
	p, err := New(name, authority, declaredAt, constraints, secret)
	if err != nil {
		panic(err)
	}
	return p
}
