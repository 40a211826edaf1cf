package verify

import "attestor-hq/attestor/pkg/graph"

// OverallResult values for a verification bundle.
const (
	// ResultVerified means every mandatory constraint was satisfied and
	// the reason graph is non-empty. It attests rule-consistency, not a
	// favorable outcome: a denial can still be VERIFIED.
	ResultVerified = "VERIFIED"

	// ResultFailed means at least one mandatory constraint was violated
	// or the reason graph carried no edges.
	ResultFailed = "FAILED"
)

// PoO is the Proof of Operation: a hash and HMAC signature binding the
// input state, the governing policy name, and the evaluation timestamp.
type PoO struct {
	Hash           string `json:"hash"`
	Timestamp      string `json:"timestamp"`
	Signature      string `json:"signature"`
	Algorithm      string `json:"algorithm"`
	StateReference string `json:"state_reference"`
}

// PoR is the Proof of Reason: the reason graph together with the hash and
// HMAC signature of its canonical JSON form.
type PoR struct {
	Graph     *graph.Graph `json:"graph"`
	Hash      string       `json:"hash"`
	Signature string       `json:"signature"`
}

// ConstraintResult is one row of the compliance checker's replay: a single
// constraint, whether it held, and a rendered detail string embedding the
// compared values.
//
// Triggered is populated only for warning-severity constraints, which are
// always reported satisfied but annotate whether their guard fired.
type ConstraintResult struct {
	Constraint string `json:"constraint"`
	Satisfied  bool   `json:"satisfied"`
	Severity   string `json:"severity"`
	Detail     string `json:"detail"`
	Triggered  *bool  `json:"triggered,omitempty"`
}

// PoI is the Proof of Intent: the replay-verification that a decision is
// consistent with the policy declared before it was made.
type PoI struct {
	Policy           string             `json:"policy"`
	PolicyHash       string             `json:"policy_hash"`
	DeclarationTime  string             `json:"declaration_time"`
	VerificationTime string             `json:"verification_time"`
	AllSatisfied     bool               `json:"all_satisfied"`
	Results          []ConstraintResult `json:"results"`
}

// TemporalResult returns the satisfied flag of the synthetic temporal
// precedence row, or false if the row is absent.
func (p *PoI) TemporalResult() bool {
	for _, r := range p.Results {
		if r.Constraint == TemporalConstraintName {
			return r.Satisfied
		}
	}
	return false
}

// TemporalConstraintName is the name of the synthetic constraint row the
// compliance checker appends to every PoI, verifying that the policy was
// declared before the decision was made.
const TemporalConstraintName = "Temporal Precedence"

// Predicate is the bundle's verification predicate: the five boolean
// checks a consumer needs to trust the bundle without re-deriving the
// decision.
type Predicate struct {
	SignaturesValid      bool `json:"signatures_valid"`
	LogicValid           bool `json:"logic_valid"`
	TemporalPrecedence   bool `json:"temporal_precedence"`
	ConstraintsSatisfied bool `json:"constraints_satisfied"`
	MerkleVerified       bool `json:"merkle_verified"`
}

// Bundle is the externally visible verification unit returned with every
// decision. It is created fresh per evaluation and immutable once
// returned; persistence is a caller concern.
type Bundle struct {
	BundleID      string    `json:"bundle_id"`
	CreatedAt     string    `json:"created_at"`
	PoO           *PoO      `json:"poo"`
	PoR           *PoR      `json:"por"`
	PoI           *PoI      `json:"poi"`
	MerkleRoot    string    `json:"merkle_root"`
	Predicate     Predicate `json:"verification_predicate"`
	OverallResult string    `json:"overall_result"`
}
