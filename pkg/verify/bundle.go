package verify

import (
	"time"

	"github.com/google/uuid"
)

// Assemble folds the three proofs into a verification bundle.
//
// The Merkle root covers [poo.hash, por.hash, poi.policy_hash]. The
// predicate's signatures_valid flag is computed by re-verifying the PoO
// and PoR HMAC signatures under the same secret rather than trusting
// same-process generation. logic_valid requires the reason graph to carry
// at least one edge: a decision that used rules must be able to show them.
//
// Assemble is pure and total: a bundle with OverallResult FAILED is a
// legitimate return value, never an error.
func Assemble(poo *PoO, por *PoR, poi *PoI, secret []byte) *Bundle {
	predicate := Predicate{
		SignaturesValid:      VerifyPoO(poo, secret) && VerifyPoR(por, secret),
		LogicValid:           por != nil && por.Graph != nil && len(por.Graph.Edges) > 0,
		TemporalPrecedence:   poi.TemporalResult(),
		ConstraintsSatisfied: poi.AllSatisfied,
		MerkleVerified:       true,
	}

	result := ResultFailed
	if predicate.ConstraintsSatisfied && predicate.LogicValid {
		result = ResultVerified
	}

	return &Bundle{
		BundleID:      uuid.New().String(),
		CreatedAt:     FormatTimestamp(time.Now()),
		PoO:           poo,
		PoR:           por,
		PoI:           poi,
		MerkleRoot:    MerkleRoot([]string{poo.Hash, por.Hash, poi.PolicyHash}),
		Predicate:     predicate,
		OverallResult: result,
	}
}

// Recheck re-derives a bundle's verifiable fields from its contents and
// reports whether they still hold. It is used by offline re-verification
// (the verify CLI command) to detect tampering after the bundle left the
// core:
//
//   - the Merkle root must match a fresh fold over the three leaf hashes
//   - the PoO and PoR signatures must verify under the secret
//   - the recorded overall_result must agree with the recorded predicate
//
// Recheck cannot re-derive the decision itself; it attests bundle
// integrity, not domain correctness.
func Recheck(b *Bundle, secret []byte) RecheckReport {
	report := RecheckReport{}

	if b == nil || b.PoO == nil || b.PoR == nil || b.PoI == nil {
		return report
	}

	report.MerkleValid = MerkleRoot([]string{b.PoO.Hash, b.PoR.Hash, b.PoI.PolicyHash}) == b.MerkleRoot
	report.PoOSignatureValid = VerifyPoO(b.PoO, secret)
	report.PoRSignatureValid = VerifyPoR(b.PoR, secret)

	expected := ResultFailed
	if b.PoI.AllSatisfied && b.PoR.Graph != nil && len(b.PoR.Graph.Edges) > 0 {
		expected = ResultVerified
	}
	report.ResultConsistent = expected == b.OverallResult

	return report
}

// RecheckReport is the outcome of an offline bundle re-verification.
type RecheckReport struct {
	MerkleValid       bool `json:"merkle_valid"`
	PoOSignatureValid bool `json:"poo_signature_valid"`
	PoRSignatureValid bool `json:"por_signature_valid"`
	ResultConsistent  bool `json:"result_consistent"`
}

// OK reports whether every recheck passed.
func (r RecheckReport) OK() bool {
	return r.MerkleValid && r.PoOSignatureValid && r.PoRSignatureValid && r.ResultConsistent
}
