package verify

import "attestor-hq/attestor/pkg/graph"

// NewPoR computes the Proof of Reason for a finished reason graph: the
// SHA-256 hash of the graph's canonical JSON form, HMAC-signed.
//
// The graph is carried by reference and must not be mutated after this
// call; graphs are built once per decision and sealed here.
func NewPoR(g *graph.Graph, secret []byte) (*PoR, error) {
	canonical, err := CanonicalJSON(g)
	if err != nil {
		return nil, err
	}

	hash := SHA256Hex(canonical)

	return &PoR{
		Graph:     g,
		Hash:      hash,
		Signature: HMACSHA256Hex([]byte(hash), secret),
	}, nil
}

// VerifyPoR reports whether the PoR's hash matches its graph and its
// signature is a valid HMAC over that hash under the given secret.
func VerifyPoR(por *PoR, secret []byte) bool {
	if por == nil || por.Graph == nil {
		return false
	}

	canonical, err := CanonicalJSON(por.Graph)
	if err != nil {
		return false
	}
	if SHA256Hex(canonical) != por.Hash {
		return false
	}

	return VerifyHMAC([]byte(por.Hash), secret, por.Signature)
}
