package verify

// StateReference labels what the PoO hash covers.
const StateReference = "input_state"

// GeneratePoO computes the Proof of Operation for an input record.
//
// The hash covers the canonical JSON of {D: input, P: policyName,
// T: timestamp}; the signature is HMAC-SHA256 over hash+timestamp. The
// function is pure: identical (input, policyName, timestamp) triples under
// the same secret always produce identical hashes and signatures.
func GeneratePoO(input map[string]any, policyName, timestamp string, secret []byte) (*PoO, error) {
	payload := map[string]any{
		"D": input,
		"P": policyName,
		"T": timestamp,
	}

	canonical, err := CanonicalJSON(payload)
	if err != nil {
		return nil, err
	}

	hash := SHA256Hex(canonical)

	return &PoO{
		Hash:           hash,
		Timestamp:      timestamp,
		Signature:      HMACSHA256Hex([]byte(hash+timestamp), secret),
		Algorithm:      HashAlgorithm,
		StateReference: StateReference,
	}, nil
}

// VerifyPoO reports whether the PoO's signature is a valid HMAC over its
// hash and timestamp under the given secret.
func VerifyPoO(poo *PoO, secret []byte) bool {
	if poo == nil {
		return false
	}
	return VerifyHMAC([]byte(poo.Hash+poo.Timestamp), secret, poo.Signature)
}
