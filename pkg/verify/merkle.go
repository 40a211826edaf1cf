package verify

// emptyTreeSeed is hashed when the Merkle tree has zero leaves.
const emptyTreeSeed = "empty"

// MerkleRoot folds a list of leaf hashes into a single root hash.
//
// Folding is pairwise SHA-256 over the concatenated hex strings of
// adjacent nodes. If a level has an odd number of nodes, the last node is
// paired with a copy of itself. A single remaining hash is the root. An
// empty leaf list hashes the literal string "empty" so that the root is
// always a well-formed digest.
func MerkleRoot(leaves []string) string {
	if len(leaves) == 0 {
		return SHA256Hex([]byte(emptyTreeSeed))
	}

	level := make([]string, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}

		next := make([]string, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, SHA256Hex([]byte(level[i]+level[i+1])))
		}
		level = next
	}

	return level[0]
}
