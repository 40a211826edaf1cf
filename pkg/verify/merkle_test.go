package verify

import "testing"

func TestMerkleRootEmpty(t *testing.T) {
	got := MerkleRoot(nil)
	want := SHA256Hex([]byte("empty"))
	if got != want {
		t.Errorf("empty root = %s, want %s", got, want)
	}
	if got != MerkleRoot([]string{}) {
		t.Error("nil and empty slice should hash identically")
	}
}

func TestMerkleRootSingleLeaf(t *testing.T) {
	leaf := SHA256Hex([]byte("only"))
	if got := MerkleRoot([]string{leaf}); got != leaf {
		t.Errorf("single-leaf root = %s, want the leaf itself", got)
	}
}

func TestMerkleRootPairFold(t *testing.T) {
	a := SHA256Hex([]byte("a"))
	b := SHA256Hex([]byte("b"))

	got := MerkleRoot([]string{a, b})
	want := SHA256Hex([]byte(a + b))
	if got != want {
		t.Errorf("pair root = %s, want %s", got, want)
	}
}

func TestMerkleRootOddLeafDuplicated(t *testing.T) {
	a := SHA256Hex([]byte("a"))
	b := SHA256Hex([]byte("b"))
	c := SHA256Hex([]byte("c"))

	// Level 1: h(a+b), h(c+c); root: h(h(a+b)+h(c+c)).
	left := SHA256Hex([]byte(a + b))
	right := SHA256Hex([]byte(c + c))
	want := SHA256Hex([]byte(left + right))

	if got := MerkleRoot([]string{a, b, c}); got != want {
		t.Errorf("odd root = %s, want %s", got, want)
	}
}

func TestMerkleRootOrderSensitive(t *testing.T) {
	a := SHA256Hex([]byte("a"))
	b := SHA256Hex([]byte("b"))
	c := SHA256Hex([]byte("c"))

	if MerkleRoot([]string{a, b, c}) == MerkleRoot([]string{c, b, a}) {
		t.Error("reordered leaves should change the root")
	}
}

func TestMerkleRootDoesNotMutateLeaves(t *testing.T) {
	leaves := []string{SHA256Hex([]byte("a")), SHA256Hex([]byte("b")), SHA256Hex([]byte("c"))}
	snapshot := append([]string(nil), leaves...)

	MerkleRoot(leaves)

	for i := range leaves {
		if leaves[i] != snapshot[i] {
			t.Fatalf("leaf %d mutated", i)
		}
	}
}
