package verify

import (
	"testing"

	"attestor-hq/attestor/pkg/graph"
)

var testSecret = []byte("verify-test-secret")

func testInput() map[string]any {
	return map[string]any{
		"vital_score": 0.42,
		"age":         67,
		"trauma_case": false,
	}
}

func TestGeneratePoODeterministic(t *testing.T) {
	ts := "2026-08-23T10:00:00.000Z"

	first, err := GeneratePoO(testInput(), "Test Policy", ts, testSecret)
	if err != nil {
		t.Fatalf("GeneratePoO: %v", err)
	}
	second, err := GeneratePoO(testInput(), "Test Policy", ts, testSecret)
	if err != nil {
		t.Fatalf("GeneratePoO: %v", err)
	}

	if first.Hash != second.Hash {
		t.Errorf("hashes differ: %s vs %s", first.Hash, second.Hash)
	}
	if first.Signature != second.Signature {
		t.Errorf("signatures differ: %s vs %s", first.Signature, second.Signature)
	}
	if first.Algorithm != HashAlgorithm {
		t.Errorf("algorithm = %q", first.Algorithm)
	}
	if first.StateReference != StateReference {
		t.Errorf("state reference = %q", first.StateReference)
	}
}

func TestGeneratePoOInputSensitive(t *testing.T) {
	ts := "2026-08-23T10:00:00.000Z"

	base, err := GeneratePoO(testInput(), "Test Policy", ts, testSecret)
	if err != nil {
		t.Fatalf("GeneratePoO: %v", err)
	}

	changed := testInput()
	changed["vital_score"] = 0.43
	other, err := GeneratePoO(changed, "Test Policy", ts, testSecret)
	if err != nil {
		t.Fatalf("GeneratePoO: %v", err)
	}

	if base.Hash == other.Hash {
		t.Error("different inputs produced the same hash")
	}
}

func TestVerifyPoO(t *testing.T) {
	poo, err := GeneratePoO(testInput(), "Test Policy", "2026-08-23T10:00:00.000Z", testSecret)
	if err != nil {
		t.Fatalf("GeneratePoO: %v", err)
	}

	if !VerifyPoO(poo, testSecret) {
		t.Error("valid PoO failed verification")
	}
	if VerifyPoO(poo, []byte("other-secret")) {
		t.Error("PoO verified under the wrong secret")
	}
	if VerifyPoO(nil, testSecret) {
		t.Error("nil PoO verified")
	}

	poo.Hash = "tampered"
	if VerifyPoO(poo, testSecret) {
		t.Error("tampered PoO verified")
	}
}

func testGraph() *graph.Graph {
	return graph.NewBuilder().
		Premise("p:vital_score", "vital_score = 0.42").
		Rule("r:H1", "vital_score < 0.5 mandates HIGH").
		Conclusion("c:priority", "priority = HIGH").
		Connect("p:vital_score", "r:H1", graph.RelationInput).
		Connect("r:H1", "c:priority", graph.RelationEntails).
		Graph()
}

func TestNewPoRHashMatchesGraph(t *testing.T) {
	por, err := NewPoR(testGraph(), testSecret)
	if err != nil {
		t.Fatalf("NewPoR: %v", err)
	}

	canonical, err := CanonicalJSON(por.Graph)
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}
	if SHA256Hex(canonical) != por.Hash {
		t.Error("PoR hash does not cover the graph's canonical form")
	}
}

func TestVerifyPoR(t *testing.T) {
	por, err := NewPoR(testGraph(), testSecret)
	if err != nil {
		t.Fatalf("NewPoR: %v", err)
	}

	if !VerifyPoR(por, testSecret) {
		t.Error("valid PoR failed verification")
	}
	if VerifyPoR(por, []byte("other-secret")) {
		t.Error("PoR verified under the wrong secret")
	}
	if VerifyPoR(nil, testSecret) {
		t.Error("nil PoR verified")
	}

	// Mutating the graph after sealing must be detectable.
	por.Graph.Edges[0].Relation = graph.RelationDetermines
	if VerifyPoR(por, testSecret) {
		t.Error("PoR with mutated graph verified")
	}
}
