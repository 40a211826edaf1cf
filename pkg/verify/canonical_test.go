package verify

import (
	"testing"
)

func TestCanonicalJSONSortsKeys(t *testing.T) {
	got, err := CanonicalJSON(map[string]any{
		"zebra": 1,
		"alpha": map[string]any{"y": true, "x": nil},
	})
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}

	want := `{"alpha":{"x":null,"y":true},"zebra":1}`
	if string(got) != want {
		t.Errorf("canonical = %s, want %s", got, want)
	}
}

func TestCanonicalJSONDeterministic(t *testing.T) {
	value := map[string]any{
		"scores":  map[string]float64{"a": 0.25, "b": 0.75},
		"reasons": []string{"one", "two"},
		"count":   3,
	}

	first, err := CanonicalJSON(value)
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}

	for i := 0; i < 50; i++ {
		again, err := CanonicalJSON(value)
		if err != nil {
			t.Fatalf("CanonicalJSON: %v", err)
		}
		if string(again) != string(first) {
			t.Fatalf("iteration %d produced different bytes: %s vs %s", i, again, first)
		}
	}
}

func TestCanonicalJSONPreservesNumberText(t *testing.T) {
	got, err := CanonicalJSON(map[string]any{"ratio": 0.1})
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}
	if string(got) != `{"ratio":0.1}` {
		t.Errorf("canonical = %s", got)
	}
}

func TestCanonicalJSONStructs(t *testing.T) {
	type inner struct {
		B int `json:"b"`
		A int `json:"a"`
	}
	got, err := CanonicalJSON(inner{B: 2, A: 1})
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}
	if string(got) != `{"a":1,"b":2}` {
		t.Errorf("canonical = %s", got)
	}
}

func TestCanonicalJSONRejectsUnmarshalable(t *testing.T) {
	if _, err := CanonicalJSON(map[string]any{"fn": func() {}}); err == nil {
		t.Error("expected error for unmarshalable value")
	}
}
