package policy

import (
	"testing"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/verify"
)

var testSecret = []byte("policy-test-secret")

func testConstraints() []Constraint {
	check := func(in engine.Record, d *engine.Decision) (bool, bool, string) {
		return true, false, "replayed"
	}
	return []Constraint{
		{ID: "C1", Name: "First", Rule: "score must be bounded", Severity: SeverityMandatory, Check: check},
		{ID: "C2", Name: "Second", Rule: "warn on edge values", Severity: SeverityWarning, Check: check},
	}
}

func TestNewSealsDeterministically(t *testing.T) {
	first, err := New("Test Policy", "Test Authority", "2025-01-01T00:00:00.000Z", testConstraints(), testSecret)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	second, err := New("Test Policy", "Test Authority", "2025-01-01T00:00:00.000Z", testConstraints(), testSecret)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if first.Hash != second.Hash {
		t.Errorf("hashes differ: %s vs %s", first.Hash, second.Hash)
	}
	if first.Signature != second.Signature {
		t.Error("signatures differ for identical declarations")
	}
}

func TestNewHashCoversRuleText(t *testing.T) {
	base, err := New("Test Policy", "Test Authority", "2025-01-01T00:00:00.000Z", testConstraints(), testSecret)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	edited := testConstraints()
	edited[0].Rule = "score must be strictly bounded"
	changed, err := New("Test Policy", "Test Authority", "2025-01-01T00:00:00.000Z", edited, testSecret)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if base.Hash == changed.Hash {
		t.Error("editing a rule text must change the policy hash")
	}
}

func TestNewHashIgnoresAuthority(t *testing.T) {
	// Only name, declaration time, and constraint id/rule pairs are part
	// of the sealed serialization.
	base, err := New("Test Policy", "Authority A", "2025-01-01T00:00:00.000Z", testConstraints(), testSecret)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	other, err := New("Test Policy", "Authority B", "2025-01-01T00:00:00.000Z", testConstraints(), testSecret)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if base.Hash != other.Hash {
		t.Error("authority is not sealed and must not affect the hash")
	}
}

func TestNewSignatureVerifies(t *testing.T) {
	p, err := New("Test Policy", "Test Authority", "2025-01-01T00:00:00.000Z", testConstraints(), testSecret)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !verify.VerifyHMAC([]byte(p.Hash), testSecret, p.Signature) {
		t.Error("policy signature does not verify under the sealing secret")
	}
	if verify.VerifyHMAC([]byte(p.Hash), []byte("other"), p.Signature) {
		t.Error("policy signature verified under the wrong secret")
	}
}

func TestSecretFromEnv(t *testing.T) {
	t.Setenv("ATTESTOR_POO_SECRET", "primary")
	t.Setenv("POO_SECRET", "legacy")

	s := SecretFromEnv()
	if string(s.Key) != "primary" || s.Default {
		t.Errorf("secret = %q default=%v, want primary", s.Key, s.Default)
	}

	t.Setenv("ATTESTOR_POO_SECRET", "")
	s = SecretFromEnv()
	if string(s.Key) != "legacy" || s.Default {
		t.Errorf("secret = %q default=%v, want legacy alias", s.Key, s.Default)
	}

	t.Setenv("POO_SECRET", "")
	s = SecretFromEnv()
	if string(s.Key) != DefaultSecret || !s.Default {
		t.Errorf("secret = %q default=%v, want default literal", s.Key, s.Default)
	}
}
