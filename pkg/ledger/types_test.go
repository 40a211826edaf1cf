package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/verify"
)

func testResult() *engine.Result {
	return &engine.Result{
		Decision: &engine.Decision{
			Engine:    "credit_assessment",
			Outcome:   "APPROVED",
			Timestamp: "2026-08-23T10:00:00.000Z",
		},
		Bundle: &verify.Bundle{
			BundleID:      "bundle-123",
			CreatedAt:     "2026-08-23T10:00:00.000Z",
			PoO:           &verify.PoO{Hash: "poohash"},
			PoR:           &verify.PoR{Hash: "porhash"},
			PoI:           &verify.PoI{Policy: "credit-policy-v1", PolicyHash: "policyhash"},
			MerkleRoot:    "merkleroot",
			OverallResult: verify.ResultVerified,
		},
	}
}

func TestNewRecordSummaryColumns(t *testing.T) {
	rec, err := NewRecord(testResult())
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}

	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Errorf("record id %q is not a UUID: %v", rec.ID, err)
	}
	if rec.BundleID != "bundle-123" {
		t.Errorf("bundle id = %q", rec.BundleID)
	}
	if rec.Engine != "credit_assessment" || rec.Outcome != "APPROVED" {
		t.Errorf("summary = %q/%q", rec.Engine, rec.Outcome)
	}
	if rec.OverallResult != verify.ResultVerified {
		t.Errorf("overall result = %q", rec.OverallResult)
	}
	if rec.MerkleRoot != "merkleroot" || rec.PolicyName != "credit-policy-v1" || rec.PolicyHash != "policyhash" {
		t.Errorf("anchor columns = %q/%q/%q", rec.MerkleRoot, rec.PolicyName, rec.PolicyHash)
	}
	if time.Since(rec.CreatedAt) > time.Minute || rec.CreatedAt.Location() != time.UTC {
		t.Errorf("created_at = %v", rec.CreatedAt)
	}
	if !json.Valid(rec.Decision) || !json.Valid(rec.Bundle) {
		t.Error("stored payloads are not valid JSON")
	}
}

func TestDecodeBundleRoundTrip(t *testing.T) {
	rec, err := NewRecord(testResult())
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}

	b, err := rec.DecodeBundle()
	if err != nil {
		t.Fatalf("DecodeBundle: %v", err)
	}
	if b.BundleID != "bundle-123" || b.MerkleRoot != "merkleroot" {
		t.Errorf("decoded bundle = %q/%q", b.BundleID, b.MerkleRoot)
	}
	if b.PoO == nil || b.PoO.Hash != "poohash" {
		t.Error("decoded bundle lost the operation proof")
	}
}

func TestDecodeBundleInvalidPayload(t *testing.T) {
	rec := &Record{Bundle: json.RawMessage(`{"bundle_id":`)}

	if _, err := rec.DecodeBundle(); err == nil {
		t.Error("expected error for truncated bundle payload")
	}
}
