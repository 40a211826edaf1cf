package storage

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"attestor-hq/attestor/pkg/ledger"
)

func newSQLiteTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := NewSQLiteStorage(&SQLiteConfig{
		Path:         filepath.Join(t.TempDir(), "ledger.db"),
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		WALMode:      true,
		BusyTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewSQLiteStorage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreAndGet(t *testing.T) {
	s := newSQLiteTestStorage(t)

	rec := testRecord("b-1", "legal_compliance", "COMPLIANT", time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))
	rec.Decision = json.RawMessage(`{"outcome":"COMPLIANT"}`)
	rec.Bundle = json.RawMessage(`{"bundle_id":"b-1"}`)

	if err := s.Store(context.Background(), rec); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, err := s.Get(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Engine != "legal_compliance" || got.Outcome != "COMPLIANT" {
		t.Errorf("record = %q/%q", got.Engine, got.Outcome)
	}
	if string(got.Decision) != `{"outcome":"COMPLIANT"}` {
		t.Errorf("decision payload = %s", got.Decision)
	}
	if string(got.Bundle) != `{"bundle_id":"b-1"}` {
		t.Errorf("bundle payload = %s", got.Bundle)
	}
}

func TestSQLiteGetNotFound(t *testing.T) {
	s := newSQLiteTestStorage(t)

	_, err := s.Get(context.Background(), "missing")

	var notFound *ledger.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestSQLiteDuplicateBundleRejected(t *testing.T) {
	s := newSQLiteTestStorage(t)

	rec := testRecord("b-1", "medical_triage", "HIGH", time.Now().UTC())
	if err := s.Store(context.Background(), rec); err != nil {
		t.Fatalf("Store: %v", err)
	}

	dup := testRecord("b-1", "medical_triage", "HIGH", time.Now().UTC())
	dup.ID = "id-other"
	err := s.Store(context.Background(), dup)

	var storageErr *ledger.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("error = %v, want StorageError on duplicate bundle id", err)
	}
}

func TestSQLiteQueryFiltersAndSort(t *testing.T) {
	s := newSQLiteTestStorage(t)
	seedRecords(t, s)

	byEngine, err := s.Query(context.Background(), &ledger.Query{Engine: "credit_assessment"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byEngine) != 2 {
		t.Errorf("engine filter matched %d records, want 2", len(byEngine))
	}
	// Default order is newest first.
	if byEngine[0].BundleID != "b-3" {
		t.Errorf("first record = %q, want b-3", byEngine[0].BundleID)
	}

	asc, err := s.Query(context.Background(), &ledger.Query{SortOrder: "ASC", Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(asc) != 1 || asc[0].BundleID != "b-2" {
		t.Errorf("ASC page = %v", asc)
	}

	start := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	byTime, err := s.Query(context.Background(), &ledger.Query{StartTime: &start, Outcome: "APPROVED"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byTime) != 1 || byTime[0].BundleID != "b-2" {
		t.Errorf("combined filter = %v", byTime)
	}
}

func TestSQLiteCountAndDelete(t *testing.T) {
	s := newSQLiteTestStorage(t)
	seedRecords(t, s)

	count, err := s.Count(context.Background(), &ledger.Query{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	cutoff := time.Date(2026, 8, 21, 23, 0, 0, 0, time.UTC)
	deleted, err := s.Delete(context.Background(), &ledger.Query{EndTime: &cutoff})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	remaining, err := s.Count(context.Background(), &ledger.Query{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}
}
