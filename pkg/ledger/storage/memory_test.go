package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"attestor-hq/attestor/pkg/ledger"
)

func testRecord(bundleID, engineName, outcome string, createdAt time.Time) *ledger.Record {
	return &ledger.Record{
		ID:            "id-" + bundleID,
		BundleID:      bundleID,
		Engine:        engineName,
		Outcome:       outcome,
		OverallResult: "VERIFIED",
		PolicyName:    engineName + "-policy-v1",
		CreatedAt:     createdAt,
	}
}

// seedRecords stores three records a day apart, oldest first.
func seedRecords(t *testing.T, s ledger.Storage) []*ledger.Record {
	t.Helper()

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	records := []*ledger.Record{
		testRecord("b-1", "medical_triage", "HIGH", base),
		testRecord("b-2", "credit_assessment", "APPROVED", base.AddDate(0, 0, 1)),
		testRecord("b-3", "credit_assessment", "DENIED", base.AddDate(0, 0, 2)),
	}
	for _, rec := range records {
		if err := s.Store(context.Background(), rec); err != nil {
			t.Fatalf("Store(%s): %v", rec.BundleID, err)
		}
	}
	return records
}

func TestMemoryStoreAndGet(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()
	seedRecords(t, s)

	rec, err := s.Get(context.Background(), "b-2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Engine != "credit_assessment" || rec.Outcome != "APPROVED" {
		t.Errorf("record = %q/%q", rec.Engine, rec.Outcome)
	}
}

func TestMemoryGetNotFound(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()

	_, err := s.Get(context.Background(), "missing")

	var notFound *ledger.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
	if notFound.BundleID != "missing" {
		t.Errorf("error names bundle %q", notFound.BundleID)
	}
}

func TestMemoryQueryFilters(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()
	seedRecords(t, s)

	byEngine, err := s.Query(context.Background(), &ledger.Query{Engine: "credit_assessment"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byEngine) != 2 {
		t.Errorf("engine filter matched %d records, want 2", len(byEngine))
	}

	byOutcome, err := s.Query(context.Background(), &ledger.Query{Outcome: "DENIED"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byOutcome) != 1 || byOutcome[0].BundleID != "b-3" {
		t.Errorf("outcome filter = %v", byOutcome)
	}

	start := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 21, 23, 59, 59, 0, time.UTC)
	byTime, err := s.Query(context.Background(), &ledger.Query{StartTime: &start, EndTime: &end})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byTime) != 1 || byTime[0].BundleID != "b-2" {
		t.Errorf("time filter = %v", byTime)
	}
}

func TestMemoryQuerySortAndPagination(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()
	seedRecords(t, s)

	// Default order is newest first.
	desc, err := s.Query(context.Background(), &ledger.Query{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(desc) != 3 || desc[0].BundleID != "b-3" {
		t.Errorf("default sort = %v", desc)
	}

	asc, err := s.Query(context.Background(), &ledger.Query{SortOrder: "ASC", Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(asc) != 1 || asc[0].BundleID != "b-2" {
		t.Errorf("ASC page = %v", asc)
	}

	past, err := s.Query(context.Background(), &ledger.Query{Offset: 10})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(past) != 0 {
		t.Errorf("offset past end returned %d records", len(past))
	}
}

func TestMemoryQueryDefaultLimit(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		rec := testRecord(fmt.Sprintf("b-%03d", i), "medical_triage", "LOW", base.Add(time.Duration(i)*time.Minute))
		if err := s.Store(context.Background(), rec); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}

	got, err := s.Query(context.Background(), &ledger.Query{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 100 {
		t.Errorf("unlimited query returned %d records, default limit is 100", len(got))
	}
}

func TestMemoryCountAndDelete(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()
	seedRecords(t, s)

	count, err := s.Count(context.Background(), &ledger.Query{Engine: "credit_assessment"})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
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
	if _, err := s.Get(context.Background(), "b-3"); err != nil {
		t.Errorf("newest record should survive the prune: %v", err)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()

	rec := testRecord("b-1", "medical_triage", "HIGH", time.Now().UTC())
	if err := s.Store(context.Background(), rec); err != nil {
		t.Fatalf("Store: %v", err)
	}
	rec.Outcome = "MUTATED"

	got, err := s.Get(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Outcome != "HIGH" {
		t.Error("stored record shares memory with the caller's copy")
	}
}
