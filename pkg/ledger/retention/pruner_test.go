package retention

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"attestor-hq/attestor/pkg/ledger"
	"attestor-hq/attestor/pkg/ledger/storage"
)

func storeRecord(t *testing.T, s ledger.Storage, bundleID string, age time.Duration) {
	t.Helper()

	rec := &ledger.Record{
		ID:            "id-" + bundleID,
		BundleID:      bundleID,
		Engine:        "medical_triage",
		Outcome:       "LOW",
		OverallResult: "VERIFIED",
		CreatedAt:     time.Now().UTC().Add(-age),
		Decision:      json.RawMessage(`{}`),
		Bundle:        json.RawMessage(`{}`),
	}
	if err := s.Store(context.Background(), rec); err != nil {
		t.Fatalf("Store(%s): %v", bundleID, err)
	}
}

func TestPruneByAge(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()

	storeRecord(t, s, "old-1", 100*24*time.Hour)
	storeRecord(t, s, "old-2", 91*24*time.Hour)
	storeRecord(t, s, "fresh", time.Hour)

	pruner := NewPruner(s, &Config{RetentionDays: 90})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if _, err := s.Get(context.Background(), "fresh"); err != nil {
		t.Errorf("fresh record pruned: %v", err)
	}
}

func TestPruneByCount(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()

	for i, id := range []string{"oldest", "middle", "newest"} {
		storeRecord(t, s, id, time.Duration(3-i)*time.Hour)
	}

	pruner := NewPruner(s, &Config{MaxRecords: 1})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if _, err := s.Get(context.Background(), "newest"); err != nil {
		t.Errorf("newest record pruned: %v", err)
	}
	if _, err := s.Get(context.Background(), "oldest"); err == nil {
		t.Error("oldest record survived count-based pruning")
	}
}

func TestPruneDisabled(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()

	storeRecord(t, s, "ancient", 10*365*24*time.Hour)

	pruner := NewPruner(s, &Config{RetentionDays: 0, MaxRecords: 0})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d; zero limits mean keep everything", deleted)
	}
}

func TestPruneArchivesBeforeDelete(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()

	storeRecord(t, s, "old-1", 100*24*time.Hour)

	archiveDir := t.TempDir()
	pruner := NewPruner(s, &Config{
		RetentionDays:       90,
		ArchiveBeforeDelete: true,
		ArchivePath:         archiveDir,
	})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("archive files = %d, want 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(archiveDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "old-1") {
		t.Error("archive does not contain the pruned record")
	}
}

func TestScheduledPruningLifecycle(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()

	pruner := NewPruner(s, &Config{RetentionDays: 90, PruneSchedule: "0 3 * * *"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if next := pruner.NextPruning(); next == nil || !next.After(time.Now()) {
		t.Errorf("next pruning = %v, want a future time", next)
	}

	pruner.Stop()
	if next := pruner.NextPruning(); next != nil {
		t.Errorf("next pruning after Stop = %v, want nil", next)
	}
	// Stop is idempotent; the ctx-cancel path may race a manual Stop.
	pruner.Stop()
}

func TestStartWithoutScheduleIsManual(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()

	pruner := NewPruner(s, &Config{RetentionDays: 90})

	if err := pruner.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if next := pruner.NextPruning(); next != nil {
		t.Errorf("next pruning = %v, want nil without a schedule", next)
	}
	pruner.Stop()
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()

	pruner := NewPruner(s, &Config{PruneSchedule: "not-a-cron-line"})

	if err := pruner.Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron expression")
		pruner.Stop()
	}
}
