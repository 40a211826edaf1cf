package intake

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"attestor-hq/attestor/pkg/ledger"
	"attestor-hq/attestor/pkg/ledger/storage"
)

func waitForCount(t *testing.T, store *storage.MemoryStorage, want int64) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		count, err := store.Count(context.Background(), &ledger.Query{})
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count >= want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d stored records", want)
}

func TestWatcherSweepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	watchDir := filepath.Join(dir, "intake")
	if err := os.MkdirAll(watchDir, 0755); err != nil {
		t.Fatal(err)
	}

	content := `{"engine": "medical_triage", "input": {"vital_score": 0.9}}`
	if err := os.WriteFile(filepath.Join(watchDir, "pre.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	store := storage.NewMemoryStorage()
	p := NewProcessor(testEngines(t),
		WithStorage(store, "memory"),
		WithDirs(filepath.Join(dir, "processed"), filepath.Join(dir, "failed")),
	)

	w, err := NewWatcher(&WatcherConfig{
		WatchDir:       watchDir,
		DebounceWindow: 50 * time.Millisecond,
	}, p, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	waitForCount(t, store, 1)

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned error: %v", err)
	}
}

func TestWatcherPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	watchDir := filepath.Join(dir, "intake")

	store := storage.NewMemoryStorage()
	p := NewProcessor(testEngines(t),
		WithStorage(store, "memory"),
		WithDirs(filepath.Join(dir, "processed"), filepath.Join(dir, "failed")),
	)

	w, err := NewWatcher(&WatcherConfig{
		WatchDir:       watchDir,
		DebounceWindow: 50 * time.Millisecond,
	}, p, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	content := `{"engine": "building_permit", "input": {"zoning_compliance": 0.9, "structural_safety": 0.9, "fire_safety_score": 0.9}}`
	if err := os.WriteFile(filepath.Join(watchDir, "new.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	waitForCount(t, store, 1)

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned error: %v", err)
	}
}

func TestWatcherIgnoresNonJSON(t *testing.T) {
	w, err := NewWatcher(nil, nil, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.watcher.Close()

	if w.hasValidExtension(".txt") {
		t.Error(".txt should be rejected")
	}
	if !w.hasValidExtension(".json") {
		t.Error(".json should be accepted")
	}
}

func TestWatcherDoubleStart(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(testEngines(t))

	w, err := NewWatcher(&WatcherConfig{WatchDir: dir}, p, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	time.Sleep(100 * time.Millisecond)

	if err := w.Watch(ctx); err == nil {
		t.Error("second Watch call should fail")
	}

	cancel()
	<-done
}
