package intake

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig contains configuration for the intake watcher.
type WatcherConfig struct {
	// WatchDir is the directory scanned for request files.
	WatchDir string

	// DebounceWindow is the quiet period after the last write event
	// before a file is read (default: 500ms).
	DebounceWindow time.Duration

	// Extensions is the list of file extensions accepted
	// (default: ".json").
	Extensions []string
}

// DefaultWatcherConfig returns the default watcher configuration.
func DefaultWatcherConfig() *WatcherConfig {
	return &WatcherConfig{
		DebounceWindow: 500 * time.Millisecond,
		Extensions:     []string{".json"},
	}
}

// Watcher watches the intake directory and hands settled files to the
// processor. Each file gets its own debounce timer so a burst of writes
// to one file cannot delay another.
type Watcher struct {
	watcher   *fsnotify.Watcher
	processor *Processor
	config    *WatcherConfig
	logger    *slog.Logger

	mu         sync.Mutex
	running    bool
	debouncers map[string]*time.Timer
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewWatcher creates a new intake watcher.
func NewWatcher(config *WatcherConfig, processor *Processor, logger *slog.Logger) (*Watcher, error) {
	if config == nil {
		config = DefaultWatcherConfig()
	}
	if config.DebounceWindow <= 0 {
		config.DebounceWindow = 500 * time.Millisecond
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".json"}
	}
	if logger == nil {
		logger = slog.Default().With("component", "intake.watcher")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:    fsw,
		processor:  processor,
		config:     config,
		logger:     logger,
		debouncers: make(map[string]*time.Timer),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}, nil
}

// Watch sweeps files already present in the watch directory and then
// blocks processing events until the context is cancelled or Stop is
// called.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := os.MkdirAll(w.config.WatchDir, 0755); err != nil {
		return fmt.Errorf("failed to create watch directory: %w", err)
	}
	if err := w.watcher.Add(w.config.WatchDir); err != nil {
		return fmt.Errorf("failed to watch directory %q: %w", w.config.WatchDir, err)
	}

	if err := w.sweep(ctx); err != nil {
		return err
	}

	w.logger.Info("intake watcher started",
		"dir", w.config.WatchDir,
		"debounce_ms", w.config.DebounceWindow.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("intake watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("intake watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("intake event",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.schedule(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			w.logger.Error("intake watcher error", "error", err)
		}
	}
}

// Stop stops the watcher and cancels pending debounce timers.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.mu.Lock()
	for path, timer := range w.debouncers {
		timer.Stop()
		delete(w.debouncers, path)
	}
	w.mu.Unlock()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

// sweep processes files that were already in the watch directory before
// watching began.
func (w *Watcher) sweep(ctx context.Context) error {
	entries, err := os.ReadDir(w.config.WatchDir)
	if err != nil {
		return fmt.Errorf("failed to read watch directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !w.hasValidExtension(strings.ToLower(filepath.Ext(name))) {
			continue
		}
		path := filepath.Join(w.config.WatchDir, name)
		// Errors are already logged and counted by the processor.
		_ = w.processor.ProcessFile(ctx, path)
	}

	return nil
}

// schedule arms or resets the per-file debounce timer.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.debouncers[path]; ok {
		timer.Stop()
	}

	w.debouncers[path] = time.AfterFunc(w.config.DebounceWindow, func() {
		w.mu.Lock()
		delete(w.debouncers, path)
		w.mu.Unlock()

		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		// The file may have been renamed away since the event fired.
		if _, err := os.Stat(path); err != nil {
			return
		}

		_ = w.processor.ProcessFile(ctx, path)
	})
}

// shouldProcessEvent filters events down to settled request files.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	if !w.hasValidExtension(ext) {
		return false
	}

	// Skip hidden and partial files.
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	return true
}

// hasValidExtension checks if a file extension should be handled.
func (w *Watcher) hasValidExtension(ext string) bool {
	for _, validExt := range w.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}
