package config

import "time"

// Config is the root configuration structure for the attestor runtime.
// It covers the decision engines, the ledger, retention, the intake
// watcher, the observability HTTP server, and telemetry.
type Config struct {
	// Engines selects which decision engines are active.
	Engines EnginesConfig `yaml:"engines"`

	// Ledger configures persistence of evaluation results.
	Ledger LedgerConfig `yaml:"ledger"`

	// Retention configures pruning of old ledger records.
	Retention RetentionConfig `yaml:"retention"`

	// Intake configures the directory watcher that evaluates dropped
	// input files.
	Intake IntakeConfig `yaml:"intake"`

	// Server configures the observability HTTP server exposed in
	// watch mode (metrics, health, version).
	Server ServerConfig `yaml:"server"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// EnginesConfig selects the active decision engines.
type EnginesConfig struct {
	// Enabled lists engine names to activate. An empty list activates
	// every registered engine.
	Enabled []string `yaml:"enabled"`
}

// LedgerConfig configures persistence of evaluation results.
type LedgerConfig struct {
	// Enabled controls whether evaluation results are persisted.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend.
	// Options: "sqlite", "memory"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific settings.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains SQLite backend settings.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/ledger.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables write-ahead logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long a locked database is retried.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig configures pruning of old ledger records.
type RetentionConfig struct {
	// Days is the number of days to retain records. 0 disables
	// age-based pruning.
	// Default: 90
	Days int `yaml:"days"`

	// Schedule is a cron expression for automatic pruning.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`

	// Archive enables JSON archiving of records before deletion.
	// Default: false
	Archive bool `yaml:"archive"`

	// ArchivePath is the directory for archive files.
	// Default: "data/archives/"
	ArchivePath string `yaml:"archive_path"`

	// MaxRecords caps the total record count. 0 means unlimited.
	MaxRecords int64 `yaml:"max_records"`
}

// IntakeConfig configures the intake directory watcher.
type IntakeConfig struct {
	// Enabled controls whether the watcher starts in watch mode.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// WatchDir is the directory scanned for input files.
	// Default: "data/intake/"
	WatchDir string `yaml:"watch_dir"`

	// ProcessedDir receives input files after successful evaluation.
	// Default: "data/intake/processed/"
	ProcessedDir string `yaml:"processed_dir"`

	// FailedDir receives input files that could not be evaluated.
	// Default: "data/intake/failed/"
	FailedDir string `yaml:"failed_dir"`

	// DebounceWindow is how long the watcher waits after the last
	// write event before reading a file. Editors and copies produce
	// bursts of partial writes.
	// Default: 500ms
	DebounceWindow time.Duration `yaml:"debounce_window"`
}

// ServerConfig configures the observability HTTP server.
type ServerConfig struct {
	// Enabled controls whether the server starts in watch mode.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// MetricsPath is the Prometheus scrape path.
	// Default: "/metrics"
	MetricsPath string `yaml:"metrics_path"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// TelemetryConfig configures logging and metrics.
type TelemetryConfig struct {
	// Logging contains structured logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in logs.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactSubjectData scrubs personal data from log fields.
	// Default: true
	RedactSubjectData bool `yaml:"redact_subject_data"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled turns metric recording on.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "attestor"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric name subsystem.
	// Default: "core"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets are histogram buckets for evaluation latency
	// in seconds.
	DurationBuckets []float64 `yaml:"duration_buckets"`
}
