package config

import "time"

// Default values for configuration fields.
const (
	// Ledger defaults
	DefaultLedgerEnabled      = true
	DefaultLedgerBackend      = "sqlite"
	DefaultSQLitePath         = "data/ledger.db"
	DefaultSQLiteMaxOpenConns = 10
	DefaultSQLiteMaxIdleConns = 5
	DefaultSQLiteWALMode      = true
	DefaultSQLiteBusyTimeout  = 5 * time.Second

	// Retention defaults
	DefaultRetentionDays        = 90
	DefaultRetentionSchedule    = "0 3 * * *"
	DefaultRetentionArchive     = false
	DefaultRetentionArchivePath = "data/archives/"
	DefaultRetentionMaxRecords  = int64(0)

	// Intake defaults
	DefaultIntakeEnabled      = true
	DefaultIntakeWatchDir     = "data/intake/"
	DefaultIntakeProcessedDir = "data/intake/processed/"
	DefaultIntakeFailedDir    = "data/intake/failed/"
	DefaultIntakeDebounce     = 500 * time.Millisecond

	// Server defaults
	DefaultServerEnabled         = true
	DefaultServerListenAddress   = "127.0.0.1:9090"
	DefaultServerMetricsPath     = "/metrics"
	DefaultServerReadTimeout     = 10 * time.Second
	DefaultServerWriteTimeout    = 10 * time.Second
	DefaultServerShutdownTimeout = 10 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultLoggingRedact    = true
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "attestor"
	DefaultMetricsSubsystem = "core"
)

// DefaultConfig returns a configuration populated with default values.
// No YAML is involved here, so the true-valued booleans can be set
// directly alongside the zero-value defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyBoolDefaults(cfg)
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with defaults.
//
// Boolean fields that default to true cannot be distinguished from an
// explicit false after YAML unmarshaling, so LoadConfig seeds them with
// applyBoolDefaults before unmarshaling rather than here.
func ApplyDefaults(cfg *Config) {
	if cfg.Ledger.Backend == "" {
		cfg.Ledger.Backend = DefaultLedgerBackend
	}
	if cfg.Ledger.SQLite.Path == "" {
		cfg.Ledger.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Ledger.SQLite.MaxOpenConns == 0 {
		cfg.Ledger.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.Ledger.SQLite.MaxIdleConns == 0 {
		cfg.Ledger.SQLite.MaxIdleConns = DefaultSQLiteMaxIdleConns
	}
	if cfg.Ledger.SQLite.BusyTimeout == 0 {
		cfg.Ledger.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	if cfg.Retention.Days == 0 {
		cfg.Retention.Days = DefaultRetentionDays
	}
	if cfg.Retention.Schedule == "" {
		cfg.Retention.Schedule = DefaultRetentionSchedule
	}
	if cfg.Retention.ArchivePath == "" {
		cfg.Retention.ArchivePath = DefaultRetentionArchivePath
	}

	if cfg.Intake.WatchDir == "" {
		cfg.Intake.WatchDir = DefaultIntakeWatchDir
	}
	if cfg.Intake.ProcessedDir == "" {
		cfg.Intake.ProcessedDir = DefaultIntakeProcessedDir
	}
	if cfg.Intake.FailedDir == "" {
		cfg.Intake.FailedDir = DefaultIntakeFailedDir
	}
	if cfg.Intake.DebounceWindow == 0 {
		cfg.Intake.DebounceWindow = DefaultIntakeDebounce
	}

	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultServerListenAddress
	}
	if cfg.Server.MetricsPath == "" {
		cfg.Server.MetricsPath = DefaultServerMetricsPath
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}

// applyBoolDefaults sets the boolean fields that default to true. It
// runs before YAML unmarshaling so explicit false values in the file
// still win.
func applyBoolDefaults(cfg *Config) {
	cfg.Ledger.Enabled = DefaultLedgerEnabled
	cfg.Ledger.SQLite.WALMode = DefaultSQLiteWALMode
	cfg.Intake.Enabled = DefaultIntakeEnabled
	cfg.Server.Enabled = DefaultServerEnabled
	cfg.Telemetry.Logging.RedactSubjectData = DefaultLoggingRedact
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
}
