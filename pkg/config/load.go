package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified
// path, applies defaults, and validates the result. Environment
// variables are not consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	applyBoolDefaults(&cfg)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Variables follow the naming
// convention ATTESTOR_SECTION_FIELD (e.g. ATTESTOR_LEDGER_BACKEND) and
// always take precedence over file values.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies ATTESTOR_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	// Ledger overrides
	if val := os.Getenv("ATTESTOR_LEDGER_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Ledger.Enabled = b
		}
	}
	if val := os.Getenv("ATTESTOR_LEDGER_BACKEND"); val != "" {
		cfg.Ledger.Backend = val
	}
	if val := os.Getenv("ATTESTOR_LEDGER_SQLITE_PATH"); val != "" {
		cfg.Ledger.SQLite.Path = val
	}
	if val := os.Getenv("ATTESTOR_LEDGER_SQLITE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Ledger.SQLite.BusyTimeout = d
		}
	}

	// Retention overrides
	if val := os.Getenv("ATTESTOR_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retention.Days = i
		}
	}
	if val := os.Getenv("ATTESTOR_RETENTION_SCHEDULE"); val != "" {
		cfg.Retention.Schedule = val
	}
	if val := os.Getenv("ATTESTOR_RETENTION_ARCHIVE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Retention.Archive = b
		}
	}
	if val := os.Getenv("ATTESTOR_RETENTION_ARCHIVE_PATH"); val != "" {
		cfg.Retention.ArchivePath = val
	}
	if val := os.Getenv("ATTESTOR_RETENTION_MAX_RECORDS"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Retention.MaxRecords = i
		}
	}

	// Intake overrides
	if val := os.Getenv("ATTESTOR_INTAKE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Intake.Enabled = b
		}
	}
	if val := os.Getenv("ATTESTOR_INTAKE_WATCH_DIR"); val != "" {
		cfg.Intake.WatchDir = val
	}
	if val := os.Getenv("ATTESTOR_INTAKE_PROCESSED_DIR"); val != "" {
		cfg.Intake.ProcessedDir = val
	}
	if val := os.Getenv("ATTESTOR_INTAKE_FAILED_DIR"); val != "" {
		cfg.Intake.FailedDir = val
	}
	if val := os.Getenv("ATTESTOR_INTAKE_DEBOUNCE_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Intake.DebounceWindow = d
		}
	}

	// Server overrides
	if val := os.Getenv("ATTESTOR_SERVER_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Server.Enabled = b
		}
	}
	if val := os.Getenv("ATTESTOR_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("ATTESTOR_SERVER_METRICS_PATH"); val != "" {
		cfg.Server.MetricsPath = val
	}

	// Telemetry overrides
	if val := os.Getenv("ATTESTOR_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("ATTESTOR_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("ATTESTOR_TELEMETRY_LOGGING_REDACT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.RedactSubjectData = b
		}
	}
	if val := os.Getenv("ATTESTOR_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
