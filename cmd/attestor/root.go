package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"attestor-hq/attestor/pkg/cli"
	"attestor-hq/attestor/pkg/config"
	"attestor-hq/attestor/pkg/ledger"
	"attestor-hq/attestor/pkg/ledger/storage"
)

const defaultConfigFile = "attestor.yaml"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "attestor",
	Short: "Decision engines with verifiable audit bundles",
	Long: `attestor evaluates inputs against rule-based decision engines and
emits, for every decision, a verification bundle: proofs of origin,
reasoning, and integrity folded under a Merkle root. Bundles can be
persisted to a ledger and re-verified offline at any later time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		fmt.Sprintf("config file (default %s when present)", defaultConfigFile))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

// loadConfig resolves the runtime configuration. An explicit --config
// path must exist; without one the default file is used when present,
// otherwise built-in defaults apply. Environment overrides are applied
// in every case.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadConfigWithEnvOverrides(cfgFile)
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return config.LoadConfigWithEnvOverrides(defaultConfigFile)
	}
	return config.DefaultConfig(), nil
}

// openStorage builds the ledger backend named by the configuration and
// returns it with its metric label.
func openStorage(cfg *config.Config) (ledger.Storage, string, error) {
	switch cfg.Ledger.Backend {
	case "memory":
		return storage.NewMemoryStorage(), "memory", nil
	case "sqlite", "":
		store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
			Path:         cfg.Ledger.SQLite.Path,
			MaxOpenConns: cfg.Ledger.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Ledger.SQLite.MaxIdleConns,
			WALMode:      cfg.Ledger.SQLite.WALMode,
			BusyTimeout:  cfg.Ledger.SQLite.BusyTimeout,
		})
		if err != nil {
			return nil, "", err
		}
		return store, "sqlite", nil
	default:
		return nil, "", cli.NewConfigError("ledger.backend",
			fmt.Sprintf("unknown backend %q", cfg.Ledger.Backend))
	}
}

// parseTime accepts an RFC 3339 timestamp or a bare date.
func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (use RFC 3339 or YYYY-MM-DD)", value)
	}
	return t, nil
}
