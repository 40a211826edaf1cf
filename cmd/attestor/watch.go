package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"attestor-hq/attestor/pkg/attest"
	"attestor-hq/attestor/pkg/cli"
	"attestor-hq/attestor/pkg/config"
	"attestor-hq/attestor/pkg/engines"
	"attestor-hq/attestor/pkg/intake"
	"attestor-hq/attestor/pkg/ledger"
	"attestor-hq/attestor/pkg/ledger/retention"
	"attestor-hq/attestor/pkg/policy"
	"attestor-hq/attestor/pkg/telemetry/health"
	"attestor-hq/attestor/pkg/telemetry/logging"
	"attestor-hq/attestor/pkg/telemetry/metrics"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the intake directory and evaluate dropped request files",
	Long: `Watch runs the long-lived evaluation pipeline: request files dropped
into the intake directory are evaluated, persisted to the ledger, and
moved to the processed or failed directory. Retention pruning runs on
its configured schedule, and an HTTP server exposes Prometheus
metrics, health, and version endpoints.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logLevel := cfg.Telemetry.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	logger, err := logging.New(logging.Config{
		Level:             logLevel,
		Format:            cfg.Telemetry.Logging.Format,
		AddSource:         cfg.Telemetry.Logging.AddSource,
		RedactSubjectData: cfg.Telemetry.Logging.RedactSubjectData,
	})
	if err != nil {
		return err
	}
	logger.InstallDefault()

	collector := metrics.NewCollector(&metrics.Config{
		Enabled:         cfg.Telemetry.Metrics.Enabled,
		Namespace:       cfg.Telemetry.Metrics.Namespace,
		Subsystem:       cfg.Telemetry.Metrics.Subsystem,
		DurationBuckets: cfg.Telemetry.Metrics.DurationBuckets,
	}, nil)

	secret := policy.SecretFromEnv()
	if secret.Default {
		logger.Warn("using the built-in development secret; set ATTESTOR_POO_SECRET in production")
	}

	engs, err := buildEngines(cfg, secret)
	if err != nil {
		return err
	}
	logger.Info("engines ready", "count", len(engs))

	ctx, cancel := cli.SetupSignalHandler()
	defer cancel()

	var store ledger.Storage
	backend := "disabled"
	if cfg.Ledger.Enabled {
		store, backend, err = openStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("ledger storage ready", "backend", backend)
	}

	var pruner *retention.Pruner
	if store != nil && (cfg.Retention.Days > 0 || cfg.Retention.MaxRecords > 0) {
		pruner = retention.NewPruner(store, &retention.Config{
			RetentionDays:       cfg.Retention.Days,
			PruneSchedule:       cfg.Retention.Schedule,
			ArchiveBeforeDelete: cfg.Retention.Archive,
			ArchivePath:         cfg.Retention.ArchivePath,
			MaxRecords:          cfg.Retention.MaxRecords,
		})
		if err := pruner.Start(ctx); err != nil {
			return fmt.Errorf("failed to start retention scheduler: %w", err)
		}
		defer pruner.Stop()
	}

	opts := []intake.ProcessorOption{
		intake.WithCollector(collector),
		intake.WithDirs(cfg.Intake.ProcessedDir, cfg.Intake.FailedDir),
		intake.WithLogger(logger.Slog().With("component", "intake")),
	}
	if store != nil {
		opts = append(opts, intake.WithStorage(store, backend))
	}
	processor := intake.NewProcessor(engs, opts...)

	var srv *http.Server
	if cfg.Server.Enabled {
		srv = buildServer(cfg, collector, store)
		go func() {
			logger.Info("observability server listening", "address", cfg.Server.ListenAddress)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("observability server failed", "error", err)
				cancel()
			}
		}()
	}

	watchErr := make(chan error, 1)
	if cfg.Intake.Enabled {
		watcher, err := intake.NewWatcher(&intake.WatcherConfig{
			WatchDir:       cfg.Intake.WatchDir,
			DebounceWindow: cfg.Intake.DebounceWindow,
		}, processor, logger.Slog().With("component", "intake.watcher"))
		if err != nil {
			return err
		}
		go func() { watchErr <- watcher.Watch(ctx) }()
	} else {
		logger.Warn("intake watcher disabled; serving observability endpoints only")
	}

	select {
	case <-ctx.Done():
	case err := <-watchErr:
		if err != nil {
			logger.Error("intake watcher failed", "error", err)
		}
	}

	logger.Info("shutting down")
	if srv != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("observability server shutdown", "error", err)
		}
	}

	return nil
}

// buildEngines constructs the configured engine set, or all registered
// engines when the list is empty.
func buildEngines(cfg *config.Config, secret policy.Secret) (map[string]*attest.Engine, error) {
	if len(cfg.Engines.Enabled) == 0 {
		return engines.NewAll(secret)
	}

	engs := make(map[string]*attest.Engine, len(cfg.Engines.Enabled))
	for _, name := range cfg.Engines.Enabled {
		eng, err := engines.New(name, secret)
		if err != nil {
			return nil, err
		}
		engs[name] = eng
	}
	return engs, nil
}

// buildServer wires the metrics, health, and version endpoints.
func buildServer(cfg *config.Config, collector *metrics.Collector, store ledger.Storage) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Server.MetricsPath, collector.Handler())

	checker := health.New(5 * time.Second)
	if store != nil {
		checker.RegisterCheck("ledger", func(ctx context.Context) error {
			_, err := store.Count(ctx, &ledger.Query{Limit: 1})
			return err
		})
	}
	if cfg.Intake.Enabled {
		watchDir := cfg.Intake.WatchDir
		checker.RegisterCheck("intake_dir", func(ctx context.Context) error {
			_, err := os.Stat(watchDir)
			return err
		})
	}
	health.Register(mux, checker, Version, GitCommit, BuildDate)

	return &http.Server{
		Addr:         cfg.Server.ListenAddress,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
