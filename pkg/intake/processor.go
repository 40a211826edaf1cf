package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"attestor-hq/attestor/pkg/attest"
	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/engines"
	"attestor-hq/attestor/pkg/ledger"
	"attestor-hq/attestor/pkg/telemetry/metrics"
)

// Processor evaluates intake requests against a set of engines and
// persists the results.
type Processor struct {
	engines   map[string]*attest.Engine
	store     ledger.Storage
	backend   string
	collector *metrics.Collector
	logger    *slog.Logger

	processedDir string
	failedDir    string
}

// ProcessorOption customizes a Processor.
type ProcessorOption func(*Processor)

// WithStorage attaches a ledger storage backend. The backend name is
// used as a metric label.
func WithStorage(store ledger.Storage, backend string) ProcessorOption {
	return func(p *Processor) {
		p.store = store
		p.backend = backend
	}
}

// WithCollector attaches a metrics collector.
func WithCollector(collector *metrics.Collector) ProcessorOption {
	return func(p *Processor) {
		p.collector = collector
	}
}

// WithDirs sets the directories files are moved to after handling.
// When unset, handled files are deleted instead of moved.
func WithDirs(processedDir, failedDir string) ProcessorOption {
	return func(p *Processor) {
		p.processedDir = processedDir
		p.failedDir = failedDir
	}
}

// WithLogger sets the processor logger.
func WithLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor creates a processor over the given engines.
func NewProcessor(engs map[string]*attest.Engine, opts ...ProcessorOption) *Processor {
	p := &Processor{
		engines: engs,
		logger:  slog.Default().With("component", "intake"),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process evaluates one request and persists the result when storage is
// attached. The returned result carries the decision and its
// verification bundle.
func (p *Processor) Process(ctx context.Context, req *Request) (*engine.Result, error) {
	eng, ok := p.engines[req.Engine]
	if !ok {
		if p.collector != nil {
			p.collector.RecordEvaluationError(req.Engine, "unknown_engine")
		}
		return nil, &engines.UnknownEngineError{Name: req.Engine}
	}

	start := time.Now()
	res, err := eng.Evaluate(req.Input)
	if err != nil {
		if p.collector != nil {
			p.collector.RecordEvaluationError(req.Engine, classifyError(err))
		}
		return nil, err
	}

	if p.collector != nil {
		p.collector.RecordEvaluation(req.Engine, res.Decision.Outcome, res.Bundle.OverallResult, time.Since(start))
		for _, c := range res.Bundle.PoI.Results {
			if !c.Satisfied || (c.Triggered != nil && *c.Triggered) {
				p.collector.RecordConstraintViolation(req.Engine, c.Constraint, c.Severity)
			}
		}
	}

	if p.store != nil {
		record, err := ledger.NewRecord(res)
		if err != nil {
			return nil, fmt.Errorf("failed to build ledger record: %w", err)
		}
		if err := p.store.Store(ctx, record); err != nil {
			if p.collector != nil {
				p.collector.RecordLedgerWrite(p.backend, "error")
			}
			return nil, fmt.Errorf("failed to store ledger record: %w", err)
		}
		if p.collector != nil {
			p.collector.RecordLedgerWrite(p.backend, "success")
		}
	}

	p.logger.Info("request processed",
		"engine", req.Engine,
		"request_id", req.RequestID,
		"outcome", res.Decision.Outcome,
		"overall_result", res.Bundle.OverallResult,
		"bundle_id", res.Bundle.BundleID,
	)

	return res, nil
}

// ProcessFile reads, evaluates, and files away one request file. The
// file moves to the processed directory on success and to the failed
// directory on any error.
func (p *Processor) ProcessFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if p.collector != nil {
			p.collector.RecordIntakeFile("error")
		}
		return fmt.Errorf("failed to read intake file %q: %w", path, err)
	}

	req, err := ParseRequest(data)
	if err != nil {
		p.logger.Warn("rejecting intake file",
			"path", path,
			"error", err,
		)
		if p.collector != nil {
			p.collector.RecordIntakeFile("invalid")
		}
		p.fileAway(path, p.failedDir)
		return err
	}

	if _, err := p.Process(ctx, req); err != nil {
		p.logger.Error("intake evaluation failed",
			"path", path,
			"engine", req.Engine,
			"error", err,
		)
		if p.collector != nil {
			p.collector.RecordIntakeFile(classifyFileStatus(err))
		}
		p.fileAway(path, p.failedDir)
		return err
	}

	if p.collector != nil {
		p.collector.RecordIntakeFile("processed")
	}
	p.fileAway(path, p.processedDir)
	return nil
}

// fileAway moves a handled file into dir, or removes it when no dir is
// configured. Move failures are logged, not returned; the evaluation
// outcome already stands.
func (p *Processor) fileAway(path, dir string) {
	if dir == "" {
		if err := os.Remove(path); err != nil {
			p.logger.Warn("failed to remove intake file", "path", path, "error", err)
		}
		return
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		p.logger.Warn("failed to create intake directory", "dir", dir, "error", err)
		return
	}

	dest := filepath.Join(dir, filepath.Base(path))
	if _, err := os.Stat(dest); err == nil {
		// Same file name dropped twice; keep both.
		dest = filepath.Join(dir, fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(path)))
	}

	if err := os.Rename(path, dest); err != nil {
		p.logger.Warn("failed to move intake file", "path", path, "dest", dest, "error", err)
	}
}

// classifyError maps evaluation errors to metric label values.
func classifyError(err error) string {
	var invalid *engine.InvalidInputError
	if errors.As(err, &invalid) {
		return "invalid_input"
	}
	return "internal"
}

// classifyFileStatus maps file handling errors to intake metric labels.
func classifyFileStatus(err error) string {
	var invalid *engine.InvalidInputError
	var unknown *engines.UnknownEngineError
	if errors.As(err, &invalid) || errors.As(err, &unknown) {
		return "invalid"
	}
	return "error"
}
