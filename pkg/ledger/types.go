package ledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/verify"
)

// Record is one persisted evaluation: the denormalized columns used for
// filtering plus the full decision and bundle JSON for re-verification.
type Record struct {
	// Identity
	ID       string `json:"id"`        // UUID v4
	BundleID string `json:"bundle_id"` // From the verification bundle

	// Filterable summary
	Engine        string    `json:"engine"`
	Outcome       string    `json:"outcome"`
	OverallResult string    `json:"overall_result"`
	MerkleRoot    string    `json:"merkle_root"`
	PolicyName    string    `json:"policy_name"`
	PolicyHash    string    `json:"policy_hash"`
	CreatedAt     time.Time `json:"created_at"`

	// Full payloads, stored verbatim
	Decision json.RawMessage `json:"decision"`
	Bundle   json.RawMessage `json:"bundle"`
}

// NewRecord builds a ledger record from an evaluation result.
func NewRecord(res *engine.Result) (*Record, error) {
	decisionJSON, err := json.Marshal(res.Decision)
	if err != nil {
		return nil, err
	}
	bundleJSON, err := json.Marshal(res.Bundle)
	if err != nil {
		return nil, err
	}

	return &Record{
		ID:            uuid.New().String(),
		BundleID:      res.Bundle.BundleID,
		Engine:        res.Decision.Engine,
		Outcome:       res.Decision.Outcome,
		OverallResult: res.Bundle.OverallResult,
		MerkleRoot:    res.Bundle.MerkleRoot,
		PolicyName:    res.Bundle.PoI.Policy,
		PolicyHash:    res.Bundle.PoI.PolicyHash,
		CreatedAt:     time.Now().UTC(),
		Decision:      decisionJSON,
		Bundle:        bundleJSON,
	}, nil
}

// DecodeBundle unmarshals the stored bundle for re-verification.
func (r *Record) DecodeBundle() (*verify.Bundle, error) {
	var b verify.Bundle
	if err := json.Unmarshal(r.Bundle, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Query defines filter parameters for querying ledger records.
type Query struct {
	// Time range
	StartTime *time.Time `json:"start_time,omitempty"` // Inclusive start time
	EndTime   *time.Time `json:"end_time,omitempty"`   // Inclusive end time

	// Summary filters
	Engine        string `json:"engine,omitempty"`
	Outcome       string `json:"outcome,omitempty"`
	OverallResult string `json:"overall_result,omitempty"`
	PolicyName    string `json:"policy_name,omitempty"`

	// Pagination
	Limit  int `json:"limit,omitempty"`  // Default 100
	Offset int `json:"offset,omitempty"` // Default 0

	// SortOrder is "ASC" or "DESC" over created_at. Default DESC.
	SortOrder string `json:"sort_order,omitempty"`
}

// Storage is the persistence interface for ledger records.
type Storage interface {
	// Store persists a record.
	Store(ctx context.Context, record *Record) error

	// Get retrieves a record by bundle id.
	Get(ctx context.Context, bundleID string) (*Record, error)

	// Query retrieves records matching the filters.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the filters and reports how many
	// were removed.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases backend resources.
	Close() error
}
