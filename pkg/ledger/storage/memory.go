package storage

import (
	"context"
	"sort"
	"sync"

	"attestor-hq/attestor/pkg/ledger"
)

// MemoryStorage implements the Storage interface using an in-memory map.
// This implementation is intended for testing only and should not be used in production.
type MemoryStorage struct {
	records map[string]*ledger.Record // keyed by bundle id
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*ledger.Record),
	}
}

// Store persists a ledger record to memory.
func (s *MemoryStorage) Store(ctx context.Context, record *ledger.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recordCopy := *record
	s.records[record.BundleID] = &recordCopy

	return nil
}

// Get retrieves a record by bundle id.
func (s *MemoryStorage) Get(ctx context.Context, bundleID string) (*ledger.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[bundleID]
	if !ok {
		return nil, &ledger.NotFoundError{BundleID: bundleID}
	}
	recordCopy := *record
	return &recordCopy, nil
}

// Query retrieves ledger records matching the query filters.
func (s *MemoryStorage) Query(ctx context.Context, query *ledger.Query) ([]*ledger.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*ledger.Record{}
	for _, record := range s.records {
		if matchesQuery(record, query) {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if query.SortOrder == "ASC" {
			return results[i].CreatedAt.Before(results[j].CreatedAt)
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	start := query.Offset
	if start > len(results) {
		return []*ledger.Record{}, nil
	}

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	end := start + limit
	if end > len(results) {
		end = len(results)
	}

	return results[start:end], nil
}

// Count returns the number of ledger records matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *ledger.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if matchesQuery(record, query) {
			count++
		}
	}

	return count, nil
}

// Delete removes ledger records matching the query filters.
// Returns the number of records deleted.
func (s *MemoryStorage) Delete(ctx context.Context, query *ledger.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for id, record := range s.records {
		if matchesQuery(record, query) {
			delete(s.records, id)
			count++
		}
	}

	return count, nil
}

// Close releases resources held by the storage backend.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*ledger.Record)
	return nil
}

// matchesQuery reports whether a record passes every query filter.
func matchesQuery(record *ledger.Record, query *ledger.Query) bool {
	if query.StartTime != nil && record.CreatedAt.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && record.CreatedAt.After(*query.EndTime) {
		return false
	}
	if query.Engine != "" && record.Engine != query.Engine {
		return false
	}
	if query.Outcome != "" && record.Outcome != query.Outcome {
		return false
	}
	if query.OverallResult != "" && record.OverallResult != query.OverallResult {
		return false
	}
	if query.PolicyName != "" && record.PolicyName != query.PolicyName {
		return false
	}
	return true
}
