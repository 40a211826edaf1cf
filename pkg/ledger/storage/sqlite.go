package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"attestor-hq/attestor/pkg/ledger"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/ledger.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "ledger.storage.sqlite")

	db, err := sql.Open(sqliteDriver, config.Path)
	if err != nil {
		return nil, ledger.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite ledger storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		_, err := s.db.Exec("PRAGMA journal_mode=WAL;")
		if err != nil {
			return ledger.NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs))
	if err != nil {
		return ledger.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	_, err = s.db.Exec(Schema)
	if err != nil {
		return ledger.NewStorageError("sqlite", "create_schema", err)
	}

	_, err = s.db.Exec(InsertSchemaVersion, SchemaVersion)
	if err != nil {
		return ledger.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err = s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return ledger.NewStorageError("sqlite", "get_schema_version", err)
	}

	if version != SchemaVersion {
		return ledger.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)

	return nil
}

// Store persists a ledger record to the database.
func (s *SQLiteStorage) Store(ctx context.Context, record *ledger.Record) error {
	query := `
		INSERT INTO ledger (
			id, bundle_id,
			engine, outcome, overall_result, merkle_root, policy_name, policy_hash, created_at,
			decision, bundle
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.BundleID,
		record.Engine, record.Outcome, record.OverallResult, record.MerkleRoot,
		record.PolicyName, record.PolicyHash, record.CreatedAt,
		string(record.Decision), string(record.Bundle),
	)
	if err != nil {
		return ledger.NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Get retrieves a record by bundle id.
func (s *SQLiteStorage) Get(ctx context.Context, bundleID string) (*ledger.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, bundle_id, engine, outcome, overall_result, merkle_root, policy_name, policy_hash, created_at, decision, bundle FROM ledger WHERE bundle_id = ?",
		bundleID,
	)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, &ledger.NotFoundError{BundleID: bundleID}
	}
	if err != nil {
		return nil, ledger.NewStorageError("sqlite", "get", err)
	}
	return record, nil
}

// Query retrieves ledger records matching the query filters.
func (s *SQLiteStorage) Query(ctx context.Context, query *ledger.Query) ([]*ledger.Record, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT id, bundle_id, engine, outcome, overall_result, merkle_root, policy_name, policy_hash, created_at, decision, bundle FROM ledger"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	sortOrder := "DESC"
	if query.SortOrder == "ASC" {
		sortOrder = "ASC"
	}
	sqlQuery += " ORDER BY created_at " + sortOrder

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)

	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, ledger.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*ledger.Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, ledger.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, ledger.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of ledger records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *ledger.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM ledger"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count)
	if err != nil {
		return 0, ledger.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// Delete removes ledger records matching the query filters.
// Returns the number of records deleted.
func (s *SQLiteStorage) Delete(ctx context.Context, query *ledger.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM ledger"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, ledger.NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, ledger.NewStorageError("sqlite", "delete", err)
	}

	return count, nil
}

// Close releases resources held by the storage backend.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return ledger.NewStorageError("sqlite", "close", err)
	}

	s.logger.Info("SQLite ledger storage closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the WHERE clause (without "WHERE" keyword) and the query arguments.
func buildWhereClause(query *ledger.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.StartTime != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *query.StartTime)
	}
	if query.EndTime != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *query.EndTime)
	}

	if query.Engine != "" {
		conditions = append(conditions, "engine = ?")
		args = append(args, query.Engine)
	}
	if query.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, query.Outcome)
	}
	if query.OverallResult != "" {
		conditions = append(conditions, "overall_result = ?")
		args = append(args, query.OverallResult)
	}
	if query.PolicyName != "" {
		conditions = append(conditions, "policy_name = ?")
		args = append(args, query.PolicyName)
	}

	whereClause := ""
	for i, condition := range conditions {
		if i > 0 {
			whereClause += " AND "
		}
		whereClause += condition
	}

	return whereClause, args
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRecord scans a database row into a ledger record.
func scanRecord(row rowScanner) (*ledger.Record, error) {
	var record ledger.Record
	var decision, bundle string

	err := row.Scan(
		&record.ID, &record.BundleID,
		&record.Engine, &record.Outcome, &record.OverallResult, &record.MerkleRoot,
		&record.PolicyName, &record.PolicyHash, &record.CreatedAt,
		&decision, &bundle,
	)
	if err != nil {
		return nil, err
	}

	record.Decision = json.RawMessage(decision)
	record.Bundle = json.RawMessage(bundle)

	return &record, nil
}
