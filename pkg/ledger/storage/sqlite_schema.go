package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the ledger database schema.
const Schema = `
-- Ledger records table
CREATE TABLE IF NOT EXISTS ledger (
    id TEXT PRIMARY KEY,
    bundle_id TEXT NOT NULL UNIQUE,

    -- Filterable summary
    engine TEXT NOT NULL,
    outcome TEXT NOT NULL,
    overall_result TEXT NOT NULL,
    merkle_root TEXT NOT NULL,
    policy_name TEXT NOT NULL,
    policy_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,

    -- Full payloads
    decision TEXT NOT NULL,
    bundle TEXT NOT NULL
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_ledger_created_at ON ledger(created_at);
CREATE INDEX IF NOT EXISTS idx_ledger_engine ON ledger(engine);
CREATE INDEX IF NOT EXISTS idx_ledger_outcome ON ledger(outcome);
CREATE INDEX IF NOT EXISTS idx_ledger_overall_result ON ledger(overall_result);
CREATE INDEX IF NOT EXISTS idx_ledger_policy_name ON ledger(policy_name);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
