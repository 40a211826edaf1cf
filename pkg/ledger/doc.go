// Package ledger persists evaluation outcomes and their verification
// bundles for audit and offline re-verification.
//
// The core itself is a pure function; nothing in pkg/attest writes to
// the ledger. Callers that want an audit trail store the returned
// result here and can later re-check any bundle's hashes and signatures
// without re-running the engine.
//
// # Components
//
//   - types.go:    the ledger record, query filters, and the Storage interface
//   - storage/:    SQLite and in-memory backends
//   - retention/:  age-based pruning with a cron schedule
//   - export/:     JSON and CSV export of query results
package ledger
