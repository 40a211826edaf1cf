// Package storage provides persistence backends for the verification
// ledger.
//
// Two backends are available:
//
//   - SQLiteStorage: durable storage in a single database file. The
//     driver is selected at build time; the default build uses the pure
//     Go driver, and the cgo_sqlite build tag switches to the cgo one.
//   - MemoryStorage: a map-backed store for tests.
package storage
