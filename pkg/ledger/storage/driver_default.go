//go:build !cgo_sqlite

package storage

import _ "modernc.org/sqlite"

// sqliteDriver names the database/sql driver registered by the pure Go
// SQLite implementation.
const sqliteDriver = "sqlite"
