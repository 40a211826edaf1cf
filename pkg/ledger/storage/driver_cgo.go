//go:build cgo_sqlite

package storage

import _ "github.com/mattn/go-sqlite3"

// sqliteDriver names the database/sql driver registered by the cgo
// SQLite implementation.
const sqliteDriver = "sqlite3"
