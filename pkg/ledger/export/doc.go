// Package export serializes ledger query results to JSON and CSV for
// archives and external audit tooling.
package export
