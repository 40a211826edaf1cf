// Package retention enforces age- and count-based retention on the
// verification ledger, optionally archiving records to JSON before
// deletion. Pruning can run on demand or on a cron schedule.
package retention
