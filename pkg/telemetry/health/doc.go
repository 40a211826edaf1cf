// Package health provides liveness and readiness endpoints for the
// watch-mode HTTP server.
//
// # Endpoints
//
//   - /health: liveness probe, returns 200 while the process runs
//   - /ready: readiness probe, runs registered component checks
//   - /version: build information
//
// # Usage
//
//	checker := health.New(5 * time.Second)
//
//	checker.RegisterCheck("ledger", func(ctx context.Context) error {
//	    _, err := store.Count(ctx, &ledger.Query{})
//	    return err
//	})
//
//	mux := http.NewServeMux()
//	health.Register(mux, checker, version, commit, buildTime)
//
// Readiness returns 503 with a per-component breakdown as soon as any
// registered check fails.
package health
