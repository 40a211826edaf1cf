// Package config defines the YAML configuration for the attestor
// runtime and handles loading, defaulting, environment overrides, and
// validation.
//
// # Loading
//
//	cfg, err := config.LoadConfigWithEnvOverrides("attestor.yaml")
//
// The loading sequence is file, then defaults, then ATTESTOR_*
// environment variables, then validation. Environment variables always
// win over file values (e.g. ATTESTOR_LEDGER_BACKEND=memory).
//
// # Sections
//
//   - engines: which decision engines are active
//   - ledger: persistence backend (sqlite or memory)
//   - retention: pruning schedule and archive settings
//   - intake: directory watcher for dropped input files
//   - server: observability HTTP server (metrics, health)
//   - telemetry: logging and metrics settings
//
// The PoO signing secret is deliberately absent from this file; it is
// read only from the environment (see pkg/policy.SecretFromEnv) so
// configuration files stay free of key material.
package config
