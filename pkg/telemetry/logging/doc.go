// Package logging provides structured logging with subject-data redaction.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Automatic redaction of subject data (SSNs, emails, card numbers)
//   - Context-aware logging with request, engine, and bundle fields
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:             "info",
//	    Format:            "json",
//	    RedactSubjectData: true,
//	})
//
//	logger.Info("evaluation completed",
//	    "engine", "credit_assessment",
//	    "outcome", "APPROVED",
//	    "duration_ms", 12,
//	)
//
//	// Context-aware logging
//	ctx := logging.WithBundleID(ctx, bundleID)
//	logger.InfoContext(ctx, "bundle stored") // includes bundle_id
//
// # Redaction
//
// Decision inputs describe patients, borrowers, candidates, and filers.
// When RedactSubjectData is enabled, string log values matching personal
// data patterns are rewritten before they reach the handler:
//
//   - Emails: user@example.com -> ***@***
//   - SSN: 123-45-6789 -> ***-**-****
//   - Card numbers: 4111-1111-1111-1111 -> ****-****-****-****
//   - Inline secrets: secret=abc -> secret: ***
//
// Values under sensitive key names (secret, ssn, email, ...) are
// replaced entirely.
package logging
