package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// EngineKey is the context key for decision engine names.
	EngineKey contextKey = "engine"

	// BundleIDKey is the context key for verification bundle IDs.
	BundleIDKey contextKey = "bundle_id"

	// PolicyKey is the context key for policy names.
	PolicyKey contextKey = "policy"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithEngine adds a decision engine name to the context.
func WithEngine(ctx context.Context, engine string) context.Context {
	return context.WithValue(ctx, EngineKey, engine)
}

// GetEngine retrieves the decision engine name from the context.
func GetEngine(ctx context.Context) string {
	if engine, ok := ctx.Value(EngineKey).(string); ok {
		return engine
	}
	return ""
}

// WithBundleID adds a verification bundle ID to the context.
func WithBundleID(ctx context.Context, bundleID string) context.Context {
	return context.WithValue(ctx, BundleIDKey, bundleID)
}

// GetBundleID retrieves the verification bundle ID from the context.
func GetBundleID(ctx context.Context) string {
	if bundleID, ok := ctx.Value(BundleIDKey).(string); ok {
		return bundleID
	}
	return ""
}

// WithPolicy adds a policy name to the context.
func WithPolicy(ctx context.Context, policy string) context.Context {
	return context.WithValue(ctx, PolicyKey, policy)
}

// GetPolicy retrieves the policy name from the context.
func GetPolicy(ctx context.Context) string {
	if policy, ok := ctx.Value(PolicyKey).(string); ok {
		return policy
	}
	return ""
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}

	if engine := GetEngine(ctx); engine != "" {
		fields = append(fields, "engine", engine)
	}

	if bundleID := GetBundleID(ctx); bundleID != "" {
		fields = append(fields, "bundle_id", bundleID)
	}

	if policy := GetPolicy(ctx); policy != "" {
		fields = append(fields, "policy", policy)
	}

	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, "trace_id", traceID)
	}

	return fields
}
