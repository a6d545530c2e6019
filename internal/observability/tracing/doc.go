// Package tracing provides OpenTelemetry helpers for database spans.
//
// Spans are created through the global tracer provider; without an installed
// SDK provider they are no-ops.
package tracing
