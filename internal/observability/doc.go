// Package observability groups the logging, metrics and tracing infrastructure.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry spans for database operations
//
// Example usage:
//
//	import (
//	    "newsdesk/internal/observability/logging"
//	    "newsdesk/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger, closer := logging.New(cfg.Log, os.Stderr)
//	    defer closer.Close()
//	    metrics.RecordNewsCreated()
//	}
package observability
