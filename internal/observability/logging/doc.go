// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Optional rotating log file (lumberjack)
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	import "newsdesk/internal/observability/logging"
//
//	func main() {
//	    logger, closer := logging.New(cfg.Log, os.Stderr)
//	    defer closer.Close()
//	    logger.Info("application started", slog.String("version", "1.0"))
//	}
package logging
