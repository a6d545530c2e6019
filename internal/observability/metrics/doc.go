// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - Business metrics (news and comments created and deleted, validation rejects)
//   - Database statement duration, failures, transaction outcomes and breaker state
//
// WriteTextfile exports the default registry for the node_exporter textfile collector.
//
// All metrics are automatically registered with the Prometheus default registry.
//
// Example usage:
//
//	start := time.Now()
//	rows, err := db.QueryContext(ctx, query)
//	metrics.RecordOperationDuration("news.list", time.Since(start))
package metrics
