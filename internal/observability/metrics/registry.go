// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track news and comment lifecycle operations
var (
	// NewsCreatedTotal counts news articles created
	NewsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_created_total",
			Help: "Total number of news articles created",
		},
	)

	// NewsDeletedTotal counts news articles removed together with their comments
	NewsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_deleted_total",
			Help: "Total number of news articles deleted",
		},
	)

	// CommentsCreatedTotal counts comments created
	CommentsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_created_total",
			Help: "Total number of comments created",
		},
	)

	// CommentsDeletedTotal counts comments deleted individually
	CommentsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_deleted_total",
			Help: "Total number of comments deleted individually",
		},
	)

	// ValidationErrorsTotal counts rejected inputs by field
	ValidationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_errors_total",
			Help: "Total number of inputs rejected by validation",
		},
		[]string{"field"},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBErrorsTotal counts failed statements by operation
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total number of failed database statements",
		},
		[]string{"operation"},
	)

	// DBTransactionsTotal counts finished transactions by outcome (commit, rollback)
	DBTransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_transactions_total",
			Help: "Total number of database transactions by outcome",
		},
		[]string{"outcome"},
	)

	// DBCircuitOpen is 1 while the named circuit breaker rejects statements
	DBCircuitOpen = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_circuit_breaker_open",
			Help: "Whether the database circuit breaker is open (1) or not (0)",
		},
		[]string{"name"},
	)
)

// RecordOperationDuration records the duration of a named operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDBError records a failed statement for the operation.
func RecordDBError(operation string) {
	DBErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordTransaction records a committed or rolled back transaction.
func RecordTransaction(committed bool) {
	outcome := "commit"
	if !committed {
		outcome = "rollback"
	}
	DBTransactionsTotal.WithLabelValues(outcome).Inc()
}

// RecordCircuitState sets the breaker gauge for name.
func RecordCircuitState(name string, open bool) {
	v := 0.0
	if open {
		v = 1
	}
	DBCircuitOpen.WithLabelValues(name).Set(v)
}
