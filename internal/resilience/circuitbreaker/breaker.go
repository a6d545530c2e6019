// Package circuitbreaker guards the connection pool with a sony/gobreaker breaker.
//
// Only failures of the store itself count toward opening the breaker: lost
// connections, I/O errors, timeouts. Errors a statement earns on its own, such as
// a foreign key violation or a syntax error, are returned to the caller but leave
// the breaker untouched.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"newsdesk/internal/observability/metrics"
)

// Config holds the breaker thresholds.
type Config struct {
	// Name labels log lines and the db_circuit_breaker_open gauge.
	Name string

	// ConsecutiveFailures opens the breaker once that many store failures happen in a row.
	ConsecutiveFailures uint32

	// Cooldown is how long the breaker stays open before letting trial statements through.
	Cooldown time.Duration

	// HalfOpenRequests is the number of trial statements allowed while half-open.
	HalfOpenRequests uint32

	// Window clears the counts periodically while closed. Zero never clears them.
	Window time.Duration
}

// DBConfig returns the thresholds used for the news store.
func DBConfig() Config {
	return Config{
		Name:                "database",
		ConsecutiveFailures: 5,
		Cooldown:            30 * time.Second,
		HalfOpenRequests:      3,
		Window:              time.Minute,
	}
}

func newBreaker(cfg Config) *gobreaker.CircuitBreaker {
	metrics.RecordCircuitState(cfg.Name, false)
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Window,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsStatementError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.RecordCircuitState(name, to == gobreaker.StateOpen)
		},
	})
}

// guard runs fn through the breaker and restores its static result type.
func guard[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (interface{}, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}
