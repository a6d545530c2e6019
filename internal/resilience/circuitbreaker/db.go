package circuitbreaker

import (
	"context"
	"database/sql"

	"github.com/sony/gobreaker"
)

// DBCircuitBreaker routes pool calls through a breaker. While it is open, calls
// fail with gobreaker.ErrOpenState without touching the database.
type DBCircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
	db *sql.DB
}

// NewDBCircuitBreaker guards db with DBConfig thresholds.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig guards db with custom thresholds.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{cb: newBreaker(cfg), db: db}
}

// QueryContext runs a read statement.
func (dcb *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return guard(dcb.cb, func() (*sql.Rows, error) {
		return dcb.db.QueryContext(ctx, query, args...)
	})
}

// ExecContext runs a write statement.
func (dcb *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return guard(dcb.cb, func() (sql.Result, error) {
		return dcb.db.ExecContext(ctx, query, args...)
	})
}

// PrepareContext prepares a statement.
func (dcb *DBCircuitBreaker) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return guard(dcb.cb, func() (*sql.Stmt, error) {
		return dcb.db.PrepareContext(ctx, query)
	})
}

// BeginTx starts a transaction. Statements inside it run on the pinned
// connection and bypass the breaker.
func (dcb *DBCircuitBreaker) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return guard(dcb.cb, func() (*sql.Tx, error) {
		return dcb.db.BeginTx(ctx, opts)
	})
}
