package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/observability/tracing"
	"newsdesk/internal/resilience/circuitbreaker"
)

// Gateway is the single point of access to the relational store.
//
// Every statement is parameterized, traced, timed, logged and routed through a
// circuit breaker. Failures are returned as *entity.StorageError carrying the
// operation name supplied by the caller.
type Gateway struct {
	db      *sql.DB
	dcb     *circuitbreaker.DBCircuitBreaker
	dialect Dialect
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithStatementTimeout bounds every statement (and every transaction as a whole).
// Zero disables the bound.
func WithStatementTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

// WithCircuitBreaker replaces the default database circuit breaker configuration.
func WithCircuitBreaker(cfg circuitbreaker.Config) Option {
	return func(g *Gateway) { g.dcb = circuitbreaker.NewDBCircuitBreakerWithConfig(g.db, cfg) }
}

// New wraps an open pool.
func New(db *sql.DB, dialect Dialect, logger *slog.Logger, opts ...Option) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{
		db:      db,
		dcb:     circuitbreaker.NewDBCircuitBreaker(db),
		dialect: dialect,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dialect returns the SQL flavour of the underlying pool.
func (g *Gateway) Dialect() Dialect { return g.dialect }

// DB returns the underlying pool.
func (g *Gateway) DB() *sql.DB { return g.db }

// Close closes the underlying pool.
func (g *Gateway) Close() error { return g.db.Close() }

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// observe starts a span for op and returns the function that finishes it.
func (g *Gateway) observe(ctx context.Context, op string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracing.StartDBSpan(ctx, op, string(g.dialect))
	logger := logging.WithOperation(g.logger, op)
	return ctx, func(err error) {
		elapsed := time.Since(start)
		metrics.RecordOperationDuration(op, elapsed)
		tracing.EndSpan(span, err)
		if err != nil {
			metrics.RecordDBError(op)
			logger.Error("statement failed",
				slog.Duration("duration", elapsed),
				slog.Any("error", err))
			return
		}
		logger.Info("statement executed", slog.Duration("duration", elapsed))
	}
}

// QueryContext runs a read statement and hands the open rows to scan.
// The rows are closed and their iteration error checked before returning, so the
// statement timeout covers the whole read.
func (g *Gateway) QueryContext(ctx context.Context, op string, scan func(*sql.Rows) error, query string, args ...any) (err error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()
	ctx, done := g.observe(ctx, op)
	defer func() { done(err) }()

	rows, err := g.dcb.QueryContext(ctx, query, args...)
	if err != nil {
		return entity.NewStorageError(op, err)
	}
	return entity.NewStorageError(op, drain(rows, scan))
}

// QueryRowContext scans the first row of a read statement into dest.
// found is false (with a nil error) when the statement returned no rows.
func (g *Gateway) QueryRowContext(ctx context.Context, op string, query string, args []any, dest ...any) (found bool, err error) {
	err = g.QueryContext(ctx, op, func(rows *sql.Rows) error {
		if !rows.Next() {
			return nil
		}
		found = true
		return rows.Scan(dest...)
	}, query, args...)
	return found, err
}

// ExecContext runs a write statement.
func (g *Gateway) ExecContext(ctx context.Context, op string, query string, args ...any) (res sql.Result, err error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()
	ctx, done := g.observe(ctx, op)
	defer func() { done(err) }()

	res, err = g.dcb.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, entity.NewStorageError(op, err)
	}
	return res, nil
}

// InsertReturningID runs an INSERT and returns the identity the store assigned.
// SQLite reports it through LastInsertId; Postgres has no such notion, so the
// statement is extended with RETURNING id.
func (g *Gateway) InsertReturningID(ctx context.Context, op string, query string, args ...any) (int64, error) {
	if g.dialect == DialectPostgres {
		var id int64
		found, err := g.QueryRowContext(ctx, op, query+" RETURNING id", args, &id)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, entity.NewStorageError(op, errors.New("insert returned no id"))
		}
		return id, nil
	}

	res, err := g.ExecContext(ctx, op, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, entity.NewStorageError(op, err)
	}
	return id, nil
}

// PrepareContext prepares a statement for repeated use. The caller closes it.
func (g *Gateway) PrepareContext(ctx context.Context, op string, query string) (stmt *sql.Stmt, err error) {
	ctx, done := g.observe(ctx, op)
	defer func() { done(err) }()

	stmt, err = g.dcb.PrepareContext(ctx, query)
	if err != nil {
		return nil, entity.NewStorageError(op, err)
	}
	return stmt, nil
}

// WithTx runs fn inside a transaction. The transaction commits when fn returns nil
// and rolls back when fn returns an error or panics; a panic is re-raised after
// the rollback.
func (g *Gateway) WithTx(ctx context.Context, op string, fn func(tx *Tx) error) (err error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()
	ctx, done := g.observe(ctx, op)
	defer func() { done(err) }()

	sqlTx, err := g.dcb.BeginTx(ctx, nil)
	if err != nil {
		return entity.NewStorageError(op, fmt.Errorf("begin: %w", err))
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logging.WithOperation(g.logger, op).Error("rollback failed", slog.Any("error", rbErr))
		}
		metrics.RecordTransaction(false)
		if p := recover(); p != nil {
			panic(p)
		}
	}()

	if err = fn(&Tx{tx: sqlTx, g: g}); err != nil {
		return entity.NewStorageError(op, err)
	}
	if err = sqlTx.Commit(); err != nil {
		return entity.NewStorageError(op, fmt.Errorf("commit: %w", err))
	}
	committed = true
	metrics.RecordTransaction(true)
	return nil
}

// Tx is a transaction scope handed to WithTx callbacks.
// Its statements share one pinned connection.
type Tx struct {
	tx *sql.Tx
	g  *Gateway
}

// ExecContext runs a write statement inside the transaction.
func (t *Tx) ExecContext(ctx context.Context, op string, query string, args ...any) (res sql.Result, err error) {
	ctx, done := t.g.observe(ctx, op)
	defer func() { done(err) }()

	res, err = t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, entity.NewStorageError(op, err)
	}
	return res, nil
}

// QueryContext runs a read statement inside the transaction.
func (t *Tx) QueryContext(ctx context.Context, op string, scan func(*sql.Rows) error, query string, args ...any) (err error) {
	ctx, done := t.g.observe(ctx, op)
	defer func() { done(err) }()

	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return entity.NewStorageError(op, err)
	}
	return entity.NewStorageError(op, drain(rows, scan))
}

func drain(rows *sql.Rows, scan func(*sql.Rows) error) (err error) {
	defer func() {
		if cerr := rows.Close(); err == nil {
			err = cerr
		}
	}()
	if err = scan(rows); err != nil {
		return err
	}
	return rows.Err()
}
