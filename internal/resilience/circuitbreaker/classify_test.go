package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE news (id INTEGER PRIMARY KEY, title TEXT NOT NULL);
		CREATE TABLE comment (id INTEGER PRIMARY KEY, news_id INTEGER NOT NULL REFERENCES news(id));`)
	require.NoError(t, err)
	return db
}

/* ───────── SQLite ───────── */

func TestIsStatementError_SQLite(t *testing.T) {
	db := openSQLite(t)

	tests := []struct {
		name  string
		query string
		args  []any
	}{
		{name: "foreign key", query: "INSERT INTO comment (news_id) VALUES (?)", args: []any{999}},
		{name: "not null", query: "INSERT INTO news (title) VALUES (NULL)"},
		{name: "syntax", query: "INSERT INTO news VALUES ("},
		{name: "missing table", query: "SELECT * FROM headlines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Exec(tt.query, tt.args...)
			require.Error(t, err)
			assert.True(t, IsStatementError(err), "err = %v", err)
			assert.True(t, IsStatementError(fmt.Errorf("comment.create: %w", err)), "wrapped")
		})
	}
}

/* ───────── Postgres ───────── */

func TestIsStatementError_Postgres(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{code: "23503", want: true},  // foreign_key_violation
		{code: "23502", want: true},  // not_null_violation
		{code: "22007", want: true},  // invalid_datetime_format
		{code: "42P01", want: true},  // undefined_table
		{code: "08006", want: false}, // connection_failure
		{code: "57P01", want: false}, // admin_shutdown
		{code: "53300", want: false}, // too_many_connections
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := fmt.Errorf("query: %w", &pgconn.PgError{Code: tt.code})
			assert.Equal(t, tt.want, IsStatementError(err))
		})
	}
}

/* ───────── other ───────── */

func TestIsStatementError_Other(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "canceled", err: context.Canceled, want: true},
		{name: "no rows", err: sql.ErrNoRows, want: true},
		{name: "tx done", err: sql.ErrTxDone, want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
		{name: "refused", err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, want: false},
		{name: "plain", err: errors.New("disk I/O error"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStatementError(tt.err))
		})
	}
}
