package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/db"
)

var day = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

func newGateway(t *testing.T) (*db.Gateway, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return db.New(conn, db.DialectPostgres, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

/* ───────── List / Get ───────── */

func TestNewsRepo_List(t *testing.T) {
	gw, mock := newGateway(t)

	want := []*entity.News{entity.NewNews(1, "Launch", "v1 released", day)}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, body, created_at")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "created_at"}).
			AddRow(int64(1), "Launch", "v1 released", day))

	got, err := postgres.NewNewsRepo(gw).List(context.Background())
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_Get_NotFound(t *testing.T) {
	gw, mock := newGateway(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "created_at"}))

	got, err := postgres.NewNewsRepo(gw).Get(context.Background(), 7)
	if err != nil || got != nil {
		t.Fatalf("Get = %v, %v; want nil, nil", got, err)
	}
}

/* ───────── Create ───────── */

func TestNewsRepo_Create(t *testing.T) {
	gw, mock := newGateway(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO news (title, body, created_at)\nVALUES ($1, $2, $3) RETURNING id")).
		WithArgs("Launch", "v1 released", day).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := postgres.NewNewsRepo(gw).Create(context.Background(), "Launch", "v1 released", day.Add(9*time.Hour))
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if id != 11 {
		t.Fatalf("Create id=%d, want 11", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

/* ───────── Delete ───────── */

func TestNewsRepo_Delete(t *testing.T) {
	gw, mock := newGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM news WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comment WHERE news_id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM news WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := postgres.NewNewsRepo(gw).Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if n != 1 {
		t.Fatalf("Delete affected=%d, want 1", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_Delete_CommentStepFails(t *testing.T) {
	gw, mock := newGateway(t)
	fault := errors.New("connection reset by peer")

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec("DELETE FROM comment").WillReturnError(fault)
	mock.ExpectRollback()

	_, err := postgres.NewNewsRepo(gw).Delete(context.Background(), 1)
	if !errors.Is(err, fault) || !errors.Is(err, entity.ErrStorage) {
		t.Fatalf("Delete err=%v, want StorageError wrapping fault", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
