package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/adapter/persistence/postgres"
)

func TestCommentRepo_ListByNewsID(t *testing.T) {
	gw, mock := newGateway(t)

	want := []*entity.Comment{
		entity.NewComment(1, "Congrats", day, 1),
		entity.NewComment(2, "Nice", day, 1),
	}
	rows := sqlmock.NewRows([]string{"id", "body", "created_at", "news_id"})
	for _, c := range want {
		rows.AddRow(c.ID, c.Body, c.CreatedAt, c.NewsID)
	}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE news_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	got, err := postgres.NewCommentRepo(gw).ListByNewsID(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByNewsID err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ListByNewsID mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestCommentRepo_Create(t *testing.T) {
	gw, mock := newGateway(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comment")).
		WithArgs("Congrats", day, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	id, err := postgres.NewCommentRepo(gw).Create(context.Background(), "Congrats", 1, day)
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if id != 4 {
		t.Fatalf("Create id=%d, want 4", id)
	}
}

func TestCommentRepo_Delete_Absent(t *testing.T) {
	gw, mock := newGateway(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comment WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := postgres.NewCommentRepo(gw).Delete(context.Background(), 99)
	if err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if n != 0 {
		t.Fatalf("Delete affected=%d, want 0", n)
	}
}
