package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/repository"
)

type CommentRepo struct{ gw *db.Gateway }

func NewCommentRepo(gw *db.Gateway) repository.CommentRepository {
	return &CommentRepo{gw: gw}
}

func (repo *CommentRepo) List(ctx context.Context) ([]*entity.Comment, error) {
	const query = `
SELECT id, body, created_at, news_id
FROM comment
ORDER BY id ASC`
	comments, err := repo.query(ctx, "comment.list", query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return comments, nil
}

func (repo *CommentRepo) ListByNewsID(ctx context.Context, newsID int64) ([]*entity.Comment, error) {
	const query = `
SELECT id, body, created_at, news_id
FROM comment
WHERE news_id = $1
ORDER BY id ASC`
	comments, err := repo.query(ctx, "comment.list_by_news", query, newsID)
	if err != nil {
		return nil, fmt.Errorf("ListByNewsID: %w", err)
	}
	return comments, nil
}

func (repo *CommentRepo) Create(ctx context.Context, body string, newsID int64, createdAt time.Time) (int64, error) {
	const query = `
INSERT INTO comment (body, created_at, news_id)
VALUES ($1, $2, $3)`
	id, err := repo.gw.InsertReturningID(ctx, "comment.create", query,
		body, db.DialectPostgres.DateArg(createdAt), newsID)
	if err != nil {
		return 0, fmt.Errorf("Create: %w", err)
	}
	return id, nil
}

func (repo *CommentRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := repo.gw.ExecContext(ctx, "comment.delete", `DELETE FROM comment WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("Delete: RowsAffected: %w", entity.NewStorageError("comment.delete", err))
	}
	return n, nil
}

func (repo *CommentRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.Comment, error) {
	comments := make([]*entity.Comment, 0, 16)
	err := repo.gw.QueryContext(ctx, op, func(rows *sql.Rows) error {
		for rows.Next() {
			var (
				id, newsID int64
				body       string
				createdAt  db.Date
			)
			if err := rows.Scan(&id, &body, &createdAt, &newsID); err != nil {
				return fmt.Errorf("scan comment: %w", err)
			}
			comments = append(comments, entity.NewComment(id, body, createdAt.Time, newsID))
		}
		return nil
	}, query, args...)
	if err != nil {
		return nil, err
	}
	return comments, nil
}
