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

type NewsRepo struct{ gw *db.Gateway }

func NewNewsRepo(gw *db.Gateway) repository.NewsRepository {
	return &NewsRepo{gw: gw}
}

func (repo *NewsRepo) List(ctx context.Context) ([]*entity.News, error) {
	const query = `
SELECT id, title, body, created_at
FROM news
ORDER BY id ASC`
	news := make([]*entity.News, 0, 16)
	err := repo.gw.QueryContext(ctx, "news.list", func(rows *sql.Rows) error {
		for rows.Next() {
			n, err := scanNews(rows)
			if err != nil {
				return err
			}
			news = append(news, n)
		}
		return nil
	}, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return news, nil
}

func (repo *NewsRepo) Get(ctx context.Context, id int64) (*entity.News, error) {
	const query = `
SELECT id, title, body, created_at
FROM news
WHERE id = $1
LIMIT 1`
	var (
		newsID      int64
		title, body string
		createdAt   db.Date
	)
	found, err := repo.gw.QueryRowContext(ctx, "news.get", query, []any{id}, &newsID, &title, &body, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if !found {
		return nil, nil
	}
	return entity.NewNews(newsID, title, body, createdAt.Time), nil
}

func (repo *NewsRepo) Create(ctx context.Context, title, body string, createdAt time.Time) (int64, error) {
	const query = `
INSERT INTO news (title, body, created_at)
VALUES ($1, $2, $3)`
	id, err := repo.gw.InsertReturningID(ctx, "news.create", query,
		title, body, db.DialectPostgres.DateArg(createdAt))
	if err != nil {
		return 0, fmt.Errorf("Create: %w", err)
	}
	return id, nil
}

// Delete removes the comments of the news first and then the news row, in one
// transaction. Either both statements take effect or neither does.
//
// The news row is locked up front so a comment inserted concurrently waits for
// the transaction instead of slipping in between the two deletes.
func (repo *NewsRepo) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := repo.gw.WithTx(ctx, "news.delete", func(tx *db.Tx) error {
		if err := tx.QueryContext(ctx, "news.lock", func(rows *sql.Rows) error {
			return nil
		}, `SELECT id FROM news WHERE id = $1 FOR UPDATE`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "comment.delete_by_news",
			`DELETE FROM comment WHERE news_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, "news.delete_row",
			`DELETE FROM news WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("Delete: %w", err)
	}
	return affected, nil
}

func scanNews(rows *sql.Rows) (*entity.News, error) {
	var (
		id          int64
		title, body string
		createdAt   db.Date
	)
	if err := rows.Scan(&id, &title, &body, &createdAt); err != nil {
		return nil, fmt.Errorf("scan news: %w", err)
	}
	return entity.NewNews(id, title, body, createdAt.Time), nil
}
