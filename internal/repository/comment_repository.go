package repository

import (
	"context"
	"time"

	"newsdesk/internal/domain/entity"
)

type CommentRepository interface {
	List(ctx context.Context) ([]*entity.Comment, error)
	// ListByNewsID runs a query scoped to news_id; it never filters in memory.
	ListByNewsID(ctx context.Context, newsID int64) ([]*entity.Comment, error)
	Create(ctx context.Context, body string, newsID int64, createdAt time.Time) (int64, error)
	// Delete returns 0 when no comment had the given id.
	Delete(ctx context.Context, id int64) (int64, error)
}
