// Package repository declares the persistence ports of the application.
// Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"
	"time"

	"newsdesk/internal/domain/entity"
)

type NewsRepository interface {
	// List returns every news row in insertion order.
	List(ctx context.Context) ([]*entity.News, error)
	// Get returns (nil, nil) if the news does not exist.
	Get(ctx context.Context, id int64) (*entity.News, error)
	// Create inserts a news row and returns the store-assigned id.
	Create(ctx context.Context, title, body string, createdAt time.Time) (int64, error)
	// Delete removes the news row and every comment whose news_id matches, atomically.
	// It returns the number of news rows removed (0 or 1).
	Delete(ctx context.Context, id int64) (int64, error)
}
