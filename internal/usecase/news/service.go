package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

// Service provides news management use cases.
// It validates inputs and delegates persistence to the repository.
type Service struct {
	Repo repository.NewsRepository
	// Now returns the creation date for new articles. Defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List retrieves every news article in insertion order.
// An empty store yields an empty slice, not an error.
func (s *Service) List(ctx context.Context) ([]*entity.News, error) {
	news, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return news, nil
}

// Get retrieves a single article. It returns (nil, nil) when the id is unknown.
func (s *Service) Get(ctx context.Context, id int64) (*entity.News, error) {
	if err := entity.ValidatePositiveID("id", id); err != nil {
		return nil, recordInvalid(err)
	}
	n, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get news: %w", err)
	}
	return n, nil
}

// Add creates a news article dated today and returns its id.
// Returns a ValidationError if title or body is empty.
func (s *Service) Add(ctx context.Context, title, body string) (int64, error) {
	candidate := entity.NewNews(0, title, body, s.now())
	if err := candidate.Validate(); err != nil {
		return 0, recordInvalid(err)
	}

	id, err := s.Repo.Create(ctx, candidate.Title, candidate.Body, candidate.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("add news: %w", err)
	}
	metrics.RecordNewsCreated()
	return id, nil
}

// Delete removes a news article together with all of its comments and returns
// the number of articles removed (0 when the id was unknown).
// A returned storage error means nothing was deleted.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	if err := entity.ValidatePositiveID("id", id); err != nil {
		return 0, recordInvalid(err)
	}
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete news: %w", err)
	}
	metrics.RecordNewsDeleted(n)
	return n, nil
}

func recordInvalid(err error) error {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		metrics.RecordValidationError(ve.Field)
	}
	return err
}
