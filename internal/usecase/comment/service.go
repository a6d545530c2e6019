// Package comment provides the validating use cases for comments on news articles.
package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
	newsUC "newsdesk/internal/usecase/news"
)

// Service provides comment management use cases.
type Service struct {
	Repo repository.CommentRepository
	// News is used to check that a comment's parent article exists.
	News repository.NewsRepository
	// Now returns the creation date for new comments. Defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List retrieves every comment in insertion order.
func (s *Service) List(ctx context.Context) ([]*entity.Comment, error) {
	comments, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// ListForNews retrieves the comments attached to one article.
// An unknown article id yields an empty slice.
func (s *Service) ListForNews(ctx context.Context, newsID int64) ([]*entity.Comment, error) {
	if err := entity.ValidatePositiveID("newsId", newsID); err != nil {
		return nil, recordInvalid(err)
	}
	comments, err := s.Repo.ListByNewsID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("list comments for news: %w", err)
	}
	return comments, nil
}

// Add attaches a comment dated today to an existing article and returns its id.
// Returns a ValidationError if body is empty or newsID is not positive, and
// news.ErrNewsNotFound if the article does not exist.
func (s *Service) Add(ctx context.Context, body string, newsID int64) (int64, error) {
	candidate := entity.NewComment(0, body, s.now(), newsID)
	if err := candidate.Validate(); err != nil {
		return 0, recordInvalid(err)
	}

	if s.News != nil {
		parent, err := s.News.Get(ctx, newsID)
		if err != nil {
			return 0, fmt.Errorf("get news: %w", err)
		}
		if parent == nil {
			return 0, newsUC.ErrNewsNotFound
		}
	}

	id, err := s.Repo.Create(ctx, candidate.Body, candidate.NewsID, candidate.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("add comment: %w", err)
	}
	metrics.RecordCommentCreated()
	return id, nil
}

// Delete removes one comment and returns the number of rows removed.
// Deleting an id that never existed returns 0 without error.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	if err := entity.ValidatePositiveID("id", id); err != nil {
		return 0, recordInvalid(err)
	}
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete comment: %w", err)
	}
	metrics.RecordCommentDeleted(n)
	return n, nil
}

func recordInvalid(err error) error {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		metrics.RecordValidationError(ve.Field)
	}
	return err
}
