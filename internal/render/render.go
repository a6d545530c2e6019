// Package render prints news articles and their comments as plain text.
//
// The output is safe to embed in an HTML page: markup is stripped and the
// remaining text is entity-escaped, so "Tom & Jerry" is written as
// "Tom &amp; Jerry".
package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/logging"
)

const (
	msgNoNews     = "No news articles available."
	msgNoComments = "No comments available."
)

// NewsLister lists every news article.
type NewsLister interface {
	List(ctx context.Context) ([]*entity.News, error)
}

// CommentLister lists the comments of one news article.
type CommentLister interface {
	ListForNews(ctx context.Context, newsID int64) ([]*entity.Comment, error)
}

// Renderer writes the news feed with escaped user content.
type Renderer struct {
	news     NewsLister
	comments CommentLister
	policy   *bluemonday.Policy
}

// New creates a Renderer. Markup in titles and bodies is stripped and the
// remaining text entity-escaped. Failures are logged with the logger carried
// by the context.
func New(news NewsLister, comments CommentLister) *Renderer {
	return &Renderer{
		news:     news,
		comments: comments,
		policy:   bluemonday.StrictPolicy(),
	}
}

// Render writes every news article followed by its comments.
func (r *Renderer) Render(ctx context.Context, w io.Writer) error {
	news, err := r.news.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("failed to list news", slog.Any("error", err))
		return fmt.Errorf("render: %w", err)
	}
	if len(news) == 0 {
		_, err := fmt.Fprintln(w, msgNoNews)
		return err
	}

	for _, n := range news {
		if err := r.renderNews(ctx, w, n); err != nil {
			return err
		}
	}
	return nil
}

// RenderComments writes the comment lines of a single article.
func (r *Renderer) RenderComments(ctx context.Context, w io.Writer, newsID int64) error {
	comments, err := r.comments.ListForNews(ctx, newsID)
	if err != nil {
		logging.FromContext(ctx).Error("failed to list comments",
			slog.Int64("news_id", newsID),
			slog.Any("error", err))
		return fmt.Errorf("render comments: %w", err)
	}
	if len(comments) == 0 {
		_, err := fmt.Fprintln(w, msgNoComments)
		return err
	}
	for _, c := range comments {
		if _, err := fmt.Fprintf(w, "Comment %d : %s\n", c.ID, r.clean(c.Body)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderNews(ctx context.Context, w io.Writer, n *entity.News) error {
	if _, err := fmt.Fprintf(w, "############ NEWS %s ############\n%s\n", r.clean(n.Title), r.clean(n.Body)); err != nil {
		return err
	}
	return r.RenderComments(ctx, w, n.ID)
}

func (r *Renderer) clean(s string) string {
	return r.policy.Sanitize(s)
}
