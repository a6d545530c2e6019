// Package entity defines the core domain entities and validation logic for the application.
// It contains the News and Comment records, the error kinds surfaced to callers,
// and the presence/positivity checks shared by the use case layer.
package entity

import "time"

// DateLayout is the storage format of created_at columns.
const DateLayout = "2006-01-02"

// News represents a news article.
// A News owns zero or more Comments through Comment.NewsID.
type News struct {
	ID        int64
	Title     string
	Body      string
	CreatedAt time.Time
}

// NewNews builds a News value with every field set.
// CreatedAt is truncated to the calendar day in UTC, matching what the store keeps.
func NewNews(id int64, title, body string, createdAt time.Time) *News {
	return &News{
		ID:        id,
		Title:     title,
		Body:      body,
		CreatedAt: Day(createdAt),
	}
}

// Validate checks the fields a caller must supply on creation.
func (n *News) Validate() error {
	if err := ValidateRequired("title", n.Title); err != nil {
		return err
	}
	return ValidateRequired("body", n.Body)
}

// Day returns the calendar day of t, read in t's own location, as midnight UTC.
// A local time.Now therefore yields the server's local date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
