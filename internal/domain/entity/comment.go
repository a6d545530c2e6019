package entity

import "time"

// Comment represents a reader comment attached to a News article.
type Comment struct {
	ID        int64
	Body      string
	CreatedAt time.Time
	NewsID    int64
}

// NewComment builds a Comment value with every field set.
func NewComment(id int64, body string, createdAt time.Time, newsID int64) *Comment {
	return &Comment{
		ID:        id,
		Body:      body,
		CreatedAt: Day(createdAt),
		NewsID:    newsID,
	}
}

// Validate checks the fields a caller must supply on creation.
func (c *Comment) Validate() error {
	if err := ValidateRequired("body", c.Body); err != nil {
		return err
	}
	return ValidatePositiveID("newsId", c.NewsID)
}
