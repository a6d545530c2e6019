package entity

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "required title",
			field:    "title",
			message:  "is required",
			expected: "validation error on field 'title': is required",
		},
		{
			name:     "non-positive id",
			field:    "newsId",
			message:  "must be positive",
			expected: "validation error on field 'newsId': must be positive",
		},
		{
			name:     "empty field name",
			field:    "",
			message:  "test message",
			expected: "validation error on field '': test message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{
				Field:   tt.field,
				Message: tt.message,
			}

			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	var err error = &ValidationError{Field: "body", Message: "is required"}
	wrapped := fmt.Errorf("add comment: %w", err)

	assert.True(t, errors.Is(wrapped, ErrValidationFailed))
	assert.False(t, errors.Is(wrapped, ErrStorage))

	var ve *ValidationError
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "body", ve.Field)
}

func TestStorageError(t *testing.T) {
	err := NewStorageError("news.list", sql.ErrConnDone)

	assert.EqualError(t, err, "storage error in news.list: "+sql.ErrConnDone.Error())
	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, sql.ErrConnDone))
	assert.False(t, errors.Is(err, ErrValidationFailed))
}

func TestNewStorageError_Nil(t *testing.T) {
	assert.NoError(t, NewStorageError("news.list", nil))
}

func TestNewStorageError_KeepsInnermostOp(t *testing.T) {
	inner := NewStorageError("comment.delete_by_news", errors.New("disk I/O error"))
	outer := NewStorageError("news.delete", fmt.Errorf("tx: %w", inner))

	var se *StorageError
	assert.True(t, errors.As(outer, &se))
	assert.Equal(t, "comment.delete_by_news", se.Op)
}
