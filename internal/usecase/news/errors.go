// Package news provides the validating use cases for news articles.
// Inputs are checked before any repository call, so a rejected request never
// reaches the store.
package news

import "errors"

// Sentinel errors for news use case operations.
var (
	// ErrNewsNotFound indicates that the referenced news article does not exist.
	// Lookups and deletes of a missing id are not errors; this is returned only
	// when another entity has to reference the article.
	ErrNewsNotFound = errors.New("news not found")
)
