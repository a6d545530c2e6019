package metrics

// RecordNewsCreated counts a successfully inserted news article.
func RecordNewsCreated() {
	NewsCreatedTotal.Inc()
}

// RecordNewsDeleted counts deleted news rows. Zero is ignored.
func RecordNewsDeleted(count int64) {
	if count > 0 {
		NewsDeletedTotal.Add(float64(count))
	}
}

// RecordCommentCreated counts a successfully inserted comment.
func RecordCommentCreated() {
	CommentsCreatedTotal.Inc()
}

// RecordCommentDeleted counts deleted comment rows. Zero is ignored.
func RecordCommentDeleted(count int64) {
	if count > 0 {
		CommentsDeletedTotal.Add(float64(count))
	}
}

// RecordValidationError counts an input rejected on the given field.
func RecordValidationError(field string) {
	ValidationErrorsTotal.WithLabelValues(field).Inc()
}
