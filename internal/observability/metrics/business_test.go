package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordNewsCreated(t *testing.T) {
	before := testutil.ToFloat64(NewsCreatedTotal)
	RecordNewsCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(NewsCreatedTotal))
}

func TestRecordNewsDeleted(t *testing.T) {
	tests := []struct {
		name  string
		count int64
		delta float64
	}{
		{name: "one row", count: 1, delta: 1},
		{name: "nothing deleted", count: 0, delta: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(NewsDeletedTotal)
			RecordNewsDeleted(tt.count)
			assert.Equal(t, before+tt.delta, testutil.ToFloat64(NewsDeletedTotal))
		})
	}
}

func TestRecordCommentCounters(t *testing.T) {
	created := testutil.ToFloat64(CommentsCreatedTotal)
	deleted := testutil.ToFloat64(CommentsDeletedTotal)

	RecordCommentCreated()
	RecordCommentDeleted(1)
	RecordCommentDeleted(0)

	assert.Equal(t, created+1, testutil.ToFloat64(CommentsCreatedTotal))
	assert.Equal(t, deleted+1, testutil.ToFloat64(CommentsDeletedTotal))
}

func TestRecordValidationError(t *testing.T) {
	before := testutil.ToFloat64(ValidationErrorsTotal.WithLabelValues("title"))
	RecordValidationError("title")
	assert.Equal(t, before+1, testutil.ToFloat64(ValidationErrorsTotal.WithLabelValues("title")))
}

func TestRecordTransaction(t *testing.T) {
	commits := testutil.ToFloat64(DBTransactionsTotal.WithLabelValues("commit"))
	rollbacks := testutil.ToFloat64(DBTransactionsTotal.WithLabelValues("rollback"))

	RecordTransaction(true)
	RecordTransaction(false)
	RecordTransaction(false)

	assert.Equal(t, commits+1, testutil.ToFloat64(DBTransactionsTotal.WithLabelValues("commit")))
	assert.Equal(t, rollbacks+2, testutil.ToFloat64(DBTransactionsTotal.WithLabelValues("rollback")))
}

func TestRecordOperationDuration(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordOperationDuration("news.list", 3*time.Millisecond)
	})

	before := testutil.ToFloat64(DBErrorsTotal.WithLabelValues("news.list"))
	RecordDBError("news.list")
	assert.Equal(t, before+1, testutil.ToFloat64(DBErrorsTotal.WithLabelValues("news.list")))
}
