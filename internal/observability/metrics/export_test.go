package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile_DefaultGatherer(t *testing.T) {
	RecordNewsCreated()
	RecordCircuitState("database", false)

	path := filepath.Join(t.TempDir(), "newsdesk.prom")
	require.NoError(t, WriteTextfile(path, prometheus.DefaultGatherer))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# TYPE news_created_total counter")
	assert.Contains(t, string(data), `db_circuit_breaker_open{name="database"} 0`)
}

func TestWriteTextfile_BadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "newsdesk.prom")
	err := WriteTextfile(path, prometheus.DefaultGatherer)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "write metrics textfile")
}

func TestRecordCircuitState(t *testing.T) {
	RecordCircuitState("test-db", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(DBCircuitOpen.WithLabelValues("test-db")))

	RecordCircuitState("test-db", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(DBCircuitOpen.WithLabelValues("test-db")))
}
