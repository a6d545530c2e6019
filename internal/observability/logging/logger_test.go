package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{name: "default log level (info)", level: "", expected: slog.LevelInfo},
		{name: "debug log level", level: "debug", expected: slog.LevelDebug},
		{name: "upper case warn", level: "WARN", expected: slog.LevelWarn},
		{name: "error log level", level: "error", expected: slog.LevelError},
		{name: "invalid log level defaults to info", level: "invalid", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	defer func() { _ = closer.Close() }()

	logger.Info("added news", slog.Int64("news_id", 1))
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "added news", record["msg"])
	assert.Equal(t, float64(1), record["news_id"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(config.LogConfig{Level: "debug", Format: "text"}, &buf)

	logger.Debug("statement", slog.String("op", "news.list"))

	assert.Contains(t, buf.String(), "msg=statement")
	assert.Contains(t, buf.String(), "op=news.list")
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	var buf bytes.Buffer
	logger, closer := New(config.LogConfig{Level: "info", Format: "json", File: path, MaxSizeMB: 1}, &buf)

	logger.Error("failed to delete news", slog.Int64("news_id", 7))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "failed to delete news")
	assert.Contains(t, buf.String(), "failed to delete news")
}

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	WithOperation(base, "comment.list_by_news").Info("listed comments")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "comment.list_by_news", record["op"])
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	WithFields(base, map[string]interface{}{"news_id": 3, "count": 2}).Info("deleted")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, float64(3), record["news_id"])
	assert.Equal(t, float64(2), record["count"])
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}
