package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"google-auth-service/internal/config"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggerConfig(t *testing.T, level, format string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "google-auth", Version: "1.0.0"},
		Log: config.LogConfig{Level: level, Format: format, File: filepath.Join(t.TempDir(), "nested", "dir", "debug.log")},
	}
}

func TestNewLogger_WritesConsoleAndFile(t *testing.T) {
	cfg := loggerConfig(t, "info", "text")
	var console bytes.Buffer

	logger, closer, err := newLogger(cfg, &console)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible", "user_id", "123")
	require.NoError(t, closer.Close())

	file, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)

	for _, out := range []string{console.String(), string(file)} {
		assert.Contains(t, out, "msg=visible")
		assert.Contains(t, out, "user_id=123")
		assert.Contains(t, out, "app=google-auth")
		assert.Contains(t, out, "version=1.0.0")
		assert.NotContains(t, out, "hidden")
	}
}

func TestNewLogger_AppendsToExistingFile(t *testing.T) {
	cfg := loggerConfig(t, "info", "text")

	for _, msg := range []string{"first run", "second run"} {
		logger, closer, err := newLogger(cfg, &bytes.Buffer{})
		require.NoError(t, err)
		logger.Info(msg)
		require.NoError(t, closer.Close())
	}

	file, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(file), "first run")
	assert.Contains(t, string(file), "second run")
}

func TestNewLogger_JSONFormat(t *testing.T) {
	cfg := loggerConfig(t, "debug", "json")
	var console bytes.Buffer

	logger, closer, err := newLogger(cfg, &console)
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("token exchanged", "duration_ms", 12)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(console.String())), &record))
	assert.Equal(t, "token exchanged", record["msg"])
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "google-auth", record["app"])
}

func TestNewLogger_DebugModeAddsStackToErrors(t *testing.T) {
	cfg := loggerConfig(t, "debug", "text")
	cfg.App.Debug = true
	var console bytes.Buffer

	logger, closer, err := newLogger(cfg, &console)
	require.NoError(t, err)
	defer closer.Close()

	logger.Warn("no stack here")
	logger.Error("boom")

	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.NotContains(t, lines[0], "stack=")
	assert.Contains(t, console.String(), "stack=")
}

func TestNewLogger_UnwritableLogPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	cfg := loggerConfig(t, "info", "text")
	cfg.Log.File = filepath.Join(blocker, "debug.log")

	_, _, err := newLogger(cfg, &bytes.Buffer{})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "INFO", parseLevel("info").String())
	assert.Equal(t, "WARN", parseLevel("warn").String())
	assert.Equal(t, "ERROR", parseLevel("error").String())
	assert.Equal(t, "INFO", parseLevel("").String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestMultiHandler_KeepsWritingAfterHandlerError(t *testing.T) {
	var console bytes.Buffer
	handler := NewMultiHandler(
		slog.NewTextHandler(failingWriter{}, nil),
		slog.NewTextHandler(&console, nil),
	)

	err := handler.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still logged", 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, console.String(), "still logged")
}
