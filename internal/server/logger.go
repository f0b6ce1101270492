package server

import (
	"context"
	"errors"
	"fmt"
	"google-auth-service/internal/config"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
)

// setupLogger writes every record to stderr and appends it to cfg.Log.File. The returned closer
// releases the file.
func setupLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg *config.Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}

	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}

	var handlers []slog.Handler
	for _, w := range []io.Writer{console, logFile} {
		if cfg.Log.Format == "json" {
			handlers = append(handlers, slog.NewJSONHandler(w, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(w, opts))
		}
	}

	var handler slog.Handler = NewMultiHandler(handlers...)
	if cfg.App.Debug {
		handler = NewStackTraceHandler(handler)
	}

	logger := slog.New(handler).With("app", cfg.App.Name, "version", cfg.App.Version)

	return logger, logFile, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return f, nil
}

// MultiHandler fans a record out to several handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes r to every enabled handler, even after one of them fails.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return NewMultiHandler(handlers...)
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return NewMultiHandler(handlers...)
}

// StackTraceHandler attaches the goroutine stack to error records. Only used in debug mode.
type StackTraceHandler struct {
	handler slog.Handler
}

func NewStackTraceHandler(h slog.Handler) *StackTraceHandler {
	return &StackTraceHandler{handler: h}
}

func (h *StackTraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *StackTraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		r = r.Clone()
		r.Add("stack", string(debug.Stack()))
	}
	return h.handler.Handle(ctx, r)
}

func (h *StackTraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &StackTraceHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *StackTraceHandler) WithGroup(name string) slog.Handler {
	return &StackTraceHandler{handler: h.handler.WithGroup(name)}
}
