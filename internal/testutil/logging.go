package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// TestLogHandler captures records in memory so tests can assert on what a handler logged.
type TestLogHandler struct {
	store *logStore
	attrs []slog.Attr
}

type logStore struct {
	mu      sync.Mutex
	records []TestLogRecord
}

type TestLogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

func NewTestLogHandler() *TestLogHandler {
	return &TestLogHandler{store: &logStore{}}
}

func (h *TestLogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *TestLogHandler) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+record.NumAttrs())
	for _, attr := range h.attrs {
		attrs[attr.Key] = attr.Value.Any()
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Any()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = append(h.store.records, TestLogRecord{
		Level:   record.Level,
		Message: record.Message,
		Attrs:   attrs,
	})

	return nil
}

// WithAttrs returns a handler sharing the same record store, so logger.With(...) output is still
// visible to the test.
func (h *TestLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &TestLogHandler{store: h.store, attrs: merged}
}

func (h *TestLogHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *TestLogHandler) GetRecords() []TestLogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return append([]TestLogRecord(nil), h.store.records...)
}

func (h *TestLogHandler) GetRecordsByLevel(level slog.Level) []TestLogRecord {
	var filtered []TestLogRecord
	for _, record := range h.GetRecords() {
		if record.Level == level {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// FindRecord returns the first record with the given message.
func (h *TestLogHandler) FindRecord(message string) (TestLogRecord, bool) {
	for _, record := range h.GetRecords() {
		if record.Message == message {
			return record, true
		}
	}
	return TestLogRecord{}, false
}

func (h *TestLogHandler) Reset() {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = h.store.records[:0]
}

func (h *TestLogHandler) ContainsMessage(level slog.Level, message string) bool {
	for _, record := range h.GetRecordsByLevel(level) {
		if record.Message == message {
			return true
		}
	}
	return false
}

func (h *TestLogHandler) CountByLevel(level slog.Level) int {
	return len(h.GetRecordsByLevel(level))
}
