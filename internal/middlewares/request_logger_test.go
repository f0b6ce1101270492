package middlewares

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := middleware.RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/auth/google/login", nil)
	req.RemoteAddr = "203.0.113.9:4000"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := logs.String()
	assert.Contains(t, out, "request completed")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/auth/google/login")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "client_ip=203.0.113.9")
	assert.Contains(t, out, "request_id=")
}

func TestRequestLogger_SilentAboveDebug(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, logs.String())
}
