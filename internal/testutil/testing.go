package testutil

import (
	"encoding/json"
	"google-auth-service/internal/config"
	"google-auth-service/internal/middlewares"
	"google-auth-service/internal/mocks"
	"google-auth-service/internal/storage"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"
)

// TestContext holds everything needed for testing
type TestContext struct {
	AppContext     *middlewares.AppContext
	Request        *http.Request
	Response       *httptest.ResponseRecorder
	MockController *gomock.Controller
	MockOAuth      *mocks.MockOAuthClient
	MockSession    *mocks.MockSessionProvider
	MockStorage    *mocks.MockStorageProvider
	LogHandler     *TestLogHandler
}

// DefaultConfig is a configuration that passes validation, for handlers that read settings.
func DefaultConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "google-auth", Version: "0.0.0-test"},
		Google: config.GoogleConfig{
			ClientID:       "client-id.apps.googleusercontent.com",
			ClientSecret:   "client-secret",
			RedirectURL:    "http://localhost:8000/auth/google/callback",
			AccessTokenURL: "https://oauth2.googleapis.com/token",
			AuthorizeURL:   "https://accounts.google.com/o/oauth2/v2/auth",
			JWKSURI:        "https://www.googleapis.com/oauth2/v3/certs",
			Issuer:         config.DefaultGoogleConfig.Issuer,
			Scopes:         config.DefaultGoogleConfig.Scopes,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAgeSeconds:  config.DefaultCORSConfig.MaxAgeSeconds,
		},
		Log:      config.LogConfig{Level: "debug", Format: "text"},
		Frontend: config.FrontendConfig{URL: "http://localhost:3000"},
		Sessions: config.DefaultSessionConfig,
		Database: config.DatabaseConfig{
			Driver: config.DatabaseDriverSQLite,
			User:   "app",
			Host:   "localhost",
			Port:   "5432",
			Name:   ":memory:",
		},
	}
}

// NewTestContextWithURL creates a complete test setup with sensible defaults
func NewTestContextWithURL(t *testing.T, method, url string) *TestContext {
	logHandler := NewTestLogHandler()
	logger := slog.New(logHandler)

	ctrl := gomock.NewController(t)

	mockOAuth := mocks.NewMockOAuthClient(ctrl)
	mockSession := mocks.NewMockSessionProvider(ctrl)
	mockStorage := mocks.NewMockStorageProvider(ctrl)

	req := httptest.NewRequest(method, url, nil)
	rr := httptest.NewRecorder()

	appCtx := &middlewares.AppContext{
		Context:        req.Context(),
		Config:         DefaultConfig(),
		Logger:         logger,
		SessionManager: mockSession,
		OAuthClient:    mockOAuth,
		Storage:        mockStorage,
		Request:        req,
		Response:       rr,
	}

	return &TestContext{
		AppContext:     appCtx,
		Request:        req,
		Response:       rr,
		MockController: ctrl,
		MockOAuth:      mockOAuth,
		MockSession:    mockSession,
		MockStorage:    mockStorage,
		LogHandler:     logHandler,
	}
}

// Finish should be called at the end of tests to clean up mocks
func (tc *TestContext) Finish() {
	if tc.MockController != nil {
		tc.MockController.Finish()
	}
}

func (tc *TestContext) AssertLogsContainMessage(t *testing.T, level slog.Level, message string) {
	t.Helper()
	if !tc.LogHandler.ContainsMessage(level, message) {
		t.Errorf("Expected to find log entry with level %v containing message: %s", level, message)
	}
}

func (tc *TestContext) AssertLogCount(t *testing.T, level slog.Level, expectedCount int) {
	t.Helper()
	count := tc.LogHandler.CountByLevel(level)
	if count != expectedCount {
		t.Errorf("Expected %d log entries at level %v, got %d", expectedCount, level, count)
	}
}

func (tc *TestContext) GetLogRecords() []TestLogRecord {
	return tc.LogHandler.GetRecords()
}

// CallHandler executes a handler with the test context
func (tc *TestContext) CallHandler(handler middlewares.AppHandler) {
	handler(tc.AppContext)
}

// AssertStatus checks the HTTP status code
func (tc *TestContext) AssertStatus(t *testing.T, expectedStatus int) {
	t.Helper()
	if tc.Response.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d", expectedStatus, tc.Response.Code)
	}
}

// AssertContentType checks the content type header
func (tc *TestContext) AssertContentType(t *testing.T, expectedType string) {
	t.Helper()
	if ct := tc.Response.Header().Get("Content-Type"); ct != expectedType {
		t.Errorf("Expected content type %s, got %s", expectedType, ct)
	}
}

// GetJSONResponse parses the response body as JSON
func (tc *TestContext) GetJSONResponse(t *testing.T) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(tc.Response.Body.Bytes(), &response); err != nil {
		t.Fatalf("Could not parse JSON response: %v", err)
	}
	return response
}

func (tc *TestContext) GetResponseBody() string {
	return tc.Response.Body.String()
}

// AssertJSONField checks a specific field in a JSON response
func (tc *TestContext) AssertJSONField(t *testing.T, field string, expected any) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	if actual, ok := response[field]; !ok || actual != expected {
		t.Errorf("Expected %s to be %v, got %v", field, expected, response[field])
	}
}

// AssertJSONObject validates an object field with expected key-value pairs
func (tc *TestContext) AssertJSONObject(t *testing.T, field string, expectedFields map[string]interface{}) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	actualObj, ok := actual.(map[string]interface{})
	if !ok {
		t.Errorf("Expected %s to be an object, got %T", field, actual)
		return
	}

	for key, expectedValue := range expectedFields {
		if actualValue, keyExists := actualObj[key]; !keyExists {
			t.Errorf("Expected field %s.%s to exist", field, key)
		} else if actualValue != expectedValue {
			t.Errorf("Expected %s.%s to be %v, got %v", field, key, expectedValue, actualValue)
		}
	}
}

// WithConfig allows you to override the default config for specific tests
func (tc *TestContext) WithConfig(cfg *config.Config) *TestContext {
	tc.AppContext.Config = cfg
	return tc
}

// WithStorage replaces the storage mock, e.g. with nil to simulate a missing database
func (tc *TestContext) WithStorage(provider storage.StorageProvider) *TestContext {
	tc.AppContext.Storage = provider
	return tc
}

// Helper to add query parameters to the request
func (tc *TestContext) WithQueryParam(key, value string) *TestContext {
	q := tc.Request.URL.Query()
	q.Add(key, value)
	tc.Request.URL.RawQuery = q.Encode()
	return tc
}

// Helper to add headers
func (tc *TestContext) WithHeader(key, value string) *TestContext {
	tc.Request.Header.Set(key, value)
	return tc
}
