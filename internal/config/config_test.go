package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requiredEnvironment = map[string]string{
	EnvAppName:            "google-auth",
	EnvAppVersion:         "1.2.3",
	EnvDebug:              "false",
	EnvGoogleClientID:     "client-id.apps.googleusercontent.com",
	EnvGoogleClientSecret: "client-secret",
	EnvGoogleRedirectURL:  "http://localhost:8000/auth/google/callback",
	EnvGoogleAccessToken:  "https://oauth2.googleapis.com/token",
	EnvGoogleAuthorizeURL: "https://accounts.google.com/o/oauth2/v2/auth",
	EnvGoogleJWKSURI:      "https://www.googleapis.com/oauth2/v3/certs",
	EnvAllowedOrigins:     "http://localhost:3000, https://app.example.com",
	EnvAllowedHeaders:     "Content-Type,Authorization",
	EnvAllowedMethods:     "get,post,options",
	EnvLogLevel:           "INFO",
	EnvFrontendURL:        "http://localhost:3000",
	EnvDatabaseDriver:     "postgresql",
	EnvDatabaseUser:       "app",
	EnvDatabasePassword:   "s3cret",
	EnvDatabaseHost:       "localhost",
	EnvDatabasePort:       "5432",
	EnvDatabaseName:       "auth",
}

func setRequiredEnvironment(t *testing.T) {
	t.Helper()
	for key, value := range requiredEnvironment {
		t.Setenv(key, value)
	}
}

// unsetEnv removes key for the duration of the test. t.Setenv registers the restore.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	setRequiredEnvironment(t)

	cfg, err := LoadConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, "google-auth", cfg.App.Name)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, DefaultServerConfig.Port, cfg.Server.Port)

	assert.Equal(t, "client-id.apps.googleusercontent.com", cfg.Google.ClientID)
	assert.Equal(t, DefaultGoogleConfig.Issuer, cfg.Google.Issuer)
	assert.Equal(t, []string{"openid", "profile", "email"}, cfg.Google.Scopes)

	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"Content-Type", "Authorization"}, cfg.CORS.AllowedHeaders)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.CORS.AllowedMethods)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, DefaultLogConfig.File, cfg.Log.File)

	assert.Equal(t, "memory", cfg.Sessions.Store)
	assert.Equal(t, "session_id", cfg.Sessions.Name)
	assert.Equal(t, 10*time.Minute, cfg.Sessions.Lifetime)
	assert.True(t, cfg.Sessions.Secure)
}

func TestLoadConfig_MissingRequiredVariable(t *testing.T) {
	required := []string{
		EnvAppName, EnvAppVersion, EnvDebug,
		EnvGoogleClientID, EnvGoogleClientSecret, EnvGoogleRedirectURL,
		EnvGoogleAccessToken, EnvGoogleAuthorizeURL, EnvGoogleJWKSURI,
		EnvAllowedOrigins, EnvAllowedHeaders, EnvAllowedMethods,
		EnvLogLevel, EnvFrontendURL,
		EnvDatabaseDriver, EnvDatabaseUser, EnvDatabaseHost, EnvDatabasePort, EnvDatabaseName,
	}

	for _, name := range required {
		t.Run(name, func(t *testing.T) {
			setRequiredEnvironment(t)
			t.Setenv(name, "")

			cfg, err := LoadConfig("", "")
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), name+" is required")
		})
	}
}

func TestLoadConfig_UnsetDatabasePassword(t *testing.T) {
	setRequiredEnvironment(t)
	unsetEnv(t, EnvDatabasePassword)

	cfg, err := LoadConfig("", "")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), EnvDatabasePassword+" is required")
}

func TestLoadConfig_DatabasePasswordFromYAML(t *testing.T) {
	setRequiredEnvironment(t)
	unsetEnv(t, EnvDatabasePassword)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  password: from-file\n"), 0o600))

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Database.Password)
}

func TestLoadConfig_EmptyDatabasePasswordIsAllowed(t *testing.T) {
	setRequiredEnvironment(t)
	t.Setenv(EnvDatabasePassword, "")

	cfg, err := LoadConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, "postgresql://app:@localhost:5432/auth", cfg.Database.ConnectionString())
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		errMsg string
	}{
		{name: "debug is not a boolean", key: EnvDebug, value: "sometimes", errMsg: "DEBUG must be a boolean"},
		{name: "unknown log level", key: EnvLogLevel, value: "verbose", errMsg: "invalid LOG_LEVEL"},
		{name: "unknown log format", key: EnvLogFormat, value: "xml", errMsg: "invalid LOG_FORMAT"},
		{name: "authorize url without scheme", key: EnvGoogleAuthorizeURL, value: "accounts.google.com/auth", errMsg: "GOOGLE_AUTHORIZE_URL must have http or https scheme"},
		{name: "redirect url protocol relative", key: EnvGoogleRedirectURL, value: "//evil.example.com/cb", errMsg: "GOOGLE_REDIRECT_URL must have http or https scheme"},
		{name: "unknown database driver", key: EnvDatabaseDriver, value: "oracle", errMsg: "invalid DATABASE_DRIVER"},
		{name: "database port not numeric", key: EnvDatabasePort, value: "five", errMsg: "DATABASE_PORT must be a port number"},
		{name: "unknown session store", key: EnvSessionStore, value: "memcached", errMsg: "invalid SESSION_STORE"},
		{name: "redis store without address", key: EnvSessionStore, value: "redis", errMsg: "REDIS_ADDRESS is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnvironment(t)
			t.Setenv(EnvRedisAddress, "")
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig("", "")
			if err == nil {
				t.Fatalf("LoadConfig() expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("LoadConfig() error = %v, want error containing %v", err, tt.errMsg)
			}
		})
	}
}

func TestLoadConfig_NormalisesLogLevels(t *testing.T) {
	tests := map[string]string{
		"DEBUG":    "debug",
		"warning":  "warn",
		"Warn":     "warn",
		"CRITICAL": "error",
		"error":    "error",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			setRequiredEnvironment(t)
			t.Setenv(EnvLogLevel, input)

			cfg, err := LoadConfig("", "")
			require.NoError(t, err)
			assert.Equal(t, want, cfg.Log.Level)
		})
	}
}

func TestLoadConfig_YAMLWithEnvironmentOverride(t *testing.T) {
	setRequiredEnvironment(t)
	t.Setenv(EnvAppName, "")
	t.Setenv(EnvSessionStore, "")
	t.Setenv(EnvRedisAddress, "redis.internal:6379")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  name: from-yaml
  version: 0.0.1
server:
  port: 9090
sessions:
  store: redis
  lifetime: 15m
  secure: false
redis:
  db: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)

	assert.Equal(t, "from-yaml", cfg.App.Name)
	// APP_VERSION is set in the environment and wins over the file.
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Sessions.Store)
	assert.Equal(t, 15*time.Minute, cfg.Sessions.Lifetime)
	assert.False(t, cfg.Sessions.Secure)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Address)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadConfig_DebugServerPort(t *testing.T) {
	tests := []struct {
		name string
		port string
		want int
	}{
		{name: "highest valid port is kept", port: "65535", want: 65535},
		{name: "custom port is kept", port: "6060", want: 6060},
		{name: "out of range falls back to default", port: "65536", want: DefaultDebugConfig.Port},
		{name: "zero falls back to default", port: "0", want: DefaultDebugConfig.Port},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnvironment(t)
			t.Setenv(EnvDebug, "true")
			t.Setenv("DEBUG_SERVER_PORT", tt.port)

			cfg, err := LoadConfig("", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Server.Debug.Port)
			assert.Equal(t, DefaultDebugConfig.Host, cfg.Server.Debug.Host)
		})
	}
}

func TestLoadConfig_MissingYAMLFile(t *testing.T) {
	setRequiredEnvironment(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EnvFile(t *testing.T) {
	setRequiredEnvironment(t)
	unsetEnv(t, EnvFrontendURL)

	path := filepath.Join(t.TempDir(), ".env")
	content := "FRONTEND_URL=https://frontend.example.com\nAPP_NAME=ignored-because-already-set\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig("", path)
	require.NoError(t, err)

	assert.Equal(t, "https://frontend.example.com", cfg.Frontend.URL)
	assert.Equal(t, "google-auth", cfg.App.Name)
}

func TestLoadConfig_MissingEnvFileIsIgnored(t *testing.T) {
	setRequiredEnvironment(t)

	_, err := LoadConfig("", filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "postgres",
			cfg:  DatabaseConfig{Driver: "postgresql", User: "app", Password: "pw", Host: "db", Port: "5432", Name: "auth"},
			want: "postgresql://app:pw@db:5432/auth",
		},
		{
			name: "password with reserved characters is escaped",
			cfg:  DatabaseConfig{Driver: "postgres", User: "app", Password: "p@ss/word", Host: "db", Port: "5432", Name: "auth"},
			want: "postgres://app:p%40ss%2Fword@db:5432/auth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ConnectionString())
		})
	}
}
