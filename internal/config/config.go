package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfig builds the application configuration. Values are layered: the optional YAML file at
// configPath first, then the optional dotenv file, then the process environment. The result is
// validated before it is returned, so a missing required setting stops startup.
func LoadConfig(configPath, envFile string) (*Config, error) {
	var config Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	if err := applyEnvironmentOverrides(&config); err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

var (
	EnvAppName             = "APP_NAME"
	EnvAppVersion          = "APP_VERSION"
	EnvDebug               = "DEBUG"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvGoogleRedirectURL   = "GOOGLE_REDIRECT_URL"
	EnvGoogleAccessToken   = "GOOGLE_ACCESS_TOKEN_URL"
	EnvGoogleAuthorizeURL  = "GOOGLE_AUTHORIZE_URL"
	EnvGoogleJWKSURI       = "GOOGLE_JWKS_URI"
	EnvGoogleIssuer        = "GOOGLE_ISSUER"
	EnvAllowedOrigins      = "ALLOWED_ORIGINS"
	EnvAllowedHeaders      = "ALLOWED_HEADERS"
	EnvAllowedMethods      = "ALLOWED_METHODS"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
	EnvFrontendURL         = "FRONTEND_URL"
	EnvSessionStore        = "SESSION_STORE"
	EnvSessionSecure       = "SESSION_SECURE"
	EnvRedisAddress        = "REDIS_ADDRESS"
	EnvRedisSentinelMaster = "REDIS_SENTINEL_MASTER"
	EnvDatabaseDriver      = "DATABASE_DRIVER"
	EnvDatabaseUser        = "DATABASE_USER"
	EnvDatabasePassword    = "DATABASE_PASSWORD"
	EnvDatabaseHost        = "DATABASE_HOST"
	EnvDatabasePort        = "DATABASE_PORT"
	EnvDatabaseName        = "DATABASE_NAME"
)

// loadEnvFile copies a dotenv file into the process environment. Variables that are already set
// win over the file, and a missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	return nil
}

func applyEnvironmentOverrides(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	_, passwordInEnv := os.LookupEnv(EnvDatabasePassword)
	config.Database.passwordSet = passwordInEnv || config.Database.Password != ""

	config.Google.Scopes = trimCSV(config.Google.Scopes)
	config.CORS.AllowedOrigins = trimCSV(config.CORS.AllowedOrigins)
	config.CORS.AllowedMethods = trimCSV(config.CORS.AllowedMethods)
	config.CORS.AllowedHeaders = trimCSV(config.CORS.AllowedHeaders)
	config.Redis.Sentinel.SentinelAddresses = trimCSV(config.Redis.Sentinel.SentinelAddresses)

	return nil
}

func validateConfig(config *Config) error {

	err := config.validateAppConfig()
	if err != nil {
		return err
	}

	err = config.validateServerConfig()
	if err != nil {
		return err
	}

	err = config.validateGoogleConfig()
	if err != nil {
		return err
	}

	err = config.validateCORSConfig()
	if err != nil {
		return err
	}

	err = config.validateLogConfig()
	if err != nil {
		return err
	}

	err = config.validateFrontendConfig()
	if err != nil {
		return err
	}

	err = config.validateSessionConfig()
	if err != nil {
		return err
	}

	if config.Sessions.Store == "redis" {
		err = config.validateRedisConfig()
		if err != nil {
			return err
		}
	}

	err = config.validateDatabaseConfig()
	if err != nil {
		return err
	}

	return nil
}

func (c *Config) validateAppConfig() error {
	if c.App.Name == "" {
		return requiredError(EnvAppName)
	}

	if c.App.Version == "" {
		return requiredError(EnvAppVersion)
	}

	if c.App.DebugRaw == "" {
		return requiredError(EnvDebug)
	}

	debug, err := strconv.ParseBool(strings.TrimSpace(c.App.DebugRaw))
	if err != nil {
		return fmt.Errorf("%s must be a boolean, got %q", EnvDebug, c.App.DebugRaw)
	}
	c.App.Debug = debug

	return nil
}

func (c *Config) validateServerConfig() error {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerConfig.Port
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.App.Debug {
		if c.Server.Debug.Host == "" {
			c.Server.Debug.Host = DefaultDebugConfig.Host
		}
		if c.Server.Debug.Port <= 0 || c.Server.Debug.Port > 65535 {
			c.Server.Debug.Port = DefaultDebugConfig.Port
		}
	}

	return nil
}

func (c *Config) validateGoogleConfig() error {
	if c.Google.ClientID == "" {
		return requiredError(EnvGoogleClientID)
	}

	if c.Google.ClientSecret == "" {
		return requiredError(EnvGoogleClientSecret)
	}

	if err := validateRedirectURL(c.Google.RedirectURL, EnvGoogleRedirectURL); err != nil {
		return err
	}

	if err := validateURL(c.Google.AccessTokenURL, EnvGoogleAccessToken); err != nil {
		return err
	}

	if err := validateURL(c.Google.AuthorizeURL, EnvGoogleAuthorizeURL); err != nil {
		return err
	}

	if err := validateURL(c.Google.JWKSURI, EnvGoogleJWKSURI); err != nil {
		return err
	}

	if c.Google.Issuer == "" {
		c.Google.Issuer = DefaultGoogleConfig.Issuer
	} else if err := validateURL(c.Google.Issuer, EnvGoogleIssuer); err != nil {
		return err
	}

	if len(c.Google.Scopes) == 0 {
		c.Google.Scopes = DefaultGoogleConfig.Scopes
	}

	return nil
}

func (c *Config) validateCORSConfig() error {
	if len(c.CORS.AllowedOrigins) == 0 {
		return requiredError(EnvAllowedOrigins)
	}

	if len(c.CORS.AllowedHeaders) == 0 {
		return requiredError(EnvAllowedHeaders)
	}

	if len(c.CORS.AllowedMethods) == 0 {
		return requiredError(EnvAllowedMethods)
	}

	for i, method := range c.CORS.AllowedMethods {
		c.CORS.AllowedMethods[i] = strings.ToUpper(method)
	}

	if c.CORS.MaxAgeSeconds == 0 {
		c.CORS.MaxAgeSeconds = DefaultCORSConfig.MaxAgeSeconds
	}

	return nil
}

func (c *Config) validateLogConfig() error {
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig.Format
	} else {
		switch strings.ToLower(c.Log.Format) {
		case "text":
			c.Log.Format = "text"
		case "json":
			c.Log.Format = "json"
		default:
			return fmt.Errorf("invalid %s: %s, options are text or json", EnvLogFormat, c.Log.Format)
		}
	}

	if c.Log.Level == "" {
		return requiredError(EnvLogLevel)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug":
		c.Log.Level = "debug"
	case "info":
		c.Log.Level = "info"
	case "warn", "warning":
		c.Log.Level = "warn"
	case "error", "critical":
		c.Log.Level = "error"
	default:
		return fmt.Errorf("invalid %s: %s, options are debug, info, warning, error, critical", EnvLogLevel, c.Log.Level)
	}

	if c.Log.File == "" {
		c.Log.File = DefaultLogConfig.File
	}

	return nil
}

func (c *Config) validateFrontendConfig() error {
	return validateURL(c.Frontend.URL, EnvFrontendURL)
}

func (c *Config) validateSessionConfig() error {
	if c.Sessions.Store == "" {
		c.Sessions.Store = DefaultSessionConfig.Store
	} else {
		switch c.Sessions.Store {
		case "memory":
			c.Sessions.Store = "memory"
		case "redis":
			c.Sessions.Store = "redis"
		default:
			return fmt.Errorf("invalid %s: %s, options are 'memory' or 'redis'", EnvSessionStore, c.Sessions.Store)
		}
	}

	if c.Sessions.Name == "" {
		c.Sessions.Name = DefaultSessionConfig.Name
	}

	if c.Sessions.Lifetime <= 0 {
		c.Sessions.Lifetime = DefaultSessionConfig.Lifetime
	}

	c.Sessions.Secure = DefaultSessionConfig.Secure
	if c.Sessions.SecureRaw != "" {
		secure, err := strconv.ParseBool(strings.TrimSpace(c.Sessions.SecureRaw))
		if err != nil {
			return fmt.Errorf("%s must be a boolean, got %q", EnvSessionSecure, c.Sessions.SecureRaw)
		}
		c.Sessions.Secure = secure
	}

	return nil
}

func (c *Config) validateRedisConfig() error {
	if c.Redis.Sentinel.Enabled() {
		if len(c.Redis.Sentinel.SentinelAddresses) == 0 {
			return fmt.Errorf("at least one sentinel address is required when %s is set", EnvRedisSentinelMaster)
		}
	} else if c.Redis.Address == "" {
		return fmt.Errorf("%s is required when %s is redis", EnvRedisAddress, EnvSessionStore)
	} else if err := validateHostPort(c.Redis.Address); err != nil {
		return fmt.Errorf("invalid %s (expected host:port): %w", EnvRedisAddress, err)
	}

	const maxRedisDB = 15
	if c.Redis.DB < 0 || c.Redis.DB > maxRedisDB {
		return fmt.Errorf("redis db must be between 0 and %d, got %d", maxRedisDB, c.Redis.DB)
	}

	return nil
}

func (c *Config) validateDatabaseConfig() error {
	switch c.Database.Driver {
	case "":
		return requiredError(EnvDatabaseDriver)
	case DatabaseDriverPostgres, DatabaseDriverPostgreSQL, DatabaseDriverSQLite:
	default:
		return fmt.Errorf("invalid %s: %s, options are postgres, postgresql or sqlite", EnvDatabaseDriver, c.Database.Driver)
	}

	if c.Database.User == "" {
		return requiredError(EnvDatabaseUser)
	}

	if !c.Database.passwordSet {
		return requiredError(EnvDatabasePassword)
	}

	if c.Database.Host == "" {
		return requiredError(EnvDatabaseHost)
	}

	if c.Database.Port == "" {
		return requiredError(EnvDatabasePort)
	}

	if port, err := strconv.Atoi(c.Database.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be a port number between 1 and 65535, got %q", EnvDatabasePort, c.Database.Port)
	}

	if c.Database.Name == "" {
		return requiredError(EnvDatabaseName)
	}

	return nil
}
