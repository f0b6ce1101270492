package config

import (
	"time"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Google   GoogleConfig   `yaml:"google"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	Frontend FrontendConfig `yaml:"frontend"`
	Sessions SessionConfig  `yaml:"sessions"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
}

type AppConfig struct {
	Name     string `yaml:"name" env:"APP_NAME"`
	Version  string `yaml:"version" env:"APP_VERSION"`
	DebugRaw string `yaml:"debug" env:"DEBUG"`

	// Debug is parsed from DebugRaw during validation.
	Debug bool `yaml:"-"`
}

type ServerConfig struct {
	Port  int               `yaml:"port" env:"SERVER_PORT"`
	Debug ServerDebugConfig `yaml:"debug"`
}

var DefaultServerConfig = ServerConfig{
	Port: 8000,
}

type ServerDebugConfig struct {
	Host string `yaml:"host" env:"DEBUG_SERVER_HOST"`
	Port int    `yaml:"port" env:"DEBUG_SERVER_PORT"`
}

var DefaultDebugConfig = ServerDebugConfig{
	Host: "localhost",
	Port: 5123,
}

type GoogleConfig struct {
	ClientID       string   `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret   string   `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL    string   `yaml:"redirect_url" env:"GOOGLE_REDIRECT_URL"`
	AccessTokenURL string   `yaml:"access_token_url" env:"GOOGLE_ACCESS_TOKEN_URL"`
	AuthorizeURL   string   `yaml:"authorize_url" env:"GOOGLE_AUTHORIZE_URL"`
	JWKSURI        string   `yaml:"jwks_uri" env:"GOOGLE_JWKS_URI"`
	Issuer         string   `yaml:"issuer" env:"GOOGLE_ISSUER"`
	Scopes         []string `yaml:"scopes" env:"GOOGLE_SCOPES" envSeparator:","`
}

var DefaultGoogleConfig = GoogleConfig{
	Issuer: "https://accounts.google.com",
	Scopes: []string{"openid", "profile", "email"},
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	AllowedMethods []string `yaml:"allowed_methods" env:"ALLOWED_METHODS" envSeparator:","`
	AllowedHeaders []string `yaml:"allowed_headers" env:"ALLOWED_HEADERS" envSeparator:","`
	MaxAgeSeconds  int      `yaml:"max_age_seconds" env:"CORS_MAX_AGE_SECONDS"`
}

var DefaultCORSConfig = CORSConfig{
	MaxAgeSeconds: 600,
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
	File   string `yaml:"file" env:"LOG_FILE"`
}

var DefaultLogConfig = LogConfig{
	Format: "text",
	File:   "logs/debug.log",
}

type FrontendConfig struct {
	URL string `yaml:"url" env:"FRONTEND_URL"`
}

type SessionConfig struct {
	Store     string        `yaml:"store" env:"SESSION_STORE"`
	Name      string        `yaml:"name" env:"SESSION_NAME"`
	Lifetime  time.Duration `yaml:"lifetime" env:"SESSION_LIFETIME"`
	SecureRaw string        `yaml:"secure" env:"SESSION_SECURE"`

	Secure bool `yaml:"-"`
}

var DefaultSessionConfig = SessionConfig{
	Store:    "memory",
	Name:     "session_id",
	Lifetime: 10 * time.Minute,
	Secure:   true,
}

type RedisConfig struct {
	Address  string              `yaml:"address" env:"REDIS_ADDRESS"`
	Username string              `yaml:"username" env:"REDIS_USERNAME"`
	Password string              `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int                 `yaml:"db" env:"REDIS_DB"`
	Sentinel RedisSentinelConfig `yaml:"sentinel"`
}

type RedisSentinelConfig struct {
	MasterName        string   `yaml:"master_name" env:"REDIS_SENTINEL_MASTER"`
	SentinelAddresses []string `yaml:"addresses" env:"REDIS_SENTINEL_ADDRESSES" envSeparator:","`
}

// Enabled reports whether the sentinel block was filled in.
func (s RedisSentinelConfig) Enabled() bool {
	return s.MasterName != ""
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"DATABASE_DRIVER"`
	User     string `yaml:"user" env:"DATABASE_USER"`
	Password string `yaml:"password" env:"DATABASE_PASSWORD"`
	Host     string `yaml:"host" env:"DATABASE_HOST"`
	Port     string `yaml:"port" env:"DATABASE_PORT"`
	Name     string `yaml:"name" env:"DATABASE_NAME"`

	// passwordSet records whether a password was supplied at all; an empty one is allowed.
	passwordSet bool
}

const (
	DatabaseDriverPostgres   = "postgres"
	DatabaseDriverPostgreSQL = "postgresql"
	DatabaseDriverSQLite     = "sqlite"
)
