package auth

import (
	"context"
	"fmt"
	"google-auth-service/internal/authentication"
	"google-auth-service/internal/config"
	"google-auth-service/internal/middlewares"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/redis/go-redis/v9"
)

type SessionManager struct {
	*scs.SessionManager
	redis *redis.Client
}

func NewSessionManager(logger *slog.Logger, cfg *config.Config) (*SessionManager, error) {
	sessionManager := scs.New()
	var client *redis.Client

	switch cfg.Sessions.Store {
	case "memory":
		sessionManager.Store = memstore.New()
	case "redis":
		if cfg.Redis.Sentinel.Enabled() {
			logger.Info("connecting to redis via sentinel",
				"master", cfg.Redis.Sentinel.MasterName,
				"sentinels", cfg.Redis.Sentinel.SentinelAddresses)

			client = redis.NewFailoverClient(&redis.FailoverOptions{
				MasterName:    cfg.Redis.Sentinel.MasterName,
				SentinelAddrs: cfg.Redis.Sentinel.SentinelAddresses,
				Username:      cfg.Redis.Username,
				Password:      cfg.Redis.Password,
				DB:            cfg.Redis.DB,
				MinIdleConns:  2,
			})
		} else {
			logger.Info("connecting to redis", "address", cfg.Redis.Address)

			client = redis.NewClient(&redis.Options{
				Addr:         cfg.Redis.Address,
				Username:     cfg.Redis.Username,
				Password:     cfg.Redis.Password,
				DB:           cfg.Redis.DB,
				MinIdleConns: 2,
			})
		}

		if err := client.Ping(context.Background()).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}

		sessionManager.Store = goredisstore.New(client)
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Sessions.Store)
	}

	sessionManager.Lifetime = cfg.Sessions.Lifetime

	sessionManager.Cookie.Name = cfg.Sessions.Name
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Sessions.Secure
	sessionManager.Cookie.Path = "/"

	return &SessionManager{SessionManager: sessionManager, redis: client}, nil
}

// RedisClient returns the client backing the session store, or nil for the memory store.
func (s *SessionManager) RedisClient() *redis.Client {
	return s.redis
}

func (s *SessionManager) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

func (s *SessionManager) LoadAndSave(next http.Handler) http.Handler {
	return s.SessionManager.LoadAndSave(next)
}

func (s *SessionManager) SetOauthState(ctx *middlewares.AppContext, state string) {
	s.Put(ctx, string(authentication.SessionKeyOauthState), state)
}

func (s *SessionManager) GetOauthState(ctx *middlewares.AppContext) string {
	return s.GetString(ctx, string(authentication.SessionKeyOauthState))
}

func (s *SessionManager) ClearOauthState(ctx *middlewares.AppContext) {
	s.Remove(ctx, string(authentication.SessionKeyOauthState))
}

func (s *SessionManager) SetOauthNonce(ctx *middlewares.AppContext, nonce string) {
	s.Put(ctx, string(authentication.SessionKeyOauthNonce), nonce)
}

func (s *SessionManager) GetOauthNonce(ctx *middlewares.AppContext) string {
	return s.GetString(ctx, string(authentication.SessionKeyOauthNonce))
}

func (s *SessionManager) ClearOauthNonce(ctx *middlewares.AppContext) {
	s.Remove(ctx, string(authentication.SessionKeyOauthNonce))
}

func (s *SessionManager) SetOauthCodeVerifier(ctx *middlewares.AppContext, verifier string) {
	s.Put(ctx, string(authentication.SessionKeyOauthCodeVerifier), verifier)
}

func (s *SessionManager) GetOauthCodeVerifier(ctx *middlewares.AppContext) string {
	return s.GetString(ctx, string(authentication.SessionKeyOauthCodeVerifier))
}

func (s *SessionManager) ClearOauthCodeVerifier(ctx *middlewares.AppContext) {
	s.Remove(ctx, string(authentication.SessionKeyOauthCodeVerifier))
}

func (s *SessionManager) SetOauthRedirectURI(ctx *middlewares.AppContext, redirectURI string) {
	s.Put(ctx, string(authentication.SessionKeyOauthRedirectURI), redirectURI)
}

func (s *SessionManager) GetOauthRedirectURI(ctx *middlewares.AppContext) string {
	return s.GetString(ctx, string(authentication.SessionKeyOauthRedirectURI))
}

func (s *SessionManager) ClearOauthRedirectURI(ctx *middlewares.AppContext) {
	s.Remove(ctx, string(authentication.SessionKeyOauthRedirectURI))
}

func (s *SessionManager) ClearPendingLogin(ctx *middlewares.AppContext) {
	s.ClearOauthState(ctx)
	s.ClearOauthNonce(ctx)
	s.ClearOauthCodeVerifier(ctx)
	s.ClearOauthRedirectURI(ctx)
}
