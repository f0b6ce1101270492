package middlewares

import (
	"context"
	"encoding/json"
	"google-auth-service/internal/config"
	"google-auth-service/internal/storage"
	"log/slog"
	"net/http"
)

type AppContext struct {
	context.Context
	Config         *config.Config
	Logger         *slog.Logger
	SessionManager SessionProvider
	OAuthClient    OAuthClient
	Storage        storage.StorageProvider

	Request  *http.Request
	Response http.ResponseWriter
}

type contextKey string

const appContextKey contextKey = "appContext"

func AppContextMiddleware(baseCtx *AppContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCtx := &AppContext{
				Context:        r.Context(),
				Config:         baseCtx.Config,
				Logger:         baseCtx.Logger,
				SessionManager: baseCtx.SessionManager,
				OAuthClient:    baseCtx.OAuthClient,
				Storage:        baseCtx.Storage,
				Request:        r,
				Response:       w,
			}

			ctx := context.WithValue(r.Context(), appContextKey, requestCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type AppHandler func(*AppContext)

// HandlerFunc converts AppHandler to a http.HandlerFunc
func (ctx *AppContext) HandlerFunc(h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		h(appCtx)
	}
}

func NewAppContext(ctx context.Context, cfg *config.Config, logger *slog.Logger, sessionManager SessionProvider, oauthClient OAuthClient, storage storage.StorageProvider) *AppContext {
	return &AppContext{
		Context:        ctx,
		Config:         cfg,
		Logger:         logger,
		SessionManager: sessionManager,
		OAuthClient:    oauthClient,
		Storage:        storage,
	}
}

func GetAppContext(r *http.Request) *AppContext {
	if ctx, ok := r.Context().Value(appContextKey).(*AppContext); ok {
		return ctx
	}

	return nil
}

func (ctx *AppContext) WriteJSON(status int, data interface{}) {
	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(status)
	if err := json.NewEncoder(ctx.Response).Encode(data); err != nil {
		ctx.Logger.Error("failed to marshal json", "error", err)
	}
}

// SetJSONError writes {"detail": message}, the error envelope existing clients of this API parse.
func (ctx *AppContext) SetJSONError(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"detail": message,
	})
}
