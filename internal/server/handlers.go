package server

import (
	"google-auth-service/internal/handlers"
	"google-auth-service/internal/middlewares"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRouter(ctx *middlewares.AppContext) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middlewares.ClientIPMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.MetricsMiddleware)
	if ctx.Config.App.Debug {
		r.Use(middlewares.RequestLogger(ctx.Logger))
	}
	r.Use(middleware.Timeout(60 * time.Second))

	// Preflight requests are answered here, before a session is loaded.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ctx.Config.CORS.AllowedOrigins,
		AllowedMethods:   ctx.Config.CORS.AllowedMethods,
		AllowedHeaders:   ctx.Config.CORS.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           ctx.Config.CORS.MaxAgeSeconds,
	}))

	r.Use(ctx.SessionManager.LoadAndSave)

	r.Use(middlewares.AppContextMiddleware(ctx))

	r.Get("/", ctx.HandlerFunc(handlers.GETHealthHandler))
	r.Get("/ready", ctx.HandlerFunc(handlers.GETReadyHandler))

	r.Route("/auth/google", func(r chi.Router) {
		r.Get("/login", ctx.HandlerFunc(handlers.GETGoogleLoginHandler))
		r.Get("/callback", ctx.HandlerFunc(handlers.GETGoogleCallbackHandler))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if appCtx := middlewares.GetAppContext(r); appCtx != nil {
			appCtx.SetJSONError(http.StatusNotFound, "Not Found")
			return
		}
		http.NotFound(w, r)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		if appCtx := middlewares.GetAppContext(r); appCtx != nil {
			appCtx.SetJSONError(http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	return r
}

func setupDebugRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/debug", middleware.Profiler())

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
