package server

import (
	"context"
	"errors"
	"fmt"
	"google-auth-service/internal/auth"
	"google-auth-service/internal/config"
	"google-auth-service/internal/metrics"
	"google-auth-service/internal/middlewares"
	"google-auth-service/internal/storage"
	"google-auth-service/internal/version"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	cfg            *config.Config
	logger         *slog.Logger
	logFile        io.Closer
	appCtx         *middlewares.AppContext
	httpServer     *http.Server
	debugServer    *http.Server
	sessionManager *auth.SessionManager
	database       storage.StorageProvider
	instanceID     string
	cancel         context.CancelFunc
}

func New(cfg *config.Config) (*Server, error) {
	logger, logFile, err := setupLogger(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	fail := func(err error) (*Server, error) {
		cancel()
		_ = logFile.Close()
		return nil, err
	}

	sessionManager, err := auth.NewSessionManager(logger, cfg)
	if err != nil {
		logger.Error("failed to initialize session manager", "error", err)
		return fail(err)
	}

	if cfg.App.Debug && sessionManager.RedisClient() != nil {
		collector := redisprometheus.NewCollector(metrics.Namespace, "sessions", sessionManager.RedisClient())
		if err := prometheus.Register(collector); err != nil {
			logger.Debug("failed to register redis session collector: already registered", "error", err)
		}
	}

	googleClient := auth.NewGoogleClient(ctx, cfg.Google)

	// The pool connects lazily; nothing but the readiness probe talks to it.
	database, err := storage.NewDatabaseProvider(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize database provider", "error", err)
		_ = sessionManager.Close()
		return fail(err)
	}

	appCtx := middlewares.NewAppContext(ctx, cfg, logger, sessionManager, googleClient, database)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           setupRouter(appCtx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var debugServer *http.Server
	if cfg.App.Debug {
		debugServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Debug.Host, cfg.Server.Debug.Port),
			Handler:           setupDebugRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return &Server{
		cfg:            cfg,
		logger:         logger,
		logFile:        logFile,
		appCtx:         appCtx,
		httpServer:     httpServer,
		debugServer:    debugServer,
		sessionManager: sessionManager,
		database:       database,
		instanceID:     instanceID(),
		cancel:         cancel,
	}, nil
}

// Start serves until SIGINT/SIGTERM or a listener failure, then drains in-flight requests.
func (s *Server) Start() error {
	go func() {
		s.logger.Info("Server Started",
			"port", s.cfg.Server.Port,
			"instance", s.instanceID,
			"build", version.Describe(s.cfg.App.Version),
			"database", s.database.Driver(),
			"session_store", s.cfg.Sessions.Store,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server failed to start", "error", err)
			s.cancel()
		}
	}()

	if s.debugServer != nil {
		go func() {
			s.logger.Info("Debug server starting", "address", s.debugServer.Addr)
			if err := s.debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("Debug server failed to start", "error", err)
				s.cancel()
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		s.logger.Info("Shutdown signal received")
	case <-s.appCtx.Done():
		s.logger.Info("Context canceled")
	}

	return s.Shutdown()
}

// Shutdown stops both listeners and releases the database pool, the redis client and the log file.
func (s *Server) Shutdown() error {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("Shutting Down Server")

	var shutdownErr error
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		shutdownErr = err
	}

	if s.debugServer != nil {
		if err := s.debugServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Debug server forced to shutdown", "error", err)
		}
	}

	s.cancel()

	if err := s.database.Close(); err != nil {
		s.logger.Error("failed to close database", "error", err)
	}

	if err := s.sessionManager.Close(); err != nil {
		s.logger.Error("failed to close session store", "error", err)
	}

	s.logger.Info("Server Exited")
	_ = s.logFile.Close()

	return shutdownErr
}

// Handler exposes the application router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func instanceID() string {
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		return hostname
	}
	return uuid.New().String()
}
