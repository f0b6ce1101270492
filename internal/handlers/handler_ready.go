package handlers

import (
	"google-auth-service/internal/middlewares"
	"google-auth-service/internal/storage"
	"net/http"
	"time"
)

const readyTimeout = 2 * time.Second

// GETReadyHandler pings the database. It is the only route that touches it.
func GETReadyHandler(ctx *middlewares.AppContext) {
	if err := storage.CheckHealth(ctx, ctx.Storage, readyTimeout); err != nil {
		ctx.Logger.Warn("Readiness check failed", "error", err)
		ctx.WriteJSON(http.StatusServiceUnavailable, ReadyResponse{Success: "error", Database: "unavailable"})
		return
	}

	ctx.WriteJSON(http.StatusOK, ReadyResponse{Success: "ok", Database: "ok"})
}
