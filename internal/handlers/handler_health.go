package handlers

import (
	"google-auth-service/internal/middlewares"
	"net/http"
)

func GETHealthHandler(ctx *middlewares.AppContext) {
	ctx.WriteJSON(http.StatusOK, HealthResponse{Success: "ok"})
}
