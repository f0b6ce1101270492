package handlers

import (
	"google-auth-service/internal/metrics"
	"google-auth-service/internal/middlewares"
	"net/http"
)

func GETGoogleLoginHandler(ctx *middlewares.AppContext) {
	redirectURI := resolveRedirectURL(ctx)

	authURL, err := ctx.OAuthClient.BuildAuthorizationURL(ctx, redirectURI)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		ctx.Logger.Error("Failed to build authorization URL", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	metrics.LoginAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	ctx.Logger.Debug("Authorization URL created", "redirect_uri", redirectURI)

	ctx.WriteJSON(http.StatusOK, LoginResponse{
		Success: true,
		Message: "Auth URL created successfully",
		Data:    authURL,
	})
}
