package handlers

import (
	"google-auth-service/internal/authentication"
	"google-auth-service/internal/metrics"
	"google-auth-service/internal/middlewares"
	"net/http"
	"time"
)

func GETGoogleCallbackHandler(ctx *middlewares.AppContext) {
	query := ctx.Request.URL.Query()

	if errorParam := query.Get("error"); errorParam != "" {
		metrics.CallbackAttempts.WithLabelValues(metrics.OutcomeDenied).Inc()
		ctx.SessionManager.ClearPendingLogin(ctx)
		ctx.Logger.Warn("Google authorization error", "error", errorParam, "description", query.Get("error_description"))
		ctx.SetJSONError(http.StatusBadRequest, "Google authorization failed: "+errorParam)
		return
	}

	queryParams := GoogleCallbackQueryParams{
		Code:  query.Get("code"),
		State: query.Get("state"),
	}
	if err := validate.StructCtx(ctx, &queryParams); err != nil {
		metrics.CallbackAttempts.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		ctx.Logger.Debug("Invalid callback query", "error", err)
		ctx.SetJSONError(http.StatusUnprocessableEntity, describeValidationError(err))
		return
	}

	start := time.Now()
	claims, err := ctx.OAuthClient.ExchangeCode(ctx, queryParams.Code, queryParams.State)
	metrics.TokenExchangeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if authentication.IsTokenError(err) {
			metrics.CallbackAttempts.WithLabelValues(metrics.OutcomeInvalidToken).Inc()
			ctx.Logger.Warn("Rejected id_token", "error", err)
			ctx.SetJSONError(http.StatusBadRequest, "Invalid id_token: "+err.Error())
			return
		}

		metrics.CallbackAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		ctx.Logger.Error("Failed to handle Google callback", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	metrics.CallbackAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	ctx.Logger.Info("User successfully authenticated",
		"user_id", claims.Subject(),
		"email", RedactEmail(claims.Email()),
		"email_verified", claims.EmailVerified(),
	)

	ctx.WriteJSON(http.StatusOK, claims)
}
