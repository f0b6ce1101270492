package handlers

import (
	"google-auth-service/internal/middlewares"
	"net/url"
	"strings"
)

// RedactEmail is used to redact emails (mostly for logs)
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}

	localRunes := []rune(parts[0])
	domain := parts[1]

	if len(localRunes) <= 2 {
		return strings.Repeat("*", len(localRunes)) + "@" + domain
	}

	first := string(localRunes[0])
	last := string(localRunes[len(localRunes)-1])
	middle := strings.Repeat("*", len(localRunes)-2)

	return first + middle + last + "@" + domain
}

// resolveRedirectURL returns the configured callback URL. A bare path is resolved against the URL
// the client used to reach us, honouring the usual reverse proxy headers.
func resolveRedirectURL(ctx *middlewares.AppContext) string {
	configured := ctx.Config.Google.RedirectURL
	if !strings.HasPrefix(configured, "/") {
		return configured
	}

	base := url.URL{Scheme: requestScheme(ctx), Host: requestHost(ctx)}
	return base.ResolveReference(&url.URL{Path: configured}).String()
}

func requestScheme(ctx *middlewares.AppContext) string {
	if proto := ctx.Request.Header.Get("X-Forwarded-Proto"); proto != "" {
		first, _, _ := strings.Cut(proto, ",")
		return strings.ToLower(strings.TrimSpace(first))
	}

	if ctx.Request.TLS != nil {
		return "https"
	}

	return "http"
}

func requestHost(ctx *middlewares.AppContext) string {
	if host := ctx.Request.Header.Get("X-Forwarded-Host"); host != "" {
		first, _, _ := strings.Cut(host, ",")
		return strings.TrimSpace(first)
	}

	return ctx.Request.Host
}
