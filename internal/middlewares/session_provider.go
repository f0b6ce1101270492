package middlewares

import (
	"net/http"
)

//go:generate mockgen -source=session_provider.go -destination=../mocks/session.go -package=mocks

// SessionProvider keeps the transient OAuth values that must survive the round-trip through
// Google's consent screen.
type SessionProvider interface {
	SetOauthState(ctx *AppContext, state string)
	GetOauthState(ctx *AppContext) string
	ClearOauthState(ctx *AppContext)
	SetOauthNonce(ctx *AppContext, nonce string)
	GetOauthNonce(ctx *AppContext) string
	ClearOauthNonce(ctx *AppContext)
	SetOauthCodeVerifier(ctx *AppContext, verifier string)
	GetOauthCodeVerifier(ctx *AppContext) string
	ClearOauthCodeVerifier(ctx *AppContext)
	SetOauthRedirectURI(ctx *AppContext, redirectURI string)
	GetOauthRedirectURI(ctx *AppContext) string
	ClearOauthRedirectURI(ctx *AppContext)
	// ClearPendingLogin drops every value stored by the login step.
	ClearPendingLogin(ctx *AppContext)

	LoadAndSave(next http.Handler) http.Handler
}
