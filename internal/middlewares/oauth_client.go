package middlewares

import (
	"google-auth-service/internal/models"
)

//go:generate mockgen -source=oauth_client.go -destination=../mocks/oauth.go -package=mocks

type OAuthClient interface {
	// BuildAuthorizationURL prepares the session for a login and returns the provider's consent
	// URL that will send the user back to redirectURI.
	BuildAuthorizationURL(ctx *AppContext, redirectURI string) (string, error)
	// ExchangeCode redeems an authorization code within the session that started the login and
	// returns the verified identity claims.
	ExchangeCode(ctx *AppContext, code, state string) (models.UserInfo, error)
}
