package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"google-auth-service/internal/authentication"
	"google-auth-service/internal/config"
	"google-auth-service/internal/middlewares"
	"google-auth-service/internal/models"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// GoogleClient runs the authorization-code flow against Google's hosted endpoints. The state,
// nonce, PKCE verifier and redirect URI of a pending login live in the caller's session.
type GoogleClient struct {
	oauth2Config *oauth2.Config
	verifier     *oidc.IDTokenVerifier
}

// NewGoogleClient builds a client whose signing keys are fetched lazily from cfg.JWKSURI. ctx
// bounds every key fetch, so it should live as long as the server.
func NewGoogleClient(ctx context.Context, cfg config.GoogleConfig) *GoogleClient {
	return newGoogleClient(cfg, oidc.NewRemoteKeySet(ctx, cfg.JWKSURI))
}

func newGoogleClient(cfg config.GoogleConfig, keySet oidc.KeySet) *GoogleClient {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthorizeURL,
			TokenURL:  cfg.AccessTokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: cfg.Scopes,
	}

	return &GoogleClient{
		oauth2Config: oauth2Config,
		verifier:     oidc.NewVerifier(cfg.Issuer, keySet, &oidc.Config{ClientID: cfg.ClientID}),
	}
}

func (g *GoogleClient) BuildAuthorizationURL(ctx *middlewares.AppContext, redirectURI string) (string, error) {
	state, err := generateRandString(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	nonce, err := generateRandString(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	codeVerifier := oauth2.GenerateVerifier()

	ctx.SessionManager.SetOauthState(ctx, state)
	ctx.SessionManager.SetOauthNonce(ctx, nonce)
	ctx.SessionManager.SetOauthCodeVerifier(ctx, codeVerifier)
	ctx.SessionManager.SetOauthRedirectURI(ctx, redirectURI)

	authURL := g.configFor(redirectURI).AuthCodeURL(state,
		oidc.Nonce(nonce),
		oauth2.S256ChallengeOption(codeVerifier),
	)

	return authURL, nil
}

func (g *GoogleClient) ExchangeCode(ctx *middlewares.AppContext, code, state string) (models.UserInfo, error) {
	storedState := ctx.SessionManager.GetOauthState(ctx)
	storedNonce := ctx.SessionManager.GetOauthNonce(ctx)
	codeVerifier := ctx.SessionManager.GetOauthCodeVerifier(ctx)
	redirectURI := ctx.SessionManager.GetOauthRedirectURI(ctx)

	// A pending login is single use, whatever the outcome below.
	ctx.SessionManager.ClearPendingLogin(ctx)

	if storedState == "" {
		return nil, authentication.NewTokenError("no oauth state found in session", nil)
	}

	if subtle.ConstantTimeCompare([]byte(state), []byte(storedState)) != 1 {
		return nil, authentication.NewTokenError("invalid state parameter", nil)
	}

	token, err := g.configFor(redirectURI).Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && isRejectedGrant(retrieveErr) {
			return nil, authentication.NewTokenError("authorization code rejected", err)
		}
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, authentication.NewTokenError("no id_token found in token response", nil)
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, authentication.NewTokenError("failed to verify id_token", err)
	}

	if subtle.ConstantTimeCompare([]byte(idToken.Nonce), []byte(storedNonce)) != 1 {
		return nil, authentication.NewTokenError("id_token nonce does not match session", nil)
	}

	var claims models.UserInfo
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to decode id_token claims: %w", err)
	}

	return claims, nil
}

func (g *GoogleClient) configFor(redirectURI string) *oauth2.Config {
	cfg := *g.oauth2Config
	cfg.RedirectURL = redirectURI
	return &cfg
}

// isRejectedGrant separates "this code is no good" from failures of our own configuration or of
// the provider, which stay server errors.
func isRejectedGrant(err *oauth2.RetrieveError) bool {
	switch err.ErrorCode {
	case "invalid_grant", "invalid_request":
		return true
	case "":
		return err.Response != nil && err.Response.StatusCode == http.StatusBadRequest
	default:
		return false
	}
}

func generateRandString(bytes int) (string, error) {
	if bytes <= 0 {
		bytes = 32
	}

	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
