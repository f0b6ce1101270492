package authentication

import "errors"

type SessionKey string

var (
	SessionKeyOauthState        SessionKey = "oauth_state"
	SessionKeyOauthNonce        SessionKey = "oauth_nonce"
	SessionKeyOauthCodeVerifier SessionKey = "oauth_code_verifier"
	SessionKeyOauthRedirectURI  SessionKey = "oauth_redirect_uri"
)

// TokenError marks a callback failure caused by what the client sent: a stale or forged state, a
// code the provider refused, or an id_token that failed verification. Handlers answer it with 400.
type TokenError struct {
	Message string
	Err     error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

func NewTokenError(message string, err error) *TokenError {
	return &TokenError{Message: message, Err: err}
}

// IsTokenError reports whether err, or anything it wraps, is a *TokenError.
func IsTokenError(err error) bool {
	var tokenErr *TokenError
	return errors.As(err, &tokenErr)
}
