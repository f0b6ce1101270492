package authentication

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenError_Error(t *testing.T) {
	assert.Equal(t, "invalid state parameter", NewTokenError("invalid state parameter", nil).Error())
	assert.Equal(t, "failed to verify id_token: expired", NewTokenError("failed to verify id_token", errors.New("expired")).Error())
}

func TestIsTokenError(t *testing.T) {
	cause := errors.New("oidc: token is expired")
	tokenErr := NewTokenError("failed to verify id_token", cause)

	assert.True(t, IsTokenError(tokenErr))
	assert.True(t, IsTokenError(fmt.Errorf("exchange: %w", tokenErr)))
	assert.True(t, errors.Is(tokenErr, cause))
	assert.False(t, IsTokenError(errors.New("connection refused")))
	assert.False(t, IsTokenError(nil))
}
