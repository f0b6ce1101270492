package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserInfo_Accessors(t *testing.T) {
	info := UserInfo{
		"sub":            "110169484474386276334",
		"email":          "jane@example.com",
		"email_verified": true,
		"name":           "Jane Doe",
		"picture":        "https://lh3.googleusercontent.com/a/photo",
	}

	assert.Equal(t, "110169484474386276334", info.Subject())
	assert.Equal(t, "jane@example.com", info.Email())
	assert.True(t, info.EmailVerified())
}

func TestUserInfo_MissingOrMistypedClaims(t *testing.T) {
	info := UserInfo{"sub": 42, "email_verified": "true"}

	assert.Empty(t, info.Subject())
	assert.Empty(t, info.Email())
	assert.False(t, info.EmailVerified())
	assert.Empty(t, UserInfo(nil).Email())
}
