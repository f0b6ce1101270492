package models

// UserInfo is the verified id_token claim set, returned to the client as-is.
type UserInfo map[string]any

func (u UserInfo) Subject() string {
	return u.stringClaim("sub")
}

func (u UserInfo) Email() string {
	return u.stringClaim("email")
}

func (u UserInfo) EmailVerified() bool {
	verified, _ := u["email_verified"].(bool)
	return verified
}

func (u UserInfo) stringClaim(key string) string {
	value, _ := u[key].(string)
	return value
}
