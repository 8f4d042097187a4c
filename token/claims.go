package token

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the access token payload. Password and provider logins produce
// the same field set.
type Claims struct {
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// HasAnyScope reports whether the token carries at least one of scopes.
func (c *Claims) HasAnyScope(scopes ...string) bool {
	for _, s := range scopes {
		if slices.Contains(c.Scopes, s) {
			return true
		}
	}
	return false
}
