package config

import "time"

const (
	authJWTSecretVar     = "AUTH_JWT_SECRET"
	publicAPIKeyTokenVar = "PUBLIC_API_KEY_TOKEN"
	adminAPIKeyTokenVar  = "ADMIN_API_KEY_TOKEN"
)

type AuthConfig interface {
	GetSigningSecret() string
	GetAccessTokenExpiry() time.Duration
	GetPublicAPIKeyToken() string
	GetAdminAPIKeyToken() string
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetSigningSecret() string {
	return GetEnv(authJWTSecretVar, "")
}

// GetAccessTokenExpiry is fixed, there is no refresh flow.
func (Auth) GetAccessTokenExpiry() time.Duration {
	return 15 * time.Minute
}

// GetPublicAPIKeyToken is the token seeded for the public API key on first
// start. Empty means a random token is generated.
func (Auth) GetPublicAPIKeyToken() string {
	return GetEnv(publicAPIKeyTokenVar, "")
}

func (Auth) GetAdminAPIKeyToken() string {
	return GetEnv(adminAPIKeyTokenVar, "")
}
