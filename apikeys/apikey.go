package apikeys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"slices"
)

// ScopeAdminUserMovies lets a token act on other users' movie lists.
const ScopeAdminUserMovies = "admin:user-movies"

// Scopes granted by the seeded API keys.
var (
	PublicScopes = []string{
		"signin:auth",
		"signup:auth",
		"read:movies",
		"read:user-movies",
		"create:user-movies",
		"delete:user-movies",
	}
	AdminScopes = append(slices.Clone(PublicScopes),
		"create:movies",
		"update:movies",
		"delete:movies",
		ScopeAdminUserMovies,
	)
)

// APIKey identifies a calling application and decides which scopes the
// tokens issued through it carry. Records are never mutated after creation.
type APIKey struct {
	Token       string   `json:"token"`
	Description string   `json:"description,omitempty"`
	Scopes      []string `json:"scopes"`
}

// HasScope checks if the key grants a specific scope
func (k *APIKey) HasScope(scope string) bool {
	return slices.Contains(k.Scopes, scope)
}

// ScopeSet returns the named default scope set ("public" or "admin").
func ScopeSet(name string) ([]string, error) {
	switch name {
	case "public":
		return slices.Clone(PublicScopes), nil
	case "admin":
		return slices.Clone(AdminScopes), nil
	default:
		return nil, fmt.Errorf("unknown scope set %q", name)
	}
}

// GenerateToken returns a random 256 bit token, hex encoded.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate api key token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
