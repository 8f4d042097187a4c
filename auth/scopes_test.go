package auth_test

import (
	"testing"

	"github.com/jrsteele09/movies-auth/auth"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/token"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeScopes(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		claims   *token.Claims
		allowed  bool
		reason   string
	}{
		{"one of several matches", []string{"A", "B"}, &token.Claims{Scopes: []string{"B"}}, true, ""},
		{"all match", []string{"A", "B"}, &token.Claims{Scopes: []string{"A", "B"}}, true, ""},
		{"no intersection", []string{"A", "B"}, &token.Claims{Scopes: []string{"C"}}, false, "insufficient scopes"},
		{"empty token scopes", []string{"A"}, &token.Claims{Scopes: []string{}}, false, "missing scopes"},
		{"nil token scopes", []string{"A"}, &token.Claims{}, false, "missing scopes"},
		{"no identity", []string{"A"}, nil, false, "missing scopes"},
		{"nothing required", nil, &token.Claims{Scopes: []string{"A"}}, false, "insufficient scopes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := auth.AuthorizeScopes(tt.required, tt.claims)
			require.Equal(t, tt.allowed, d.Allowed())
			require.Equal(t, tt.reason, d.Reason())
			if !tt.allowed {
				require.ErrorIs(t, d.Err, apperrors.ErrUnauthorized)
			}
		})
	}
}
