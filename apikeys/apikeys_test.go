package apikeys_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/movies-auth/apikeys"
	fakeapikeyrepo "github.com/jrsteele09/movies-auth/apikeys/repofake"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	repo := fakeapikeyrepo.NewFakeAPIKeyRepo(&apikeys.APIKey{Token: "public-key", Scopes: apikeys.PublicScopes})
	resolver, err := apikeys.NewResolver(repo)
	require.NoError(t, err)

	t.Run("known key", func(t *testing.T) {
		scopes, err := resolver.Resolve(ctx, "public-key")
		require.NoError(t, err)
		require.Equal(t, apikeys.PublicScopes, scopes)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "")
		require.ErrorIs(t, err, apikeys.ErrMissingToken)
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "nope")
		require.ErrorIs(t, err, apikeys.ErrNotFound)
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("returned scopes are a copy", func(t *testing.T) {
		scopes, err := resolver.Resolve(ctx, "public-key")
		require.NoError(t, err)
		scopes[0] = "tampered"

		again, err := resolver.Resolve(ctx, "public-key")
		require.NoError(t, err)
		require.Equal(t, "signin:auth", again[0])
	})
}

func TestScopeSet(t *testing.T) {
	admin, err := apikeys.ScopeSet("admin")
	require.NoError(t, err)
	require.Contains(t, admin, "delete:movies")
	require.Contains(t, admin, "create:user-movies")

	public, err := apikeys.ScopeSet("public")
	require.NoError(t, err)
	require.NotContains(t, public, "delete:movies")

	_, err = apikeys.ScopeSet("root")
	require.Error(t, err)
}

func TestAPIKey_HasScope(t *testing.T) {
	k := &apikeys.APIKey{Scopes: []string{"read:movies"}}
	require.True(t, k.HasScope("read:movies"))
	require.False(t, k.HasScope("create:movies"))
}

func TestGenerateToken(t *testing.T) {
	a, err := apikeys.GenerateToken()
	require.NoError(t, err)
	b, err := apikeys.GenerateToken()
	require.NoError(t, err)
	require.Len(t, a, 64)
	require.NotEqual(t, a, b)
}
