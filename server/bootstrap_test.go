package server_test

import (
	"testing"

	"github.com/jrsteele09/movies-auth/apikeys"
	fakeapikeyrepo "github.com/jrsteele09/movies-auth/apikeys/repofake"
	"github.com/jrsteele09/movies-auth/server"
	"github.com/stretchr/testify/require"
)

func TestSeedAPIKeys_GeneratesOnce(t *testing.T) {
	repo := fakeapikeyrepo.NewFakeAPIKeyRepo()

	created, err := server.SeedAPIKeys(t.Context(), repo, server.APIKeyTokens{})
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Len(t, created[0].Token, 64)

	created, err = server.SeedAPIKeys(t.Context(), repo, server.APIKeyTokens{})
	require.NoError(t, err)
	require.Empty(t, created)

	keys, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, keys, 2)
}

func TestSeedAPIKeys_FixedTokens(t *testing.T) {
	repo := fakeapikeyrepo.NewFakeAPIKeyRepo()
	tokens := server.APIKeyTokens{Public: "pub", Admin: "adm"}

	created, err := server.SeedAPIKeys(t.Context(), repo, tokens)
	require.NoError(t, err)
	require.Len(t, created, 2)

	pub, err := repo.Get(t.Context(), "pub")
	require.NoError(t, err)
	require.Equal(t, apikeys.PublicScopes, pub.Scopes)
	adm, err := repo.Get(t.Context(), "adm")
	require.NoError(t, err)
	require.Equal(t, apikeys.AdminScopes, adm.Scopes)

	created, err = server.SeedAPIKeys(t.Context(), repo, tokens)
	require.NoError(t, err)
	require.Empty(t, created)
}
