package federated_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/jrsteele09/movies-auth/federated"
	"github.com/jrsteele09/movies-auth/federated/oidcfake"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/stretchr/testify/require"
)

const testClientID = "movies-ssr"

func setupProvider(t *testing.T) (*federated.GoogleProvider, *oidcfake.Server) {
	t.Helper()
	fake, err := oidcfake.NewServer(testClientID)
	require.NoError(t, err)
	t.Cleanup(fake.Close)

	provider, err := federated.NewGoogleProvider(context.Background(), federated.Config{
		Issuer:       fake.URL,
		ClientID:     testClientID,
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8000/auth/google-oauth/callback",
	})
	require.NoError(t, err)
	return provider, fake
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	provider, fake := setupProvider(t)
	state, nonce, verifier := federated.NewLoginAttempt()

	u, err := url.Parse(provider.AuthCodeURL(state, nonce, verifier))
	require.NoError(t, err)
	require.Equal(t, fake.URL+"/authorize", u.Scheme+"://"+u.Host+u.Path)

	q := u.Query()
	require.Equal(t, state, q.Get("state"))
	require.Equal(t, nonce, q.Get("nonce"))
	require.Equal(t, "S256", q.Get("code_challenge_method"))
	require.NotEmpty(t, q.Get("code_challenge"))
	require.NotEqual(t, verifier, q.Get("code_challenge"))
	require.Equal(t, "openid email profile", q.Get("scope"))
}

func TestGoogleProvider_Exchange(t *testing.T) {
	provider, fake := setupProvider(t)
	state, nonce, verifier := federated.NewLoginAttempt()

	code, returnedState, err := fake.Authorize(provider.AuthCodeURL(state, nonce, verifier), oidcfake.Identity{
		Subject: "google-123",
		Email:   "ada@example.com",
		Name:    "Ada Lovelace",
	})
	require.NoError(t, err)
	require.Equal(t, state, returnedState)

	profile, err := provider.Exchange(context.Background(), code, verifier, nonce)
	require.NoError(t, err)
	require.Equal(t, federated.Profile{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Provider: federated.ProviderGoogle,
		Subject:  "google-123",
	}, profile)
}

func TestGoogleProvider_ExchangeRejectsWrongVerifier(t *testing.T) {
	provider, fake := setupProvider(t)
	state, nonce, verifier := federated.NewLoginAttempt()

	code, _, err := fake.Authorize(provider.AuthCodeURL(state, nonce, verifier), oidcfake.Identity{Subject: "1", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = provider.Exchange(context.Background(), code, "not-the-verifier", nonce)
	require.Error(t, err)
}

func TestGoogleProvider_ExchangeRejectsNonceMismatch(t *testing.T) {
	provider, fake := setupProvider(t)
	fake.NonceOverride = "replayed"
	state, nonce, verifier := federated.NewLoginAttempt()

	code, _, err := fake.Authorize(provider.AuthCodeURL(state, nonce, verifier), oidcfake.Identity{Subject: "1", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = provider.Exchange(context.Background(), code, verifier, nonce)
	require.ErrorIs(t, err, federated.ErrNonceMismatch)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGoogleProvider_ExchangeRejectsUnverifiedEmail(t *testing.T) {
	provider, fake := setupProvider(t)
	state, nonce, verifier := federated.NewLoginAttempt()

	code, _, err := fake.Authorize(provider.AuthCodeURL(state, nonce, verifier), oidcfake.Identity{
		Subject:         "1",
		Email:           "a@example.com",
		UnverifiedEmail: true,
	})
	require.NoError(t, err)

	_, err = provider.Exchange(context.Background(), code, verifier, nonce)
	require.ErrorIs(t, err, federated.ErrEmailNotVerified)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGoogleProvider_NameFallsBackToEmail(t *testing.T) {
	provider, fake := setupProvider(t)
	state, nonce, verifier := federated.NewLoginAttempt()

	code, _, err := fake.Authorize(provider.AuthCodeURL(state, nonce, verifier), oidcfake.Identity{Subject: "1", Email: "grace@example.com"})
	require.NoError(t, err)

	profile, err := provider.Exchange(context.Background(), code, verifier, nonce)
	require.NoError(t, err)
	require.Equal(t, "grace@example.com", profile.Name)
}

func TestNewGoogleProvider_Validation(t *testing.T) {
	_, err := federated.NewGoogleProvider(context.Background(), federated.Config{})
	require.Error(t, err)
	_, err = federated.NewGoogleProvider(context.Background(), federated.Config{Issuer: "http://x", ClientID: "c"})
	require.Error(t, err)
}
