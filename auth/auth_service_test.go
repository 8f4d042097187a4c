package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/movies-auth/apikeys"
	fakeapikeyrepo "github.com/jrsteele09/movies-auth/apikeys/repofake"
	"github.com/jrsteele09/movies-auth/auth"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/token"
	"github.com/jrsteele09/movies-auth/users"
	fakeuserrepo "github.com/jrsteele09/movies-auth/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	secretStr        = "1234"
	testAPIKey       = "public-api-key"
	testUserName     = "John Doe"
	testUserEmail    = "john.doe@example.com"
	testUserPassword = "Password123"
)

// countingIssuer records how often the issuer was reached.
type countingIssuer struct {
	next  auth.TokenIssuer
	calls int
}

func (c *countingIssuer) Issue(user *users.User, scopes []string) (string, error) {
	c.calls++
	return c.next.Issue(user, scopes)
}

// testFixture holds all test dependencies
type testFixture struct {
	userRepo  *fakeuserrepo.FakeUserRepo
	directory *users.Directory
	issuer    *token.Issuer
	counter   *countingIssuer
	service   *auth.Service
	userID    string
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	ur := fakeuserrepo.NewFakeUserRepo()
	dir, err := users.NewDirectory(ur)
	require.NoError(t, err)

	resolver, err := apikeys.NewResolver(fakeapikeyrepo.NewFakeAPIKeyRepo(
		&apikeys.APIKey{Token: testAPIKey, Scopes: apikeys.PublicScopes},
	))
	require.NoError(t, err)

	signer, err := token.NewHMACSigner(secretStr)
	require.NoError(t, err)
	issuer, err := token.NewIssuer(signer, 15*time.Minute)
	require.NoError(t, err)
	counter := &countingIssuer{next: issuer}

	service, err := auth.NewService(auth.Dependencies{Users: dir, APIKeys: resolver, Issuer: counter})
	require.NoError(t, err)

	userID, err := dir.CreateUser(context.Background(), users.CreateUserRequest{
		Name:     testUserName,
		Email:    testUserEmail,
		Password: testUserPassword,
	})
	require.NoError(t, err)

	return &testFixture{
		userRepo:  ur,
		directory: dir,
		issuer:    issuer,
		counter:   counter,
		service:   service,
		userID:    userID,
	}
}

func TestSignIn_Success(t *testing.T) {
	f := setupTestFixture(t)

	result, err := f.service.SignIn(context.Background(), auth.SignInRequest{
		Username:    testUserEmail,
		Password:    testUserPassword,
		APIKeyToken: testAPIKey,
	})
	require.NoError(t, err)
	require.Equal(t, users.PublicUser{ID: f.userID, Name: testUserName, Email: testUserEmail}, result.User)

	claims, err := f.issuer.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, f.userID, claims.Subject)
	require.Equal(t, apikeys.PublicScopes, claims.Scopes)
}

func TestSignIn_FailuresAreIndistinguishable(t *testing.T) {
	f := setupTestFixture(t)

	tests := []struct {
		name string
		req  auth.SignInRequest
	}{
		{"unknown user", auth.SignInRequest{Username: "nobody@example.com", Password: testUserPassword, APIKeyToken: testAPIKey}},
		{"wrong password", auth.SignInRequest{Username: testUserEmail, Password: "Wrong12345", APIKeyToken: testAPIKey}},
		{"missing api key", auth.SignInRequest{Username: testUserEmail, Password: testUserPassword}},
		{"unknown api key", auth.SignInRequest{Username: testUserEmail, Password: testUserPassword, APIKeyToken: "nope"}},
		{"empty credentials", auth.SignInRequest{APIKeyToken: testAPIKey}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.service.SignIn(context.Background(), tt.req)
			require.Nil(t, result)
			require.Equal(t, apperrors.ErrUnauthorized, err)
		})
	}
	require.Zero(t, f.counter.calls)
}

func TestSignIn_MissingAPIKeyNeverReachesIssuer(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.SignIn(context.Background(), auth.SignInRequest{Username: testUserEmail, Password: testUserPassword})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.Zero(t, f.counter.calls)
}

func TestSignIn_CancelledRequestGetsNoToken(t *testing.T) {
	f := setupTestFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.service.SignIn(ctx, auth.SignInRequest{
		Username:    testUserEmail,
		Password:    testUserPassword,
		APIKeyToken: testAPIKey,
	})
	require.Nil(t, result)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSignProvider(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	profile := users.ProviderProfile{Name: "Sam Smith", Email: "sam@example.com", Provider: "google", Subject: "g-1"}

	t.Run("creates the user on first login", func(t *testing.T) {
		result, err := f.service.SignProvider(ctx, auth.ProviderSignInRequest{APIKeyToken: testAPIKey, ProviderProfile: profile})
		require.NoError(t, err)
		require.Equal(t, "sam@example.com", result.User.Email)
		require.Equal(t, 2, f.userRepo.Count())
	})

	t.Run("reuses the user afterwards", func(t *testing.T) {
		_, err := f.service.SignProvider(ctx, auth.ProviderSignInRequest{APIKeyToken: testAPIKey, ProviderProfile: profile})
		require.NoError(t, err)
		require.Equal(t, 2, f.userRepo.Count())
	})

	t.Run("missing api key", func(t *testing.T) {
		_, err := f.service.SignProvider(ctx, auth.ProviderSignInRequest{ProviderProfile: profile})
		require.Equal(t, apperrors.ErrUnauthorized, err)
	})

	t.Run("unknown api key creates nothing", func(t *testing.T) {
		other := users.ProviderProfile{Name: "New", Email: "new@example.com", Provider: "google", Subject: "g-2"}
		_, err := f.service.SignProvider(ctx, auth.ProviderSignInRequest{APIKeyToken: "nope", ProviderProfile: other})
		require.Equal(t, apperrors.ErrUnauthorized, err)
		require.Equal(t, 2, f.userRepo.Count())
	})

	t.Run("invalid profile", func(t *testing.T) {
		_, err := f.service.SignProvider(ctx, auth.ProviderSignInRequest{APIKeyToken: testAPIKey})
		require.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestProviderAndPasswordTokensHaveTheSameShape(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	password, err := f.service.SignIn(ctx, auth.SignInRequest{Username: testUserEmail, Password: testUserPassword, APIKeyToken: testAPIKey})
	require.NoError(t, err)

	provider, err := f.service.SignProvider(ctx, auth.ProviderSignInRequest{
		APIKeyToken:     testAPIKey,
		ProviderProfile: users.ProviderProfile{Name: testUserName, Email: testUserEmail, Provider: "google", Subject: "g-1"},
	})
	require.NoError(t, err)
	require.Equal(t, password.User, provider.User)

	pClaims := decodeClaims(t, password.Token)
	fClaims := decodeClaims(t, provider.Token)

	require.ElementsMatch(t, keys(pClaims), keys(fClaims))
	for _, k := range []string{"sub", "name", "email", "scopes"} {
		require.Equal(t, pClaims[k], fClaims[k], k)
	}
}

func TestSignUp(t *testing.T) {
	f := setupTestFixture(t)

	id, err := f.service.SignUp(context.Background(), users.CreateUserRequest{Name: "Ann", Email: "ann@example.com", Password: "Password123"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = f.service.SignUp(context.Background(), users.CreateUserRequest{Name: "Ann", Email: "ann@example.com", Password: "Password123"})
	require.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestNewService_RequiresDependencies(t *testing.T) {
	_, err := auth.NewService(auth.Dependencies{})
	require.Error(t, err)
}

func decodeClaims(t *testing.T, raw string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(raw, claims)
	require.NoError(t, err)
	return claims
}

func keys(m jwt.MapClaims) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
