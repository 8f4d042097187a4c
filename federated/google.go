// Package federated runs the authorization code flow against an OpenID
// Connect provider and turns the verified ID token into a profile the API
// tier can sign in.
package federated

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/users"
	"golang.org/x/oauth2"
)

const ProviderGoogle = "google"

var (
	ErrNoIDToken        = fmt.Errorf("no id token in provider response: %w", apperrors.ErrUnauthorized)
	ErrNonceMismatch    = fmt.Errorf("id token nonce mismatch: %w", apperrors.ErrUnauthorized)
	ErrMissingEmail     = fmt.Errorf("provider did not return an email: %w", apperrors.ErrUnauthorized)
	ErrEmailNotVerified = fmt.Errorf("provider email is not verified: %w", apperrors.ErrUnauthorized)
)

// Profile is the identity vouched for by the provider.
type Profile = users.ProviderProfile

type Config struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// GoogleProvider is an OIDC relying party. The issuer is configurable so that
// any OIDC compliant provider, including a local fake, can stand in.
type GoogleProvider struct {
	name         string
	oauth2Config *oauth2.Config
	verifier     *oidc.IDTokenVerifier
}

// NewGoogleProvider fetches the provider's discovery document.
func NewGoogleProvider(ctx context.Context, cfg Config) (*GoogleProvider, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("[NewGoogleProvider] issuer is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("[NewGoogleProvider] client id is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("[NewGoogleProvider] redirect url is required")
	}

	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("[NewGoogleProvider] failed to create OIDC provider: %w", err)
	}

	return &GoogleProvider{
		name: ProviderGoogle,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// Name is recorded as the user's provider on first login.
func (g *GoogleProvider) Name() string {
	return g.name
}

// AuthCodeURL is the provider consent URL for one login attempt.
func (g *GoogleProvider) AuthCodeURL(state, nonce, codeVerifier string) string {
	return g.oauth2Config.AuthCodeURL(state,
		oidc.Nonce(nonce),
		oauth2.S256ChallengeOption(codeVerifier),
	)
}

// Exchange trades the authorization code for tokens, verifies the ID token
// and returns the identity it carries.
func (g *GoogleProvider) Exchange(ctx context.Context, code, codeVerifier, nonce string) (Profile, error) {
	oauth2Token, err := g.oauth2Config.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return Profile{}, fmt.Errorf("[Exchange] token exchange failed: %w", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return Profile{}, ErrNoIDToken
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return Profile{}, fmt.Errorf("[Exchange] id token verification failed: %s: %w", err.Error(), apperrors.ErrUnauthorized)
	}
	if idToken.Nonce != nonce {
		return Profile{}, ErrNonceMismatch
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return Profile{}, fmt.Errorf("[Exchange] failed to extract claims: %w", err)
	}
	if strings.TrimSpace(claims.Email) == "" {
		return Profile{}, ErrMissingEmail
	}
	// Accounts are matched on email, so only a verified address may claim one.
	if !claims.EmailVerified {
		return Profile{}, ErrEmailNotVerified
	}
	name := claims.Name
	if strings.TrimSpace(name) == "" {
		name = claims.Email
	}

	return Profile{
		Name:     name,
		Email:    claims.Email,
		Provider: g.name,
		Subject:  idToken.Subject,
	}, nil
}

// NewLoginAttempt returns fresh state, nonce and PKCE verifier values.
func NewLoginAttempt() (state, nonce, codeVerifier string) {
	return oauth2.GenerateVerifier(), oauth2.GenerateVerifier(), oauth2.GenerateVerifier()
}
