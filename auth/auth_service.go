package auth

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/users"
	"github.com/rs/zerolog/log"
)

// KeyResolver resolves an API key token into the scopes it grants.
type KeyResolver interface {
	Resolve(ctx context.Context, apiKeyToken string) ([]string, error)
}

// TokenIssuer mints an access token for a user and scope set.
type TokenIssuer interface {
	Issue(user *users.User, scopes []string) (string, error)
}

// UserDirectory is the user store as used by sign-up and provider sign-in.
type UserDirectory interface {
	UserFinder
	CreateUser(ctx context.Context, req users.CreateUserRequest) (string, error)
	GetOrCreateUser(ctx context.Context, profile users.ProviderProfile) (*users.User, error)
}

// Dependencies holds the collaborators of the Service.
type Dependencies struct {
	Users    UserDirectory
	APIKeys  KeyResolver
	Issuer   TokenIssuer
	Verifier *CredentialVerifier // Optional, built from Users when nil
}

// SignInRequest carries the credentials of a password sign-in.
type SignInRequest struct {
	Username    string
	Password    string
	APIKeyToken string
}

// ProviderSignInRequest carries a profile vouched for by a federated provider.
type ProviderSignInRequest struct {
	APIKeyToken string `json:"apiKeyToken"`
	users.ProviderProfile
}

// SignInResult is returned by both sign-in paths.
type SignInResult struct {
	Token string           `json:"token"`
	User  users.PublicUser `json:"user"`
}

// Service exchanges credentials and API keys for access tokens.
type Service struct {
	users    UserDirectory
	verifier *CredentialVerifier
	apiKeys  KeyResolver
	issuer   TokenIssuer
}

func NewService(deps Dependencies) (*Service, error) {
	if deps.Users == nil {
		return nil, errors.New("[NewService] users directory is required")
	}
	if deps.APIKeys == nil {
		return nil, errors.New("[NewService] api key resolver is required")
	}
	if deps.Issuer == nil {
		return nil, errors.New("[NewService] token issuer is required")
	}
	verifier := deps.Verifier
	if verifier == nil {
		var err error
		if verifier, err = NewCredentialVerifier(deps.Users); err != nil {
			return nil, err
		}
	}
	return &Service{
		users:    deps.Users,
		verifier: verifier,
		apiKeys:  deps.APIKeys,
		issuer:   deps.Issuer,
	}, nil
}

// SignIn verifies the credentials, resolves the API key and issues a token.
// Every authentication failure is the bare ErrUnauthorized.
func (s *Service) SignIn(ctx context.Context, req SignInRequest) (*SignInResult, error) {
	logger := log.Ctx(ctx)
	if req.APIKeyToken == "" {
		logger.Debug().Msg("Sign in rejected: api key token missing")
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.verifier.Verify(ctx, req.Username, req.Password)
	if err != nil {
		logger.Debug().Err(err).Msg("Sign in rejected: credentials")
		return nil, apperrors.ErrUnauthorized
	}

	scopes, err := s.apiKeys.Resolve(ctx, req.APIKeyToken)
	if err != nil {
		logger.Debug().Err(err).Msg("Sign in rejected: api key")
		return nil, apperrors.ErrUnauthorized
	}

	return s.issue(ctx, user, scopes)
}

// SignProvider signs in a user vouched for by a federated provider, creating
// the user on first login. The token is issued exactly as in SignIn.
func (s *Service) SignProvider(ctx context.Context, req ProviderSignInRequest) (*SignInResult, error) {
	logger := log.Ctx(ctx)
	if req.APIKeyToken == "" {
		logger.Debug().Msg("Provider sign in rejected: api key token missing")
		return nil, apperrors.ErrUnauthorized
	}

	scopes, err := s.apiKeys.Resolve(ctx, req.APIKeyToken)
	if err != nil {
		logger.Debug().Err(err).Msg("Provider sign in rejected: api key")
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.users.GetOrCreateUser(ctx, req.ProviderProfile)
	if err != nil {
		return nil, fmt.Errorf("[SignProvider] %w", err)
	}

	return s.issue(ctx, user, scopes)
}

// SignUp creates a password user and returns its id.
func (s *Service) SignUp(ctx context.Context, req users.CreateUserRequest) (string, error) {
	return s.users.CreateUser(ctx, req)
}

// issue mints the token unless the request has already been abandoned, in
// which case nothing is returned to the caller.
func (s *Service) issue(ctx context.Context, user *users.User, scopes []string) (*SignInResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	signed, err := s.issuer.Issue(user, scopes)
	if err != nil {
		return nil, fmt.Errorf("[issue] %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &SignInResult{Token: signed, User: user.Public()}, nil
}
