package auth

import (
	"context"
	"errors"

	"github.com/jrsteele09/movies-auth/users"
	"github.com/rs/zerolog/log"
)

// UserFinder is the part of the user directory the verifier needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*users.User, error)
}

// CredentialVerifier checks a username/password pair against the user directory.
type CredentialVerifier struct {
	users UserFinder
}

func NewCredentialVerifier(finder UserFinder) (*CredentialVerifier, error) {
	if finder == nil {
		return nil, errors.New("[NewCredentialVerifier] user finder is required")
	}
	return &CredentialVerifier{users: finder}, nil
}

// Verify returns the user owning the credentials. Every failure, whether the
// user is unknown, the lookup failed or the password is wrong, is
// ErrInvalidCredentials.
func (v *CredentialVerifier) Verify(ctx context.Context, username, password string) (*users.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := v.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			log.Ctx(ctx).Warn().Err(err).Msg("User lookup failed during credential verification")
		}
		return nil, ErrInvalidCredentials
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
