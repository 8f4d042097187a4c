package auth

import (
	"fmt"

	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot tell which one failed.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	ErrMissingScopes      = fmt.Errorf("%w: missing scopes", apperrors.ErrUnauthorized)
	ErrInsufficientScopes = fmt.Errorf("%w: insufficient scopes", apperrors.ErrUnauthorized)
)
