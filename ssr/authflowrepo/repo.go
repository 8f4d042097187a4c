// Package authflowrepo keeps the per attempt secrets of the OAuth login
// between the redirect to the provider and the callback.
package authflowrepo

import (
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
)

var ErrStateNotFound = fmt.Errorf("oauth state not found: %w", apperrors.ErrUnauthorized)

type AuthFlowState struct {
	CodeVerifier string
	Nonce        string
	CreatedAt    time.Time
}

type Repo interface {
	Save(state string, authState *AuthFlowState) error
	// Take returns the state and removes it, so a callback can only be
	// completed once.
	Take(state string) (*AuthFlowState, error)
}
