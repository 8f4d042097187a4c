package apikeys

import (
	"context"
	"fmt"

	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
)

var (
	ErrMissingToken = fmt.Errorf("api key token is required: %w", apperrors.ErrUnauthorized)
	ErrNotFound     = fmt.Errorf("api key not found: %w", apperrors.ErrUnauthorized)
)

type Repo interface {
	Create(ctx context.Context, key *APIKey) error
	Get(ctx context.Context, token string) (*APIKey, error)
	List(ctx context.Context) ([]*APIKey, error)
}
