package apikeys

import (
	"context"
	"errors"
	"slices"
)

// Resolver turns a caller supplied API key token into the scopes it grants.
type Resolver struct {
	repo Repo
}

func NewResolver(repo Repo) (*Resolver, error) {
	if repo == nil {
		return nil, errors.New("[NewResolver] api key repo is required")
	}
	return &Resolver{repo: repo}, nil
}

// Resolve returns a copy of the key's scopes. An empty token fails with
// ErrMissingToken, an unknown one with ErrNotFound. Both are unauthorized.
func (r *Resolver) Resolve(ctx context.Context, token string) ([]string, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	key, err := r.repo.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	return slices.Clone(key.Scopes), nil
}
