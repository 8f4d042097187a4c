package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/movies-auth/apikeys"
	"github.com/rs/zerolog/log"
)

const (
	PublicAPIKeyDescription = "public"
	AdminAPIKeyDescription  = "admin"
)

// APIKeyTokens holds fixed tokens for the seeded keys. Empty tokens are
// generated.
type APIKeyTokens struct {
	Public string
	Admin  string
}

// SeedAPIKeys makes sure a public and an admin API key exist. Newly created
// keys are returned and their tokens logged once.
func SeedAPIKeys(ctx context.Context, repo apikeys.Repo, tokens APIKeyTokens) ([]*apikeys.APIKey, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("[SeedAPIKeys] failed to list api keys: %w", err)
	}

	seeds := []struct {
		description string
		token       string
		scopes      []string
	}{
		{PublicAPIKeyDescription, tokens.Public, apikeys.PublicScopes},
		{AdminAPIKeyDescription, tokens.Admin, apikeys.AdminScopes},
	}

	var created []*apikeys.APIKey
	for _, seed := range seeds {
		if seed.token != "" {
			_, err := repo.Get(ctx, seed.token)
			if err == nil {
				continue
			}
			if !errors.Is(err, apikeys.ErrNotFound) {
				return nil, fmt.Errorf("[SeedAPIKeys] failed to get api key: %w", err)
			}
		} else if hasDescription(existing, seed.description) {
			continue
		}

		key := &apikeys.APIKey{Token: seed.token, Description: seed.description, Scopes: seed.scopes}
		if key.Token == "" {
			if key.Token, err = apikeys.GenerateToken(); err != nil {
				return nil, fmt.Errorf("[SeedAPIKeys] %w", err)
			}
		}
		if err := repo.Create(ctx, key); err != nil {
			return nil, fmt.Errorf("[SeedAPIKeys] failed to create %s api key: %w", seed.description, err)
		}
		log.Info().
			Str("description", key.Description).
			Str("token", key.Token).
			Strs("scopes", key.Scopes).
			Msg("API key created, save this token it will not be displayed again")
		created = append(created, key)
	}
	return created, nil
}

func hasDescription(keys []*apikeys.APIKey, description string) bool {
	for _, k := range keys {
		if k.Description == description {
			return true
		}
	}
	return false
}
