package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jrsteele09/movies-auth/apikeys"
)

var _ apikeys.Repo = (*APIKeyRepo)(nil)

type APIKeyRepo struct {
	db *sql.DB
}

func NewAPIKeyRepo(db *DB) *APIKeyRepo {
	return &APIKeyRepo{db: db.Conn}
}

func (r *APIKeyRepo) Create(ctx context.Context, key *apikeys.APIKey) error {
	scopes, err := json.Marshal(key.Scopes)
	if err != nil {
		return fmt.Errorf("failed to encode scopes: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (token, description, scopes) VALUES (?, ?, ?)`,
		key.Token, key.Description, string(scopes),
	); err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

func (r *APIKeyRepo) Get(ctx context.Context, token string) (*apikeys.APIKey, error) {
	row := r.db.QueryRowContext(ctx, `SELECT token, description, scopes FROM api_keys WHERE token = ?`, token)
	key, err := scanAPIKey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apikeys.ErrNotFound
	}
	return key, err
}

func (r *APIKeyRepo) List(ctx context.Context) ([]*apikeys.APIKey, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT token, description, scopes FROM api_keys ORDER BY token`)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	defer rows.Close()

	keys := make([]*apikeys.APIKey, 0)
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAPIKey(s scanner) (*apikeys.APIKey, error) {
	var (
		key    apikeys.APIKey
		scopes string
	)
	if err := s.Scan(&key.Token, &key.Description, &scopes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan api key: %w", err)
	}
	if err := json.Unmarshal([]byte(scopes), &key.Scopes); err != nil {
		return nil, fmt.Errorf("failed to decode api key scopes: %w", err)
	}
	return &key, nil
}
