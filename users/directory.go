package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Directory is the user store as seen by the authentication flows.
type Directory struct {
	repo Repo
}

func NewDirectory(repo Repo) (*Directory, error) {
	if repo == nil {
		return nil, errors.New("[NewDirectory] users repo is required")
	}
	return &Directory{repo: repo}, nil
}

// FindByUsername looks a user up by the username presented at sign-in, which
// is the email address.
func (d *Directory) FindByUsername(ctx context.Context, username string) (*User, error) {
	return d.repo.GetByEmail(ctx, normaliseEmail(username))
}

// CreateUser validates req, hashes the password and stores the new user.
func (d *Directory) CreateUser(ctx context.Context, req CreateUserRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("[CreateUser] failed to hash password: %w", err)
	}
	user := &User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normaliseEmail(req.Email),
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
	}
	if err := d.repo.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// GetOrCreateUser returns the user with the profile's email, creating a
// federated user when none exists yet.
func (d *Directory) GetOrCreateUser(ctx context.Context, profile ProviderProfile) (*User, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	email := normaliseEmail(profile.Email)
	user, err := d.repo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user = &User{
		Name:            strings.TrimSpace(profile.Name),
		Email:           email,
		Provider:        profile.Provider,
		ProviderSubject: profile.Subject,
	}
	if err := d.repo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent first login for the same email.
		if errors.Is(err, ErrEmailInUse) {
			return d.repo.GetByEmail(ctx, email)
		}
		return nil, err
	}
	return user, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
