package users

import (
	"context"
	"fmt"

	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
)

var (
	ErrNotFound   = fmt.Errorf("user %w", apperrors.ErrNotFound)
	ErrEmailInUse = fmt.Errorf("email %w", apperrors.ErrAlreadyExists)
)

type Repo interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
