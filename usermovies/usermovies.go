package usermovies

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
)

var ErrNotFound = fmt.Errorf("user movie %w", apperrors.ErrNotFound)

// UserMovie links a user to a movie in their list.
type UserMovie struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
}

type CreateRequest struct {
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
}

func (r CreateRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("%w: userId is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(r.MovieID) == "" {
		return fmt.Errorf("%w: movieId is required", apperrors.ErrValidation)
	}
	return nil
}

type Repo interface {
	Create(ctx context.Context, userMovie *UserMovie) error
	// Delete removes id. A non-empty userID restricts the delete to that
	// user's entries; anything else is ErrNotFound.
	Delete(ctx context.Context, id, userID string) error
	// List returns all entries, or only those of userID when it is not empty.
	List(ctx context.Context, userID string) ([]*UserMovie, error)
}

type Service struct {
	repo Repo
}

func NewService(repo Repo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[NewService] user movies repo is required")
	}
	return &Service{repo: repo}, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*UserMovie, error) {
	list, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*UserMovie{}
	}
	return list, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	um := &UserMovie{UserID: req.UserID, MovieID: req.MovieID}
	if err := s.repo.Create(ctx, um); err != nil {
		return "", err
	}
	return um.ID, nil
}

// Delete removes the entry id owned by userID, or any entry when userID is
// empty.
func (s *Service) Delete(ctx context.Context, id, userID string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: userMovieId is required", apperrors.ErrValidation)
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return "", err
	}
	return id, nil
}
