package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jrsteele09/movies-auth/usermovies"
)

var _ usermovies.Repo = (*UserMovieRepo)(nil)

type UserMovieRepo struct {
	db *sql.DB
}

func NewUserMovieRepo(db *DB) *UserMovieRepo {
	return &UserMovieRepo{db: db.Conn}
}

func (r *UserMovieRepo) Create(ctx context.Context, um *usermovies.UserMovie) error {
	if um.ID == "" {
		um.ID = uuid.New().String()
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO user_movies (id, user_id, movie_id) VALUES (?, ?, ?)`,
		um.ID, um.UserID, um.MovieID,
	); err != nil {
		return fmt.Errorf("failed to create user movie: %w", err)
	}
	return nil
}

func (r *UserMovieRepo) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM user_movies WHERE id = ?`
	args := []any{id}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user movie: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user movie: %w", err)
	}
	if n == 0 {
		return usermovies.ErrNotFound
	}
	return nil
}

func (r *UserMovieRepo) List(ctx context.Context, userID string) ([]*usermovies.UserMovie, error) {
	query := `SELECT id, user_id, movie_id FROM user_movies`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list user movies: %w", err)
	}
	defer rows.Close()

	list := make([]*usermovies.UserMovie, 0)
	for rows.Next() {
		var um usermovies.UserMovie
		if err := rows.Scan(&um.ID, &um.UserID, &um.MovieID); err != nil {
			return nil, fmt.Errorf("failed to scan user movie: %w", err)
		}
		list = append(list, &um)
	}
	return list, rows.Err()
}
