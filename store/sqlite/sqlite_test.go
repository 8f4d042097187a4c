package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/movies-auth/apikeys"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/store/sqlite"
	"github.com/jrsteele09/movies-auth/usermovies"
	"github.com/jrsteele09/movies-auth/users"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "data", "movies.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.db")

	db, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.Open(path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	require.Equal(t, 1, count)
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewUserRepo(openDB(t))

	u := &users.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash", IsAdmin: true}
	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.Equal(t, "hash", byEmail.PasswordHash)
	require.True(t, byEmail.IsAdmin)
	require.True(t, u.CreatedAt.Equal(byEmail.CreatedAt))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada", byID.Name)

	err = repo.Create(ctx, &users.User{Name: "Other", Email: "ada@example.com"})
	require.ErrorIs(t, err, users.ErrEmailInUse)
	require.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, users.ErrNotFound)
}

func TestUserRepo_FederatedUser(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewUserRepo(openDB(t))

	u := &users.User{Name: "Grace", Email: "grace@example.com", Provider: "google", ProviderSubject: "1234"}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.IsFederated())
	require.Equal(t, "1234", got.ProviderSubject)
	require.Empty(t, got.PasswordHash)
}

func TestAPIKeyRepo(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewAPIKeyRepo(openDB(t))

	require.NoError(t, repo.Create(ctx, &apikeys.APIKey{Token: "public", Description: "Public", Scopes: apikeys.PublicScopes}))
	require.NoError(t, repo.Create(ctx, &apikeys.APIKey{Token: "admin", Scopes: apikeys.AdminScopes}))

	key, err := repo.Get(ctx, "public")
	require.NoError(t, err)
	require.Equal(t, apikeys.PublicScopes, key.Scopes)
	require.Equal(t, "Public", key.Description)

	_, err = repo.Get(ctx, "unknown")
	require.ErrorIs(t, err, apikeys.ErrNotFound)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "admin", list[0].Token)
}

func TestUserMovieRepo(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewUserMovieRepo(openDB(t))

	first := &usermovies.UserMovie{UserID: "u1", MovieID: "m1"}
	require.NoError(t, repo.Create(ctx, first))
	require.NotEmpty(t, first.ID)
	require.NoError(t, repo.Create(ctx, &usermovies.UserMovie{UserID: "u2", MovieID: "m2"}))

	mine, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "m1", mine[0].MovieID)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.ErrorIs(t, repo.Delete(ctx, first.ID, "u2"), usermovies.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, first.ID, "u1"))
	require.ErrorIs(t, repo.Delete(ctx, first.ID, ""), usermovies.ErrNotFound)

	mine, err = repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, mine)
}
