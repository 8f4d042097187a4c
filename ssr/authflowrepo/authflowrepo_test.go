package authflowrepo_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/ssr/authflowrepo"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo_TakeOnce(t *testing.T) {
	repo := authflowrepo.NewInMemoryRepo(time.Minute)
	require.NoError(t, repo.Save("s1", &authflowrepo.AuthFlowState{CodeVerifier: "v", Nonce: "n"}))

	got, err := repo.Take("s1")
	require.NoError(t, err)
	require.Equal(t, "v", got.CodeVerifier)
	require.Equal(t, "n", got.Nonce)
	require.False(t, got.CreatedAt.IsZero())

	_, err = repo.Take("s1")
	require.ErrorIs(t, err, authflowrepo.ErrStateNotFound)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestInMemoryRepo_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := authflowrepo.NewInMemoryRepo(time.Minute, authflowrepo.WithNowTime(func() time.Time { return now }))

	require.NoError(t, repo.Save("old", &authflowrepo.AuthFlowState{Nonce: "n"}))
	now = now.Add(2 * time.Minute)

	_, err := repo.Take("old")
	require.ErrorIs(t, err, authflowrepo.ErrStateNotFound)

	require.NoError(t, repo.Save("a", &authflowrepo.AuthFlowState{}))
	now = now.Add(2 * time.Minute)
	require.NoError(t, repo.Save("b", &authflowrepo.AuthFlowState{}))
	require.Equal(t, 1, repo.Len())
}

func TestInMemoryRepo_Validation(t *testing.T) {
	repo := authflowrepo.NewInMemoryRepo(time.Minute)
	require.Error(t, repo.Save("", &authflowrepo.AuthFlowState{}))
	require.Error(t, repo.Save("s", nil))
}
