package errors_test

import (
	"fmt"
	"testing"

	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.NoError(t, apperrors.Wrapf(nil, "context"))

	err := apperrors.Wrapf(apperrors.ErrUnauthorized, "sign in %s", "bob")
	require.EqualError(t, err, "sign in bob: unauthorized")
	require.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	require.False(t, apperrors.Is(err, apperrors.ErrUpstream))
}

func TestAs(t *testing.T) {
	type codeErr struct{ error }
	err := fmt.Errorf("outer: %w", codeErr{apperrors.ErrInternal})

	var target codeErr
	require.True(t, apperrors.As(err, &target))
}
