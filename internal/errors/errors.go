package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by both tiers. Package level errors wrap one of these
// so the HTTP edge can classify them with errors.Is.
var (
	// Bad or missing credentials, API keys, tokens or scopes.
	ErrUnauthorized = errors.New("unauthorized")
	// Malformed request body.
	ErrValidation = errors.New("validation failed")
	// A proxied call to the API tier returned an unexpected status.
	ErrUpstream = errors.New("upstream failure")

	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInternal      = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
