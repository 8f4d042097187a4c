package auth

import (
	"slices"

	"github.com/jrsteele09/movies-auth/token"
)

// Decision is the outcome of a scope check. Err is nil when the request is
// allowed and otherwise one of ErrMissingScopes or ErrInsufficientScopes.
type Decision struct {
	Err error
}

func (d Decision) Allowed() bool {
	return d.Err == nil
}

// Reason is the human readable deny reason, empty when allowed.
func (d Decision) Reason() string {
	switch d.Err {
	case nil:
		return ""
	case ErrMissingScopes:
		return "missing scopes"
	default:
		return "insufficient scopes"
	}
}

// AuthorizeScopes allows the request when the token carries at least one of
// the required scopes.
func AuthorizeScopes(required []string, claims *token.Claims) Decision {
	if claims == nil || len(claims.Scopes) == 0 {
		return Decision{Err: ErrMissingScopes}
	}
	for _, scope := range required {
		if slices.Contains(claims.Scopes, scope) {
			return Decision{}
		}
	}
	return Decision{Err: ErrInsufficientScopes}
}
