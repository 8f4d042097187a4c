package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/movies-auth/auth"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/internal/httpx"
	"github.com/jrsteele09/movies-auth/token"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyClaims stores the verified token claims
const ContextKeyClaims ContextKey = "claims"

// ClaimsFromContext returns the claims stored by RequireAuth, or nil.
func ClaimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims
}

// RequireAuth validates the Bearer access token and stores its claims in the
// request context.
func (s *Server) RequireAuth() httpx.Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw := httpx.BearerToken(r)
			if raw == "" {
				httpx.WriteError(w, apperrors.ErrUnauthorized)
				return
			}
			claims, err := s.tokens.Verify(raw)
			if err != nil {
				log.Ctx(r.Context()).Debug().Err(err).Msg("Bearer token rejected")
				httpx.WriteError(w, apperrors.ErrUnauthorized)
				return
			}
			next(w, r.WithContext(context.WithValue(r.Context(), ContextKeyClaims, claims)))
		}
	}
}

// RequireScopes lets the request through when the token carries at least one
// of scopes. Must be chained after RequireAuth.
func RequireScopes(scopes ...string) httpx.Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			decision := auth.AuthorizeScopes(scopes, ClaimsFromContext(r.Context()))
			if !decision.Allowed() {
				httpx.WriteJSON(w, http.StatusUnauthorized, httpx.ErrorResponse{
					StatusCode: http.StatusUnauthorized,
					Error:      http.StatusText(http.StatusUnauthorized),
					Message:    decision.Reason(),
				})
				return
			}
			next(w, r)
		}
	}
}
