package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/movies-auth/apikeys"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/internal/httpx"
	"github.com/jrsteele09/movies-auth/token"
	"github.com/jrsteele09/movies-auth/usermovies"
)

var errOtherUsersMovies = fmt.Errorf("user movies of another user: %w", apperrors.ErrUnauthorized)

// movieOwner resolves the user a request acts on. An empty requested user is
// the token subject; any other user needs the admin user movies scope.
func movieOwner(claims *token.Claims, requested string) (string, error) {
	if requested == "" || requested == claims.Subject {
		return claims.Subject, nil
	}
	if !claims.HasAnyScope(apikeys.ScopeAdminUserMovies) {
		return "", errOtherUsersMovies
	}
	return requested, nil
}

// ListUserMoviesHandler lists the movies of ?userId, defaulting to the token
// subject.
func (s *Server) ListUserMoviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := movieOwner(ClaimsFromContext(r.Context()), r.URL.Query().Get("userId"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		list, err := s.userMovies.List(r.Context(), userID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, httpx.DataResponse{Data: list, Message: "user movies listed"})
	}
}

func (s *Server) CreateUserMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req usermovies.CreateRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		var err error
		if req.UserID, err = movieOwner(ClaimsFromContext(r.Context()), req.UserID); err != nil {
			httpx.WriteError(w, err)
			return
		}
		id, err := s.userMovies.Create(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, httpx.DataResponse{Data: id, Message: "user movie created"})
	}
}

// DeleteUserMovieHandler deletes an entry of the token subject. Admin tokens
// may delete any entry.
func (s *Server) DeleteUserMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		owner := claims.Subject
		if claims.HasAnyScope(apikeys.ScopeAdminUserMovies) {
			owner = ""
		}
		id, err := s.userMovies.Delete(r.Context(), r.PathValue("userMovieId"), owner)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, httpx.DataResponse{Data: id, Message: "user movie deleted"})
	}
}
