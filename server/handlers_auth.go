package server

import (
	"net/http"

	"github.com/jrsteele09/movies-auth/auth"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/internal/httpx"
	"github.com/jrsteele09/movies-auth/users"
	"github.com/rs/zerolog/log"
)

type signInBody struct {
	APIKeyToken string `json:"apiKeyToken"`
}

// SignInHandler exchanges basic auth credentials plus an API key token for an
// access token.
func (s *Server) SignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			httpx.WriteError(w, apperrors.ErrUnauthorized)
			return
		}

		var body signInBody
		if err := httpx.DecodeJSON(r, &body); err != nil {
			// An unreadable body carries no API key token.
			log.Ctx(r.Context()).Debug().Err(err).Msg("Sign in body ignored")
		}

		result, err := s.auth.SignIn(r.Context(), auth.SignInRequest{
			Username:    username,
			Password:    password,
			APIKeyToken: body.APIKeyToken,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, result)
	}
}

func (s *Server) SignUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.CreateUserRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		// Admins are provisioned out of band.
		req.IsAdmin = false

		id, err := s.auth.SignUp(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, httpx.DataResponse{Data: id, Message: "user created"})
	}
}

// SignProviderHandler signs in a user already authenticated by a federated
// provider at the front tier.
func (s *Server) SignProviderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.ProviderSignInRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		result, err := s.auth.SignProvider(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, result)
	}
}
