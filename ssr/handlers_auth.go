package ssr

import (
	"net/http"

	"github.com/jrsteele09/movies-auth/auth"
	"github.com/jrsteele09/movies-auth/federated"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/internal/httpx"
	"github.com/jrsteele09/movies-auth/ssr/authflowrepo"
	"github.com/jrsteele09/movies-auth/users"
	"github.com/rs/zerolog/log"
)

type messageResponse struct {
	Message string `json:"message"`
}

// SignInHandler forwards the basic auth credentials to the API tier and
// relays the returned token as a cookie.
func (s *Server) SignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			httpx.WriteError(w, apperrors.ErrUnauthorized)
			return
		}
		result, err := s.api.SignIn(r.Context(), username, password)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		s.completeSignIn(w, r, result)
	}
}

func (s *Server) SignUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.CreateUserRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		if err := s.api.SignUp(r.Context(), req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, messageResponse{Message: "User Created"})
	}
}

// GoogleOAuthHandler starts a login attempt and redirects to the provider.
func (s *Server) GoogleOAuthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, nonce, verifier := federated.NewLoginAttempt()
		if err := s.authFlows.Save(state, &authflowrepo.AuthFlowState{CodeVerifier: verifier, Nonce: nonce}); err != nil {
			httpx.WriteError(w, err)
			return
		}
		http.Redirect(w, r, s.google.AuthCodeURL(state, nonce, verifier), http.StatusFound)
	}
}

// GoogleOAuthCallbackHandler completes the login attempt, signs the identity
// in at the API tier and relays the token as a cookie.
func (s *Server) GoogleOAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.Ctx(r.Context())
		query := r.URL.Query()
		if errorParam := query.Get("error"); errorParam != "" {
			logger.Debug().Str("error", errorParam).Str("description", query.Get("error_description")).Msg("Provider denied authorization")
			httpx.WriteError(w, apperrors.ErrUnauthorized)
			return
		}

		code, state := query.Get("code"), query.Get("state")
		if code == "" || state == "" {
			httpx.WriteError(w, apperrors.Wrapf(apperrors.ErrValidation, "missing code or state parameter"))
			return
		}

		flow, err := s.authFlows.Take(state)
		if err != nil {
			logger.Debug().Err(err).Str("state", state).Msg("Unknown oauth state")
			httpx.WriteError(w, apperrors.ErrUnauthorized)
			return
		}

		profile, err := s.google.Exchange(r.Context(), code, flow.CodeVerifier, flow.Nonce)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrUnauthorized) {
				logger.Debug().Err(err).Msg("Provider identity rejected")
				err = apperrors.ErrUnauthorized
			}
			httpx.WriteError(w, err)
			return
		}

		result, err := s.api.SignProvider(r.Context(), profile)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		s.completeSignIn(w, r, result)
	}
}

// completeSignIn sets the token cookie and writes the identity without the
// token. A token for an abandoned request is dropped.
func (s *Server) completeSignIn(w http.ResponseWriter, r *http.Request, result *auth.SignInResult) {
	if err := r.Context().Err(); err != nil {
		log.Ctx(r.Context()).Debug().Err(err).Msg("Request abandoned, token discarded")
		return
	}
	SetTokenCookie(w, result.Token, s.secureCookies, s.tokenLifetime)
	httpx.WriteJSON(w, http.StatusOK, result.User)
}
