// Package ssr is the browser facing tier. It relays the API access token
// through a cookie, proxies the user movies calls and runs the Google login.
package ssr

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jrsteele09/movies-auth/federated"
	"github.com/jrsteele09/movies-auth/internal/httpx"
	"github.com/jrsteele09/movies-auth/ssr/authflowrepo"
	"github.com/rs/zerolog/log"
)

// OAuthProvider runs the authorization code flow of a federated provider.
type OAuthProvider interface {
	AuthCodeURL(state, nonce, codeVerifier string) string
	Exchange(ctx context.Context, code, codeVerifier, nonce string) (federated.Profile, error)
}

type Config interface {
	IsDev() bool
	GetAccessTokenExpiry() time.Duration
}

type Dependencies struct {
	API       *APIClient
	Google    OAuthProvider // Optional, the OAuth routes are not registered when nil
	AuthFlows authflowrepo.Repo
}

type Server struct {
	router        *httpx.Router
	api           *APIClient
	google        OAuthProvider
	authFlows     authflowrepo.Repo
	secureCookies bool
	tokenLifetime time.Duration
}

func New(cfg Config, deps Dependencies) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[ssr New] config is required")
	}
	if deps.API == nil {
		return nil, errors.New("[ssr New] api client is required")
	}
	if deps.Google != nil && deps.AuthFlows == nil {
		return nil, errors.New("[ssr New] auth flow repo is required with an oauth provider")
	}

	s := &Server{
		router:        httpx.NewRouter(),
		api:           deps.API,
		google:        deps.Google,
		authFlows:     deps.AuthFlows,
		secureCookies: !cfg.IsDev(),
		tokenLifetime: cfg.GetAccessTokenExpiry(),
	}
	s.initRoutes()

	if cfg.IsDev() {
		s.router.LogRoutes()
	}
	return s, nil
}

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteFunc("POST "+RouteSignIn, httpx.ChainMiddleware(s.SignInHandler(), s.middleware()...))
	s.RegisterRouteFunc("POST "+RouteSignUp, httpx.ChainMiddleware(s.SignUpHandler(), s.middleware()...))
	if s.google != nil {
		s.RegisterRouteFunc("GET "+RouteGoogleOAuth, httpx.ChainMiddleware(s.GoogleOAuthHandler(), s.middleware()...))
		s.RegisterRouteFunc("GET "+RouteGoogleOAuthCallback, httpx.ChainMiddleware(s.GoogleOAuthCallbackHandler(), s.middleware()...))
	} else {
		log.Warn().Msg("Google OAuth is not configured, provider login routes are disabled")
	}

	// USER MOVIES
	s.RegisterRouteFunc("GET "+RouteUserMovies, httpx.ChainMiddleware(s.ListUserMoviesHandler(), s.middleware()...))
	s.RegisterRouteFunc("POST "+RouteUserMovies, httpx.ChainMiddleware(s.CreateUserMovieHandler(), s.middleware()...))
	s.RegisterRouteFunc("DELETE "+RouteUserMovie, httpx.ChainMiddleware(s.DeleteUserMovieHandler(), s.middleware()...))
}

func (s *Server) middleware() []httpx.Middleware {
	return []httpx.Middleware{httpx.LoggingMiddleware, httpx.RecoverMiddleware}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler http.HandlerFunc) {
	s.router.RegisterRouteFunc(pattern, handler)
}

func (s *Server) Routes() []string {
	return s.router.Routes()
}
