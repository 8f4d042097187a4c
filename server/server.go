// Package server is the API tier: sign-in, sign-up, provider sign-in and the
// user movies resource behind bearer token and scope checks.
package server

import (
	"errors"
	"net/http"

	"github.com/jrsteele09/movies-auth/auth"
	"github.com/jrsteele09/movies-auth/internal/config"
	"github.com/jrsteele09/movies-auth/internal/httpx"
	"github.com/jrsteele09/movies-auth/token"
	"github.com/jrsteele09/movies-auth/usermovies"
	"github.com/rs/cors"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(rawToken string) (*token.Claims, error)
}

type Config interface {
	config.EnvConfig
	config.CorsConfig
}

type Dependencies struct {
	Auth       *auth.Service
	UserMovies *usermovies.Service
	Tokens     TokenVerifier
}

type Server struct {
	env        string
	router     *httpx.Router
	handler    http.Handler
	auth       *auth.Service
	userMovies *usermovies.Service
	tokens     TokenVerifier
}

func New(cfg Config, deps Dependencies) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[server New] config is required")
	}
	if deps.Auth == nil {
		return nil, errors.New("[server New] auth service is required")
	}
	if deps.UserMovies == nil {
		return nil, errors.New("[server New] user movies service is required")
	}
	if deps.Tokens == nil {
		return nil, errors.New("[server New] token verifier is required")
	}

	s := &Server{
		env:        cfg.GetEnv(),
		router:     httpx.NewRouter(),
		auth:       deps.Auth,
		userMovies: deps.UserMovies,
		tokens:     deps.Tokens,
	}
	s.initRoutes()

	s.handler = cors.New(cors.Options{
		AllowedOrigins:   cfg.GetAllowedOrigins().List(),
		AllowedMethods:   cfg.GetAllowedMethods(),
		AllowedHeaders:   cfg.GetAllowedHeaders(),
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(s.router)

	if cfg.IsDev() {
		s.router.LogRoutes()
	}
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler http.HandlerFunc) {
	s.router.RegisterRouteFunc(pattern, handler)
}

func (s *Server) Routes() []string {
	return s.router.Routes()
}
