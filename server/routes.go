package server

import "github.com/jrsteele09/movies-auth/internal/httpx"

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteFunc("POST "+RouteSignIn, httpx.ChainMiddleware(s.SignInHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteSignUp, httpx.ChainMiddleware(s.SignUpHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteSignProvider, httpx.ChainMiddleware(s.SignProviderHandler(), s.APIMiddleware()...))

	// USER MOVIES
	s.RegisterRouteFunc("GET "+RouteUserMovies, httpx.ChainMiddleware(s.ListUserMoviesHandler(),
		s.APIMiddleware(s.RequireAuth(), RequireScopes(ScopeReadUserMovies))...))
	s.RegisterRouteFunc("POST "+RouteUserMovies, httpx.ChainMiddleware(s.CreateUserMovieHandler(),
		s.APIMiddleware(s.RequireAuth(), RequireScopes(ScopeCreateUserMovies))...))
	s.RegisterRouteFunc("DELETE "+RouteUserMovie, httpx.ChainMiddleware(s.DeleteUserMovieHandler(),
		s.APIMiddleware(s.RequireAuth(), RequireScopes(ScopeDeleteUserMovies))...))
}

// APIMiddleware is the common chain of every API route followed by mw.
func (s *Server) APIMiddleware(mw ...httpx.Middleware) []httpx.Middleware {
	chainedMiddleware := []httpx.Middleware{
		httpx.LoggingMiddleware,
		httpx.RecoverMiddleware,
	}
	return append(chainedMiddleware, mw...)
}
