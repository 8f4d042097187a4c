package server

// Route path constants
const (
	// Auth Routes
	RouteSignIn       = "/api/auth/sign-in"
	RouteSignUp       = "/api/auth/sign-up"
	RouteSignProvider = "/api/auth/sign-provider"

	// User Movies Routes
	RouteUserMovies = "/api/user-movies"
	RouteUserMovie  = "/api/user-movies/{userMovieId}"
)

// Scopes guarding the user movies routes.
const (
	ScopeReadUserMovies   = "read:user-movies"
	ScopeCreateUserMovies = "create:user-movies"
	ScopeDeleteUserMovies = "delete:user-movies"
)
