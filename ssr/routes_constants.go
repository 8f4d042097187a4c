package ssr

// Route path constants
const (
	RouteSignIn              = "/auth/sign-in"
	RouteSignUp              = "/auth/sign-up"
	RouteGoogleOAuth         = "/auth/google-oauth"
	RouteGoogleOAuthCallback = "/auth/google-oauth/callback"

	RouteUserMovies = "/user-movies"
	RouteUserMovie  = "/user-movies/{userMovieId}"
)

// API tier paths called by APIClient.
const (
	APIPathSignIn       = "/api/auth/sign-in"
	APIPathSignUp       = "/api/auth/sign-up"
	APIPathSignProvider = "/api/auth/sign-provider"
	APIPathUserMovies   = "/api/user-movies"
)
