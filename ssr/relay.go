package ssr

import (
	"net/http"
	"time"
)

// TokenCookieName is the cookie carrying the API access token in the browser.
const TokenCookieName = "token"

// SetTokenCookie stores the access token in the browser. The cookie is
// HttpOnly and Secure unless secure is false (development).
func SetTokenCookie(w http.ResponseWriter, token string, secure bool, lifetime time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: secure,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(lifetime.Seconds()),
	})
}

// TokenFromRequest returns the relayed access token, or "" without a cookie.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
