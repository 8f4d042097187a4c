package ssr_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/movies-auth/ssr"
	"github.com/stretchr/testify/require"
)

func TestTokenCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	ssr.SetTokenCookie(rec, "jwt-value", true, 15*time.Minute)

	header := rec.Header().Get("Set-Cookie")
	require.Contains(t, header, "token=jwt-value")
	require.Contains(t, header, "HttpOnly")
	require.Contains(t, header, "Secure")
	require.Contains(t, header, "SameSite=Lax")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "token=jwt-value")
	require.Equal(t, "jwt-value", ssr.TokenFromRequest(req))

	require.Empty(t, ssr.TokenFromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
}
