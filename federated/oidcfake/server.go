// Package oidcfake is a minimal OpenID Connect provider for tests. It serves
// discovery, JWKS and token endpoints and signs ID tokens with an RSA key.
package oidcfake

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const keyID = "oidcfake-key"

// Identity is the user the fake provider logs in.
type Identity struct {
	Subject string
	Email   string
	Name    string
	// UnverifiedEmail issues email_verified=false instead of true.
	UnverifiedEmail bool
}

type grant struct {
	nonce     string
	challenge string
	identity  Identity
}

type Server struct {
	*httptest.Server
	ClientID string

	key    *rsa.PrivateKey
	lock   sync.Mutex
	grants map[string]grant

	// NonceOverride replaces the nonce in issued ID tokens when set.
	NonceOverride string
}

func NewServer(clientID string) (*Server, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	s := &Server{
		ClientID: clientID,
		key:      key,
		grants:   make(map[string]grant),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/openid-configuration", s.discovery)
	mux.HandleFunc("GET /jwks", s.jwks)
	mux.HandleFunc("POST /token", s.token)
	s.Server = httptest.NewServer(mux)
	return s, nil
}

// Authorize plays the user consenting at authURL and returns the code and
// state the provider would redirect back with.
func (s *Server) Authorize(authURL string, identity Identity) (code, state string, err error) {
	u, err := url.Parse(authURL)
	if err != nil {
		return "", "", err
	}
	q := u.Query()
	if q.Get("client_id") != s.ClientID {
		return "", "", errors.New("unknown client_id")
	}
	if q.Get("code_challenge_method") != "S256" {
		return "", "", errors.New("S256 code challenge required")
	}
	code = uuid.New().String()
	s.lock.Lock()
	s.grants[code] = grant{
		nonce:     q.Get("nonce"),
		challenge: q.Get("code_challenge"),
		identity:  identity,
	}
	s.lock.Unlock()
	return code, q.Get("state"), nil
}

func (s *Server) discovery(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"issuer":                                s.URL,
		"authorization_endpoint":                s.URL + "/authorize",
		"token_endpoint":                        s.URL + "/token",
		"jwks_uri":                              s.URL + "/jwks",
		"response_types_supported":              []string{"code"},
		"subject_types_supported":               []string{"public"},
		"id_token_signing_alg_values_supported": []string{"RS256"},
	})
}

func (s *Server) jwks(w http.ResponseWriter, _ *http.Request) {
	pub := s.key.PublicKey
	writeJSON(w, http.StatusOK, map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": keyID,
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	})
}

func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}
	code := r.PostForm.Get("code")

	s.lock.Lock()
	g, ok := s.grants[code]
	delete(s.grants, code)
	s.lock.Unlock()
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
		return
	}

	sum := sha256.Sum256([]byte(r.PostForm.Get("code_verifier")))
	if base64.RawURLEncoding.EncodeToString(sum[:]) != g.challenge {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
		return
	}

	nonce := g.nonce
	if s.NonceOverride != "" {
		nonce = s.NonceOverride
	}
	now := time.Now()
	idToken := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":            s.URL,
		"aud":            s.ClientID,
		"sub":            g.identity.Subject,
		"email":          g.identity.Email,
		"email_verified": !g.identity.UnverifiedEmail,
		"name":           g.identity.Name,
		"nonce":          nonce,
		"iat":            now.Unix(),
		"exp":            now.Add(5 * time.Minute).Unix(),
	})
	idToken.Header["kid"] = keyID
	signed, err := idToken.SignedString(s.key)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server_error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": uuid.New().String(),
		"token_type":   "Bearer",
		"expires_in":   300,
		"id_token":     signed,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
