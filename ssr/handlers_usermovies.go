package ssr

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/jrsteele09/movies-auth/internal/httpx"
)

func (s *Server) ListUserMoviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := APIPathUserMovies
		if userID := r.URL.Query().Get("userId"); userID != "" {
			path += "?userId=" + url.QueryEscape(userID)
		}
		s.forward(w, r, http.MethodGet, path, nil, http.StatusOK)
	}
}

func (s *Server) CreateUserMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body json.RawMessage
		if err := httpx.DecodeJSON(r, &body); err != nil {
			httpx.WriteError(w, err)
			return
		}
		s.forward(w, r, http.MethodPost, APIPathUserMovies, body, http.StatusCreated)
	}
}

func (s *Server) DeleteUserMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := APIPathUserMovies + "/" + url.PathEscape(r.PathValue("userMovieId"))
		s.forward(w, r, http.MethodDelete, path, nil, http.StatusOK)
	}
}

func (s *Server) forward(w http.ResponseWriter, r *http.Request, method, path string, body any, expected int) {
	raw, err := s.api.Forward(r.Context(), method, path, TokenFromRequest(r), body, expected)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, expected, raw)
}
