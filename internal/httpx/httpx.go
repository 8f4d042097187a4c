// Package httpx writes JSON responses and maps the error taxonomy onto HTTP
// status codes. Error bodies use the {statusCode, error, message} shape the
// browser clients already understand.
package httpx

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// DataResponse is the envelope used by the CRUD style endpoints.
type DataResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("Failed to encode response")
	}
}

// WriteError classifies err and writes the matching error body. Messages of
// server side failures are never exposed.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	message := http.StatusText(status)
	if status < http.StatusInternalServerError {
		message = err.Error()
	} else {
		log.Err(err).Int("status", status).Msg("Request failed")
	}
	WriteJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}

// StatusCode maps an error onto an HTTP status code.
func StatusCode(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case apperrors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON reads a JSON request body into v. Decoding failures are
// validation errors.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return apperrors.Wrapf(apperrors.ErrValidation, "empty request body")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Wrapf(apperrors.ErrValidation, "invalid request body: %s", err.Error())
	}
	return nil
}
