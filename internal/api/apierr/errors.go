package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nextliferp/accountd/internal/model"
)

// ErrorResponse is the error envelope every failed request returns
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// httpError combines an HTTP status code with a user-visible message
type httpError struct {
	status  int
	message string
}

// Error implements the error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	status, message := toStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: message})
}

// toStatus maps an error to an HTTP status and message. Anything it does
// not recognize is reported as a generic server error, so internal fault
// details never reach the client.
func toStatus(err error) (int, string) {
	var he *httpError
	if errors.As(err, &he) {
		return he.status, he.message
	}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}

	switch {
	case errors.Is(err, model.ErrUsernameTaken),
		errors.Is(err, model.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, model.ErrInvalidSession):
		return http.StatusUnauthorized, "Invalid or expired session"
	case errors.Is(err, model.ErrPlayerStateNotFound):
		return http.StatusNotFound, "Player data not found"
	case errors.Is(err, model.ErrAccountNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusInternalServerError, "Server error"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// NewInvalidRequestError creates a bad-request error with the given message
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Server error"}
}
