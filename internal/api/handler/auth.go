package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nextliferp/accountd/internal/api/apierr"
	"github.com/nextliferp/accountd/internal/api/request"
	"github.com/nextliferp/accountd/internal/api/response"
	"github.com/nextliferp/accountd/internal/services/gateway"
)

// AuthHandler handles register, login, logout and validate
type AuthHandler struct {
	gateway *gateway.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(gateway *gateway.Service) *AuthHandler {
	return &AuthHandler{
		gateway: gateway,
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("No data received"))
		return
	}

	result, err := h.gateway.Register(r.Context(),
		strings.TrimSpace(req.Username),
		strings.TrimSpace(req.Email),
		strings.TrimSpace(req.Password),
	)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromResult(result, "Account created successfully!"))
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("No data received"))
		return
	}

	result, err := h.gateway.Login(r.Context(),
		strings.TrimSpace(req.Email),
		strings.TrimSpace(req.Password),
	)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromResult(result, "Login successful!"))
}

// Validate handles POST /validate.
// An invalid token is a successful response with valid=false, not an error.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("No data received"))
		return
	}

	result, err := h.gateway.Validate(r.Context(), strings.TrimSpace(req.AuthToken))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ValidateResponseFromResult(result))
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req request.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("No data received"))
		return
	}

	if err := h.gateway.Logout(r.Context(), strings.TrimSpace(req.AuthToken)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{Success: true, Message: "Logged out"})
}
