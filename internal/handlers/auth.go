// Package handlers contains the HTTP endpoints. Handlers decode the request,
// call a service or repository, and map errors to client-safe responses.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spiritsvault/spirits-vault-backend/internal/services"
	"github.com/spiritsvault/spirits-vault-backend/pkg/utils"
)

// AuthFlow is the authentication service used by AuthHandler.
type AuthFlow interface {
	Register(ctx context.Context, req services.RegisterRequest) (*services.AuthResponse, error)
	Login(ctx context.Context, req services.LoginRequest) (*services.AuthResponse, error)
}

type AuthHandler struct {
	auth AuthFlow
}

func NewAuthHandler(auth AuthFlow) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.auth.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields),
			errors.Is(err, services.ErrInvalidEmail),
			errors.Is(err, services.ErrEmailInUse),
			errors.Is(err, services.ErrUsernameTaken):
			utils.WriteError(w, http.StatusBadRequest, capitalize(err.Error()))
		default:
			utils.WriteServerError(w, err)
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, result)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		utils.WriteServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// capitalize uppercases the first byte for client-facing messages built
// from sentinel errors.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
