package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"commerce-admin-core/internal/application"
	"commerce-admin-core/internal/domain"
	"commerce-admin-core/internal/infrastructure/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// AuthHandler serves the admin authentication endpoints.
type AuthHandler struct {
	authService *application.AuthService
	logger      zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *application.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterPublicRoutes mounts the endpoints reachable without a token.
func (h *AuthHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

// RegisterProtectedRoutes mounts the endpoints behind the auth middleware.
func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/auth/logout", h.Logout)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	Admin *domain.Admin `json:"admin"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	token, admin, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Admin: admin})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		writeError(w, h.logger, fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized))
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
