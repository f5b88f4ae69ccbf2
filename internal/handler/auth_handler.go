package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"padel-api/internal/domain"
	"padel-api/internal/middleware"
	"padel-api/internal/service"
	"padel-api/pkg/errors"
	"padel-api/pkg/logger"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	if err := validateRegisterRequest(&req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Registration successful", resp)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, h.logger, errors.NewValidationError("The given data was invalid", map[string]interface{}{
			"email": "The email and password fields are required",
		}))
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Login successful", resp)
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless, so
// logout just acknowledges; the client drops the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		h.logger.WithField("user_id", user.ID).Info("User logged out")
	}

	respondJSON(w, http.StatusOK, "Logged out successfully", nil)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, errors.NewAuthenticationError("Authentication required"))
		return
	}

	respondJSON(w, http.StatusOK, "", user)
}

func validateRegisterRequest(req *domain.RegisterRequest) error {
	details := map[string]interface{}{}

	if req.Name == "" {
		details["name"] = "The name field is required"
	}
	if req.Email == "" {
		details["email"] = "The email field is required"
	} else if !strings.Contains(req.Email, "@") {
		details["email"] = "The email must be a valid email address"
	}
	if len(req.Password) < 8 {
		details["password"] = "The password must be at least 8 characters"
	}

	if len(details) > 0 {
		return errors.NewValidationError("The given data was invalid", details)
	}
	return nil
}
