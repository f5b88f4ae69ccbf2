package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"padel-api/pkg/errors"
	"padel-api/pkg/logger"
)

// apiResponse is the envelope every endpoint responds with
type apiResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    interface{}            `json:"data,omitempty"`
	Errors  map[string]interface{} `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError renders an AppError with its status code; anything else is
// masked as a generic 500
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError("Internal server error", err)
	}

	if appErr.Type == errors.ErrorTypeInternal {
		log.WithError(appErr).Error("Request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(apiResponse{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Details,
	})
}

// urlParamID parses a numeric chi URL parameter
func urlParamID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("The given data was invalid", map[string]interface{}{
			name: "The " + name + " must be a positive integer",
		})
	}
	return id, nil
}

// queryFloat parses a required float query parameter
func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.NewValidationError("The given data was invalid", map[string]interface{}{
			name: "The " + name + " field is required",
		})
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.NewValidationError("The given data was invalid", map[string]interface{}{
			name: "The " + name + " must be a number",
		})
	}
	return v, nil
}

// queryFloatDefault parses an optional float query parameter
func queryFloatDefault(r *http.Request, name string, fallback float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return fallback
}

// queryIntDefault parses an optional integer query parameter
func queryIntDefault(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return fallback
}
