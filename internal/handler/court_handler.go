package handler

import (
	"encoding/json"
	"net/http"

	"padel-api/internal/domain"
	"padel-api/internal/geo"
	"padel-api/internal/middleware"
	"padel-api/internal/service"
	"padel-api/pkg/errors"
	"padel-api/pkg/logger"
)

// CourtHandler handles court requests
type CourtHandler struct {
	courtService service.CourtService
	logger       *logger.Logger
}

// NewCourtHandler creates a new court handler
func NewCourtHandler(courtService service.CourtService, logger *logger.Logger) *CourtHandler {
	return &CourtHandler{
		courtService: courtService,
		logger:       logger,
	}
}

// List handles GET /api/v1/courts
func (h *CourtHandler) List(w http.ResponseWriter, r *http.Request) {
	courts, err := h.courtService.ListCourts(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", courts)
}

// Get handles GET /api/v1/courts/{id}
func (h *CourtHandler) Get(w http.ResponseWriter, r *http.Request) {
	courtID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	court, err := h.courtService.GetCourt(r.Context(), courtID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", court)
}

// Create handles POST /api/v1/courts (admin only)
func (h *CourtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	court, err := h.courtService.CreateCourt(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Court created successfully", court)
}

// Update handles PUT /api/v1/courts/{id} (admin only)
func (h *CourtHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, errors.NewAuthenticationError("Authentication required"))
		return
	}

	courtID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req domain.UpdateCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	court, err := h.courtService.UpdateCourt(r.Context(), user, courtID, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Court updated successfully", court)
}

// Delete handles DELETE /api/v1/courts/{id} (admin only)
func (h *CourtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, errors.NewAuthenticationError("Authentication required"))
		return
	}

	courtID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.courtService.DeleteCourt(r.Context(), user, courtID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Court deleted successfully", nil)
}

// Nearby handles GET /api/v1/courts/nearby
func (h *CourtHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "latitude")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	lng, err := queryFloat(r, "longitude")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	center := geo.Point{Latitude: lat, Longitude: lng}
	radius := queryFloatDefault(r, "radius", defaultNearbyRadiusKm)

	courts, err := h.courtService.Nearby(r.Context(), center, radius)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", courts)
}
