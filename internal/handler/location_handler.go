package handler

import (
	"net/http"

	"padel-api/internal/geo"
	"padel-api/internal/service"
	"padel-api/pkg/logger"
)

// LocationHandler handles partner location requests
type LocationHandler struct {
	locationService service.LocationService
	logger          *logger.Logger
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService service.LocationService, logger *logger.Logger) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
		logger:          logger,
	}
}

// List handles GET /api/v1/locations
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationService.ListLocations(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", locations)
}

// Get handles GET /api/v1/locations/{id}
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	locationID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	location, err := h.locationService.GetLocation(r.Context(), locationID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", location)
}

// SearchByCity handles GET /api/v1/locations/search
func (h *LocationHandler) SearchByCity(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationService.SearchByCity(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", locations)
}

// Nearest handles GET /api/v1/locations/nearest
func (h *LocationHandler) Nearest(w http.ResponseWriter, r *http.Request) {
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
	limit := queryIntDefault(r, "limit", 10)

	locations, err := h.locationService.Nearest(r.Context(), center, radius, limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", locations)
}
