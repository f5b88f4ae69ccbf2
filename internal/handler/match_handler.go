package handler

import (
	"encoding/json"
	"net/http"

	"padel-api/internal/domain"
	"padel-api/internal/geo"
	"padel-api/internal/middleware"
	"padel-api/internal/repository"
	"padel-api/internal/service"
	"padel-api/pkg/errors"
	"padel-api/pkg/logger"
)

const defaultNearbyRadiusKm = 10

// MatchHandler handles match and roster requests
type MatchHandler struct {
	matchService service.MatchService
	logger       *logger.Logger
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService service.MatchService, logger *logger.Logger) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		logger:       logger,
	}
}

// List handles GET /api/v1/matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.MatchFilter{
		CourtID:    int64(queryIntDefault(r, "court_id", 0)),
		Status:     domain.MatchStatus(r.URL.Query().Get("status")),
		SkillLevel: domain.SkillLevel(r.URL.Query().Get("skill_level")),
		Limit:      queryIntDefault(r, "limit", 50),
		Offset:     queryIntDefault(r, "offset", 0),
	}

	matches, err := h.matchService.ListMatches(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", matches)
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", match)
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, errors.NewAuthenticationError("Authentication required"))
		return
	}

	var req domain.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), user, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Match created successfully", match)
}

// Update handles PUT /api/v1/matches/{id}
func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, errors.NewAuthenticationError("Authentication required"))
		return
	}

	matchID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req domain.UpdateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	match, err := h.matchService.UpdateMatch(r.Context(), user, matchID, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Match updated successfully", match)
}

// Delete handles DELETE /api/v1/matches/{id}
func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, errors.NewAuthenticationError("Authentication required"))
		return
	}

	matchID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), user, matchID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Match deleted successfully", nil)
}

// Join handles POST /api/v1/matches/{id}/join
func (h *MatchHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, errors.NewAuthenticationError("Authentication required"))
		return
	}

	matchID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	match, err := h.matchService.Join(r.Context(), user, matchID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Joined match successfully", match)
}

// Leave handles POST /api/v1/matches/{id}/leave
func (h *MatchHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, errors.NewAuthenticationError("Authentication required"))
		return
	}

	matchID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	match, err := h.matchService.Leave(r.Context(), user, matchID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Left match successfully", match)
}

// Players handles GET /api/v1/matches/{id}/players
func (h *MatchHandler) Players(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	players, err := h.matchService.Players(r.Context(), matchID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", players)
}

// Nearby handles GET /api/v1/matches/nearby
func (h *MatchHandler) Nearby(w http.ResponseWriter, r *http.Request) {
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
	skill := domain.SkillLevel(r.URL.Query().Get("skill_level"))

	matches, err := h.matchService.Nearby(r.Context(), center, radius, skill)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", matches)
}
