package handler

import (
	"encoding/json"
	"net/http"

	"padel-api/internal/domain"
	"padel-api/internal/middleware"
	"padel-api/internal/service"
	"padel-api/pkg/errors"
	"padel-api/pkg/logger"
)

// ScoringHandler handles score sheet requests
type ScoringHandler struct {
	scoringService service.ScoringService
	logger         *logger.Logger
}

// NewScoringHandler creates a new scoring handler
func NewScoringHandler(scoringService service.ScoringService, logger *logger.Logger) *ScoringHandler {
	return &ScoringHandler{
		scoringService: scoringService,
		logger:         logger,
	}
}

// GetScore handles GET /api/v1/matches/{id}/scoring
func (h *ScoringHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	score, err := h.scoringService.GetScore(r.Context(), matchID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "", score)
}

// CreateSet handles POST /api/v1/matches/{id}/scoring/sets
func (h *ScoringHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
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

	set, err := h.scoringService.CreateSet(r.Context(), user, matchID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Set created successfully", set)
}

// CreateGame handles POST /api/v1/matches/{id}/scoring/sets/{setId}/games
func (h *ScoringHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
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
	setID, err := urlParamID(r, "setId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	game, err := h.scoringService.CreateGame(r.Context(), user, matchID, setID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Game created successfully", game)
}

// UpdateGameScore handles PUT /api/v1/matches/{id}/scoring/sets/{setId}/games/{gameId}
func (h *ScoringHandler) UpdateGameScore(w http.ResponseWriter, r *http.Request) {
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
	setID, err := urlParamID(r, "setId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	gameID, err := urlParamID(r, "gameId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req domain.UpdateGameScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	game, err := h.scoringService.UpdateGameScore(r.Context(), user, matchID, setID, gameID, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Game score updated successfully", game)
}

// CompleteSet handles POST /api/v1/matches/{id}/scoring/sets/{setId}/complete
func (h *ScoringHandler) CompleteSet(w http.ResponseWriter, r *http.Request) {
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
	setID, err := urlParamID(r, "setId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	set, err := h.scoringService.CompleteSet(r.Context(), user, matchID, setID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Set completed successfully", set)
}

// FinishMatch handles POST /api/v1/matches/{id}/scoring/finish
func (h *ScoringHandler) FinishMatch(w http.ResponseWriter, r *http.Request) {
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

	match, err := h.scoringService.FinishMatch(r.Context(), user, matchID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Match finished successfully", match)
}
