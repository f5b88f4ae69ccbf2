package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"padel-api/internal/domain"
	"padel-api/internal/geo"
	"padel-api/internal/repository"
	"padel-api/pkg/errors"
	"padel-api/pkg/logger"
	"padel-api/pkg/redis"
)

const (
	minMatchPlayers = 2
	maxMatchPlayers = 20
)

type matchService struct {
	matches repository.MatchRepository
	courts  repository.CourtRepository
	cache   *CacheService
	logger  *logger.Logger
}

// NewMatchService creates a match service
func NewMatchService(matches repository.MatchRepository, courts repository.CourtRepository, cache *CacheService, log *logger.Logger) MatchService {
	return &matchService{
		matches: matches,
		courts:  courts,
		cache:   cache,
		logger:  log,
	}
}

// ListMatches lists matches, active-and-upcoming by default
func (s *matchService) ListMatches(ctx context.Context, filter repository.MatchFilter) ([]*domain.Match, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, errors.NewValidationError("The given data was invalid", map[string]interface{}{
			"status": "The selected status is invalid",
		})
	}
	if filter.SkillLevel != "" && !filter.SkillLevel.Valid() {
		return nil, errors.NewValidationError("The given data was invalid", map[string]interface{}{
			"skill_level": "The selected skill level is invalid",
		})
	}

	matches, err := s.matches.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list matches", err)
	}
	return matches, nil
}

// GetMatch loads a match with roster
func (s *matchService) GetMatch(ctx context.Context, matchID int64) (*domain.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get match", err)
	}
	if match == nil {
		return nil, errors.NewNotFoundError("Match not found")
	}
	return match, nil
}

// CreateMatch creates a match with the caller as creator. The creator
// occupies the first slot without a roster entry.
func (s *matchService) CreateMatch(ctx context.Context, creator *domain.User, req *domain.CreateMatchRequest) (*domain.Match, error) {
	if err := validateCreateMatch(req); err != nil {
		return nil, err
	}

	court, err := s.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get court", err)
	}
	if court == nil {
		return nil, errors.NewValidationError("The given data was invalid", map[string]interface{}{
			"court_id": "The selected court does not exist",
		})
	}

	match := &domain.Match{
		CourtID:        req.CourtID,
		CreatorID:      creator.ID,
		Title:          req.Title,
		Description:    req.Description,
		MatchDateTime:  req.MatchDateTime,
		MaxPlayers:     req.MaxPlayers,
		CurrentPlayers: 1,
		SkillLevel:     req.SkillLevel,
		MatchType:      req.MatchType,
		Status:         domain.MatchOpen,
		Notes:          req.Notes,
	}
	if err := s.matches.Create(ctx, match); err != nil {
		return nil, errors.NewInternalError("Failed to create match", err)
	}
	match.Court = court
	match.Creator = creator

	s.logger.WithFields(map[string]interface{}{
		"match_id":   match.ID,
		"creator_id": creator.ID,
		"court_id":   court.ID,
	}).Info("Match created")
	s.cache.InvalidateMatch(ctx, match.ID)

	return match, nil
}

// UpdateMatch updates a match; creator or admin only
func (s *matchService) UpdateMatch(ctx context.Context, caller *domain.User, matchID int64, req *domain.UpdateMatchRequest) (*domain.Match, error) {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := authorizeMatchManage(caller, match); err != nil {
		return nil, err
	}
	if err := applyMatchUpdate(match, req); err != nil {
		return nil, err
	}

	if err := s.matches.Update(ctx, match); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.NewNotFoundError("Match not found")
		}
		return nil, errors.NewInternalError("Failed to update match", err)
	}
	s.cache.InvalidateMatch(ctx, matchID)

	return match, nil
}

// DeleteMatch removes a match; creator or admin only
func (s *matchService) DeleteMatch(ctx context.Context, caller *domain.User, matchID int64) error {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if err := authorizeMatchManage(caller, match); err != nil {
		return err
	}

	if err := s.matches.Delete(ctx, matchID); err != nil {
		if err == pgx.ErrNoRows {
			return errors.NewNotFoundError("Match not found")
		}
		return errors.NewInternalError("Failed to delete match", err)
	}
	s.cache.InvalidateMatch(ctx, matchID)

	return nil
}

// Join adds the caller to the roster
func (s *matchService) Join(ctx context.Context, caller *domain.User, matchID int64) (*domain.Match, error) {
	match, err := s.matches.Join(ctx, matchID, caller.ID)
	if err != nil {
		return nil, s.rosterError(err, "Failed to join match")
	}

	s.logger.WithFields(map[string]interface{}{
		"match_id": matchID,
		"user_id":  caller.ID,
		"status":   match.Status,
	}).Info("Player joined match")
	s.cache.InvalidateMatch(ctx, matchID)

	return match, nil
}

// Leave removes the caller from the roster
func (s *matchService) Leave(ctx context.Context, caller *domain.User, matchID int64) (*domain.Match, error) {
	match, err := s.matches.Leave(ctx, matchID, caller.ID)
	if err != nil {
		return nil, s.rosterError(err, "Failed to leave match")
	}

	s.logger.WithFields(map[string]interface{}{
		"match_id": matchID,
		"user_id":  caller.ID,
		"status":   match.Status,
	}).Info("Player left match")
	s.cache.InvalidateMatch(ctx, matchID)

	return match, nil
}

// Players lists the roster of a match
func (s *matchService) Players(ctx context.Context, matchID int64) ([]domain.MatchPlayer, error) {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return match.Players, nil
}

// Nearby finds open matches within radiusKm of the center, nearest first
func (s *matchService) Nearby(ctx context.Context, center geo.Point, radiusKm float64, skillLevel domain.SkillLevel) ([]domain.NearbyMatch, error) {
	if skillLevel != "" && !skillLevel.Valid() {
		return nil, errors.NewValidationError("The given data was invalid", map[string]interface{}{
			"skill_level": "The selected skill level is invalid",
		})
	}

	var cacheKey string
	if s.cache.Enabled() {
		cacheKey = s.cache.Keys().KeyMatchesNearby(QueryHash(center.Latitude, center.Longitude, radiusKm, skillLevel))
		var cached []domain.NearbyMatch
		if s.cache.GetJSON(ctx, cacheKey, &cached) {
			return cached, nil
		}
	}

	matches, err := s.matches.ListOpenWithCourts(ctx, skillLevel)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list matches", err)
	}

	results := geo.Nearest(matches, center, radiusKm, 0)
	nearby := make([]domain.NearbyMatch, 0, len(results))
	for _, r := range results {
		nearby = append(nearby, domain.NearbyMatch{Match: r.Item, DistanceKm: r.DistanceKm})
	}

	if cacheKey != "" {
		s.cache.SetJSON(ctx, cacheKey, nearby, redis.TTLNearby)
	}

	return nearby, nil
}

// rosterError maps repository/domain errors from join/leave to API errors
func (s *matchService) rosterError(err error, message string) error {
	if err == pgx.ErrNoRows {
		return errors.NewNotFoundError("Match not found")
	}
	if _, ok := err.(*errors.AppError); ok {
		return err
	}
	return errors.NewInternalError(message, err)
}

func authorizeMatchManage(caller *domain.User, match *domain.Match) error {
	if match.CreatorID == caller.ID || caller.IsAdmin() {
		return nil
	}
	return errors.NewAuthorizationError("Only the match creator can do this")
}

func validateCreateMatch(req *domain.CreateMatchRequest) error {
	details := map[string]interface{}{}

	if req.CourtID <= 0 {
		details["court_id"] = "The court id field is required"
	}
	if req.Title == "" {
		details["title"] = "The title field is required"
	}
	if !req.MatchDateTime.After(time.Now()) {
		details["match_date_time"] = "The match date time must be in the future"
	}
	if req.MaxPlayers < minMatchPlayers || req.MaxPlayers > maxMatchPlayers {
		details["max_players"] = "The max players must be between 2 and 20"
	}
	if !req.SkillLevel.Valid() {
		details["skill_level"] = "The selected skill level is invalid"
	}
	if !req.MatchType.Valid() {
		details["match_type"] = "The selected match type is invalid"
	}

	if len(details) > 0 {
		return errors.NewValidationError("The given data was invalid", details)
	}
	return nil
}

func applyMatchUpdate(match *domain.Match, req *domain.UpdateMatchRequest) error {
	details := map[string]interface{}{}

	if req.Title != nil {
		if *req.Title == "" {
			details["title"] = "The title field is required"
		} else {
			match.Title = *req.Title
		}
	}
	if req.Description != nil {
		match.Description = *req.Description
	}
	if req.MatchDateTime != nil {
		if !req.MatchDateTime.After(time.Now()) {
			details["match_date_time"] = "The match date time must be in the future"
		} else {
			match.MatchDateTime = *req.MatchDateTime
		}
	}
	if req.SkillLevel != nil {
		if !req.SkillLevel.Valid() {
			details["skill_level"] = "The selected skill level is invalid"
		} else {
			match.SkillLevel = *req.SkillLevel
		}
	}
	if req.MatchType != nil {
		if !req.MatchType.Valid() {
			details["match_type"] = "The selected match type is invalid"
		} else {
			match.MatchType = *req.MatchType
		}
	}
	if req.Notes != nil {
		match.Notes = *req.Notes
	}

	if len(details) > 0 {
		return errors.NewValidationError("The given data was invalid", details)
	}

	if req.Status != nil {
		if err := match.Advance(*req.Status); err != nil {
			return err
		}
	}

	return nil
}
