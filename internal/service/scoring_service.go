package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"padel-api/internal/domain"
	"padel-api/internal/repository"
	"padel-api/pkg/errors"
	"padel-api/pkg/logger"
	"padel-api/pkg/redis"
)

const maxGamePoints = 7

type scoringService struct {
	scores  repository.ScoringRepository
	matches repository.MatchRepository
	cache   *CacheService
	logger  *logger.Logger
}

// NewScoringService creates a scoring service
func NewScoringService(scores repository.ScoringRepository, matches repository.MatchRepository, cache *CacheService, log *logger.Logger) ScoringService {
	return &scoringService{
		scores:  scores,
		matches: matches,
		cache:   cache,
		logger:  log,
	}
}

// GetScore retrieves the score sheet of a match
func (s *scoringService) GetScore(ctx context.Context, matchID int64) (*domain.MatchScore, error) {
	var cacheKey string
	if s.cache.Enabled() {
		cacheKey = s.cache.Keys().KeyMatchScore(matchID)
		var cached domain.MatchScore
		if s.cache.GetJSON(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	match, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	sets, err := s.scores.GetScore(ctx, matchID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get score", err)
	}

	score := &domain.MatchScore{
		MatchID: matchID,
		Status:  match.Status,
		Sets:    sets,
	}
	if cacheKey != "" {
		s.cache.SetJSON(ctx, cacheKey, score, redis.TTLMatchScore)
	}

	return score, nil
}

// CreateSet appends the next sequential set; creator or admin only
func (s *scoringService) CreateSet(ctx context.Context, caller *domain.User, matchID int64) (*domain.Set, error) {
	if _, err := s.authorizedMatch(ctx, caller, matchID); err != nil {
		return nil, err
	}

	count, err := s.scores.CountSets(ctx, matchID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to count sets", err)
	}

	set := domain.NextSet(matchID, count)
	if err := s.scores.CreateSet(ctx, set); err != nil {
		return nil, errors.NewInternalError("Failed to create set", err)
	}
	s.invalidateScore(ctx, matchID)

	return set, nil
}

// CreateGame appends the next sequential game to a set; creator or admin only
func (s *scoringService) CreateGame(ctx context.Context, caller *domain.User, matchID, setID int64) (*domain.Game, error) {
	if _, err := s.authorizedMatch(ctx, caller, matchID); err != nil {
		return nil, err
	}

	set, err := s.loadSet(ctx, matchID, setID)
	if err != nil {
		return nil, err
	}

	game, err := set.AddGame()
	if err != nil {
		return nil, err
	}
	if err := s.scores.CreateGame(ctx, game); err != nil {
		return nil, errors.NewInternalError("Failed to create game", err)
	}
	s.invalidateScore(ctx, matchID)

	return game, nil
}

// UpdateGameScore overwrites a game's score; creator or admin only
func (s *scoringService) UpdateGameScore(ctx context.Context, caller *domain.User, matchID, setID, gameID int64, req *domain.UpdateGameScoreRequest) (*domain.Game, error) {
	if err := validateGameScore(req); err != nil {
		return nil, err
	}
	if _, err := s.authorizedMatch(ctx, caller, matchID); err != nil {
		return nil, err
	}
	if _, err := s.loadSet(ctx, matchID, setID); err != nil {
		return nil, err
	}

	game, err := s.scores.GetGame(ctx, setID, gameID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get game", err)
	}
	if game == nil {
		return nil, errors.NewNotFoundError("Game not found")
	}

	completed := game.IsCompleted
	if req.IsCompleted != nil {
		completed = *req.IsCompleted
	}
	game.UpdateScore(req.TeamAPoints, req.TeamBPoints, completed)

	if err := s.scores.UpdateGame(ctx, game); err != nil {
		return nil, errors.NewInternalError("Failed to update game", err)
	}
	s.invalidateScore(ctx, matchID)

	return game, nil
}

// CompleteSet marks a set completed and derives its game tallies; creator
// or admin only
func (s *scoringService) CompleteSet(ctx context.Context, caller *domain.User, matchID, setID int64) (*domain.Set, error) {
	if _, err := s.authorizedMatch(ctx, caller, matchID); err != nil {
		return nil, err
	}

	set, err := s.loadSet(ctx, matchID, setID)
	if err != nil {
		return nil, err
	}

	if err := set.Complete(); err != nil {
		return nil, err
	}
	if err := s.scores.CompleteSet(ctx, set); err != nil {
		return nil, errors.NewInternalError("Failed to complete set", err)
	}
	s.invalidateScore(ctx, matchID)

	return set, nil
}

// FinishMatch advances the match to FINISHED regardless of open sets or
// games; creator or admin only
func (s *scoringService) FinishMatch(ctx context.Context, caller *domain.User, matchID int64) (*domain.Match, error) {
	match, err := s.authorizedMatch(ctx, caller, matchID)
	if err != nil {
		return nil, err
	}

	if err := match.Advance(domain.MatchFinished); err != nil {
		return nil, err
	}
	if err := s.matches.UpdateStatus(ctx, matchID, match.Status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.NewNotFoundError("Match not found")
		}
		return nil, errors.NewInternalError("Failed to finish match", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"match_id": matchID,
		"user_id":  caller.ID,
	}).Info("Match finished")
	s.cache.InvalidateMatch(ctx, matchID)

	return match, nil
}

func (s *scoringService) loadMatch(ctx context.Context, matchID int64) (*domain.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get match", err)
	}
	if match == nil {
		return nil, errors.NewNotFoundError("Match not found")
	}
	return match, nil
}

func (s *scoringService) authorizedMatch(ctx context.Context, caller *domain.User, matchID int64) (*domain.Match, error) {
	match, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.CreatorID != caller.ID && !caller.IsAdmin() {
		return nil, errors.NewAuthorizationError("Only the match creator can record scores")
	}
	return match, nil
}

func (s *scoringService) loadSet(ctx context.Context, matchID, setID int64) (*domain.Set, error) {
	set, err := s.scores.GetSet(ctx, matchID, setID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get set", err)
	}
	if set == nil {
		return nil, errors.NewNotFoundError("Set not found")
	}
	return set, nil
}

func (s *scoringService) invalidateScore(ctx context.Context, matchID int64) {
	if s.cache.Enabled() {
		s.cache.Invalidate(ctx, s.cache.Keys().KeyMatchScore(matchID))
	}
}

func validateGameScore(req *domain.UpdateGameScoreRequest) error {
	details := map[string]interface{}{}

	if req.TeamAPoints < 0 || req.TeamAPoints > maxGamePoints {
		details["team_a_points"] = "The team a points must be between 0 and 7"
	}
	if req.TeamBPoints < 0 || req.TeamBPoints > maxGamePoints {
		details["team_b_points"] = "The team b points must be between 0 and 7"
	}

	if len(details) > 0 {
		return errors.NewValidationError("The given data was invalid", details)
	}
	return nil
}
