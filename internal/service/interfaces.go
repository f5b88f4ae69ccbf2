package service

import (
	"context"

	"padel-api/internal/domain"
	"padel-api/internal/geo"
	"padel-api/internal/repository"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates a new user account and issues a token
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error)

	// Login verifies credentials and issues a token
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)

	// ValidateToken verifies a bearer token and loads its user
	ValidateToken(ctx context.Context, token string) (*domain.User, error)

	// GetUser loads a user by ID
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// MatchService defines the interface for match and roster operations
type MatchService interface {
	// ListMatches lists matches, active-and-upcoming by default
	ListMatches(ctx context.Context, filter repository.MatchFilter) ([]*domain.Match, error)

	// GetMatch loads a match with roster
	GetMatch(ctx context.Context, matchID int64) (*domain.Match, error)

	// CreateMatch creates a match with the caller as creator
	CreateMatch(ctx context.Context, creator *domain.User, req *domain.CreateMatchRequest) (*domain.Match, error)

	// UpdateMatch updates a match; creator or admin only
	UpdateMatch(ctx context.Context, caller *domain.User, matchID int64, req *domain.UpdateMatchRequest) (*domain.Match, error)

	// DeleteMatch removes a match; creator or admin only
	DeleteMatch(ctx context.Context, caller *domain.User, matchID int64) error

	// Join adds the caller to the roster
	Join(ctx context.Context, caller *domain.User, matchID int64) (*domain.Match, error)

	// Leave removes the caller from the roster
	Leave(ctx context.Context, caller *domain.User, matchID int64) (*domain.Match, error)

	// Players lists the roster of a match
	Players(ctx context.Context, matchID int64) ([]domain.MatchPlayer, error)

	// Nearby finds open matches within radiusKm of the center
	Nearby(ctx context.Context, center geo.Point, radiusKm float64, skillLevel domain.SkillLevel) ([]domain.NearbyMatch, error)
}

// ScoringService defines the interface for set/game recording
type ScoringService interface {
	// GetScore retrieves the score sheet of a match
	GetScore(ctx context.Context, matchID int64) (*domain.MatchScore, error)

	// CreateSet appends the next set; creator or admin only
	CreateSet(ctx context.Context, caller *domain.User, matchID int64) (*domain.Set, error)

	// CreateGame appends the next game to a set; creator or admin only
	CreateGame(ctx context.Context, caller *domain.User, matchID, setID int64) (*domain.Game, error)

	// UpdateGameScore overwrites a game's score; creator or admin only
	UpdateGameScore(ctx context.Context, caller *domain.User, matchID, setID, gameID int64, req *domain.UpdateGameScoreRequest) (*domain.Game, error)

	// CompleteSet marks a set completed; creator or admin only
	CompleteSet(ctx context.Context, caller *domain.User, matchID, setID int64) (*domain.Set, error)

	// FinishMatch advances the match to FINISHED; creator or admin only
	FinishMatch(ctx context.Context, caller *domain.User, matchID int64) (*domain.Match, error)
}

// CourtService defines the interface for court operations
type CourtService interface {
	// ListCourts lists active courts, optionally by city
	ListCourts(ctx context.Context, city string) ([]*domain.Court, error)

	// GetCourt loads an active court
	GetCourt(ctx context.Context, courtID int64) (*domain.Court, error)

	// CreateCourt registers a court; admin only (enforced at the route)
	CreateCourt(ctx context.Context, req *domain.CreateCourtRequest) (*domain.Court, error)

	// UpdateCourt updates a court; admin only
	UpdateCourt(ctx context.Context, caller *domain.User, courtID int64, req *domain.UpdateCourtRequest) (*domain.Court, error)

	// DeleteCourt removes a court; admin only
	DeleteCourt(ctx context.Context, caller *domain.User, courtID int64) error

	// Nearby finds active courts within radiusKm of the center
	Nearby(ctx context.Context, center geo.Point, radiusKm float64) ([]geo.Result[domain.Court], error)
}

// LocationService defines the interface for partner location queries
type LocationService interface {
	// ListLocations lists active locations of active partners
	ListLocations(ctx context.Context) ([]*domain.PartnerLocation, error)

	// GetLocation loads a location with its active courts
	GetLocation(ctx context.Context, locationID int64) (*domain.PartnerLocation, error)

	// SearchByCity lists active locations whose city matches
	SearchByCity(ctx context.Context, city string) ([]*domain.PartnerLocation, error)

	// Nearest finds active locations within radiusKm of the center
	Nearest(ctx context.Context, center geo.Point, radiusKm float64, limit int) ([]geo.Result[domain.PartnerLocation], error)
}

// Services aggregates all service interfaces
type Services struct {
	Auth     AuthService
	Match    MatchService
	Scoring  ScoringService
	Court    CourtService
	Location LocationService
}
