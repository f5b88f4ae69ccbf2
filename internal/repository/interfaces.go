package repository

import (
	"context"

	"padel-api/internal/domain"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error
}

// MatchRepository defines the interface for match and roster operations
type MatchRepository interface {
	// GetByID retrieves a match with its players loaded
	GetByID(ctx context.Context, id int64) (*domain.Match, error)

	// List retrieves matches matching the filter, upcoming-first
	List(ctx context.Context, filter MatchFilter) ([]*domain.Match, error)

	// ListOpenWithCourts retrieves non-cancelled upcoming matches with
	// their courts loaded, for nearby searches
	ListOpenWithCourts(ctx context.Context, skillLevel domain.SkillLevel) ([]*domain.Match, error)

	// Create creates a new match
	Create(ctx context.Context, match *domain.Match) error

	// Update persists mutable match fields
	Update(ctx context.Context, match *domain.Match) error

	// Delete removes a match; sets, games and roster rows cascade
	Delete(ctx context.Context, id int64) error

	// Players retrieves the roster of a match
	Players(ctx context.Context, matchID int64) ([]domain.MatchPlayer, error)

	// Join atomically re-validates and applies a join under a row lock
	Join(ctx context.Context, matchID, userID int64) (*domain.Match, error)

	// Leave atomically removes a roster entry under a row lock
	Leave(ctx context.Context, matchID, userID int64) (*domain.Match, error)

	// UpdateStatus persists an explicitly advanced status
	UpdateStatus(ctx context.Context, matchID int64, status domain.MatchStatus) error
}

// MatchFilter narrows match listings
type MatchFilter struct {
	CourtID    int64
	Status     domain.MatchStatus
	SkillLevel domain.SkillLevel
	Limit      int
	Offset     int
}

// CourtRepository defines the interface for court data operations
type CourtRepository interface {
	// GetByID retrieves an active court by ID
	GetByID(ctx context.Context, id int64) (*domain.Court, error)

	// ListActive retrieves active courts, optionally filtered by city
	ListActive(ctx context.Context, city string) ([]*domain.Court, error)

	// Create creates a new court
	Create(ctx context.Context, court *domain.Court) error

	// Update persists mutable court fields
	Update(ctx context.Context, court *domain.Court) error

	// Delete soft-deletes a court
	Delete(ctx context.Context, id int64) error
}

// LocationRepository defines the interface for partner location operations
type LocationRepository interface {
	// GetByID retrieves an active location with its active courts
	GetByID(ctx context.Context, id int64) (*domain.PartnerLocation, error)

	// ListActive retrieves active locations of active partners
	ListActive(ctx context.Context) ([]*domain.PartnerLocation, error)

	// SearchByCity retrieves active locations whose city matches
	SearchByCity(ctx context.Context, city string) ([]*domain.PartnerLocation, error)
}

// ScoringRepository defines the interface for set/game persistence
type ScoringRepository interface {
	// GetScore retrieves all sets with games for a match
	GetScore(ctx context.Context, matchID int64) ([]domain.Set, error)

	// GetSet retrieves one set with its games
	GetSet(ctx context.Context, matchID, setID int64) (*domain.Set, error)

	// GetGame retrieves one game within a set
	GetGame(ctx context.Context, setID, gameID int64) (*domain.Game, error)

	// CountSets counts the sets of a match
	CountSets(ctx context.Context, matchID int64) (int, error)

	// CreateSet creates a new set
	CreateSet(ctx context.Context, set *domain.Set) error

	// CreateGame creates a new game
	CreateGame(ctx context.Context, game *domain.Game) error

	// UpdateGame persists a game's score fields
	UpdateGame(ctx context.Context, game *domain.Game) error

	// CompleteSet persists a completed set with its derived tallies
	CompleteSet(ctx context.Context, set *domain.Set) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	User     UserRepository
	Match    MatchRepository
	Court    CourtRepository
	Location LocationRepository
	Scoring  ScoringRepository
}
