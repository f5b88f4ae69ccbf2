package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"padel-api/internal/domain"
	"padel-api/pkg/database"
)

type PostgresScoringRepository struct {
	db *database.PostgresDB
}

func NewScoringRepository(db *database.PostgresDB) *PostgresScoringRepository {
	return &PostgresScoringRepository{db: db}
}

// GetScore retrieves all sets with games for a match, in set order
func (r *PostgresScoringRepository) GetScore(ctx context.Context, matchID int64) ([]domain.Set, error) {
	query := `
		SELECT id, match_id, set_number, team_a_games, team_b_games,
		       is_completed, created_at, updated_at
		FROM sets
		WHERE match_id = $1
		ORDER BY set_number ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sets: %w", err)
	}
	defer rows.Close()

	var sets []domain.Set
	for rows.Next() {
		var s domain.Set
		err := rows.Scan(
			&s.ID, &s.MatchID, &s.SetNumber, &s.TeamAGames, &s.TeamBGames,
			&s.IsCompleted, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan set: %w", err)
		}
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sets {
		games, err := r.gamesForSet(ctx, sets[i].ID)
		if err != nil {
			return nil, err
		}
		sets[i].Games = games
	}

	return sets, nil
}

// GetSet retrieves one set with its games
func (r *PostgresScoringRepository) GetSet(ctx context.Context, matchID, setID int64) (*domain.Set, error) {
	var s domain.Set
	query := `
		SELECT id, match_id, set_number, team_a_games, team_b_games,
		       is_completed, created_at, updated_at
		FROM sets
		WHERE id = $1 AND match_id = $2
	`

	err := r.db.Pool.QueryRow(ctx, query, setID, matchID).Scan(
		&s.ID, &s.MatchID, &s.SetNumber, &s.TeamAGames, &s.TeamBGames,
		&s.IsCompleted, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get set: %w", err)
	}

	games, err := r.gamesForSet(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Games = games

	return &s, nil
}

// GetGame retrieves one game within a set
func (r *PostgresScoringRepository) GetGame(ctx context.Context, setID, gameID int64) (*domain.Game, error) {
	var g domain.Game
	query := `
		SELECT id, set_id, game_number, team_a_points, team_b_points,
		       is_completed, created_at, updated_at
		FROM games
		WHERE id = $1 AND set_id = $2
	`

	err := r.db.Pool.QueryRow(ctx, query, gameID, setID).Scan(
		&g.ID, &g.SetID, &g.GameNumber, &g.TeamAPoints, &g.TeamBPoints,
		&g.IsCompleted, &g.CreatedAt, &g.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &g, nil
}

// CountSets counts the sets of a match
func (r *PostgresScoringRepository) CountSets(ctx context.Context, matchID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM sets WHERE match_id = $1`

	if err := r.db.Pool.QueryRow(ctx, query, matchID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sets: %w", err)
	}

	return count, nil
}

// CreateSet creates a new set
func (r *PostgresScoringRepository) CreateSet(ctx context.Context, set *domain.Set) error {
	query := `
		INSERT INTO sets (match_id, set_number, team_a_games, team_b_games, is_completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		set.MatchID,
		set.SetNumber,
		set.TeamAGames,
		set.TeamBGames,
		set.IsCompleted,
	).Scan(&set.ID, &set.CreatedAt, &set.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create set: %w", err)
	}

	return nil
}

// CreateGame creates a new game
func (r *PostgresScoringRepository) CreateGame(ctx context.Context, game *domain.Game) error {
	query := `
		INSERT INTO games (set_id, game_number, team_a_points, team_b_points, is_completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		game.SetID,
		game.GameNumber,
		game.TeamAPoints,
		game.TeamBPoints,
		game.IsCompleted,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// UpdateGame persists a game's score fields
func (r *PostgresScoringRepository) UpdateGame(ctx context.Context, game *domain.Game) error {
	query := `
		UPDATE games
		SET team_a_points = $2, team_b_points = $3, is_completed = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		game.ID,
		game.TeamAPoints,
		game.TeamBPoints,
		game.IsCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// CompleteSet persists a completed set with its derived tallies
func (r *PostgresScoringRepository) CompleteSet(ctx context.Context, set *domain.Set) error {
	query := `
		UPDATE sets
		SET team_a_games = $2, team_b_games = $3, is_completed = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		set.ID,
		set.TeamAGames,
		set.TeamBGames,
		set.IsCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to complete set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *PostgresScoringRepository) gamesForSet(ctx context.Context, setID int64) ([]domain.Game, error) {
	query := `
		SELECT id, set_id, game_number, team_a_points, team_b_points,
		       is_completed, created_at, updated_at
		FROM games
		WHERE set_id = $1
		ORDER BY game_number ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		var g domain.Game
		err := rows.Scan(
			&g.ID, &g.SetID, &g.GameNumber, &g.TeamAPoints, &g.TeamBPoints,
			&g.IsCompleted, &g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}

	return games, rows.Err()
}
