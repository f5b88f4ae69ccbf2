package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"padel-api/internal/domain"
	"padel-api/pkg/database"
)

type PostgresMatchRepository struct {
	db *database.PostgresDB
}

func NewMatchRepository(db *database.PostgresDB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `
	id, court_id, creator_id, title, COALESCE(description, ''),
	match_date_time, max_players, current_players, skill_level,
	match_type, status, COALESCE(notes, ''), created_at, updated_at
`

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(
		&m.ID,
		&m.CourtID,
		&m.CreatorID,
		&m.Title,
		&m.Description,
		&m.MatchDateTime,
		&m.MaxPlayers,
		&m.CurrentPlayers,
		&m.SkillLevel,
		&m.MatchType,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID retrieves a match with its players loaded
func (r *PostgresMatchRepository) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 AND deleted_at IS NULL`

	match, err := scanMatch(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	players, err := r.Players(ctx, id)
	if err != nil {
		return nil, err
	}
	match.Players = players

	return match, nil
}

// List retrieves matches matching the filter, upcoming-first. With no
// status filter only active upcoming matches are returned.
func (r *PostgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE deleted_at IS NULL`
	args := []interface{}{}

	if filter.CourtID > 0 {
		args = append(args, filter.CourtID)
		query += fmt.Sprintf(" AND court_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	} else {
		args = append(args, time.Now().UTC())
		query += fmt.Sprintf(" AND status IN ('open', 'full', 'ongoing') AND match_date_time >= $%d", len(args))
	}
	if filter.SkillLevel != "" {
		args = append(args, filter.SkillLevel)
		query += fmt.Sprintf(" AND skill_level = $%d", len(args))
	}

	query += " ORDER BY match_date_time ASC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// ListOpenWithCourts retrieves non-cancelled upcoming matches joined with
// their courts, for nearby searches
func (r *PostgresMatchRepository) ListOpenWithCourts(ctx context.Context, skillLevel domain.SkillLevel) ([]*domain.Match, error) {
	query := `
		SELECT m.id, m.court_id, m.creator_id, m.title, COALESCE(m.description, ''),
		       m.match_date_time, m.max_players, m.current_players, m.skill_level,
		       m.match_type, m.status, COALESCE(m.notes, ''), m.created_at, m.updated_at,
		       c.id, c.name, c.latitude, c.longitude, c.city
		FROM matches m
		JOIN courts c ON c.id = m.court_id
		WHERE m.deleted_at IS NULL
		  AND m.status != 'cancelled'
		  AND m.match_date_time >= $1
	`
	args := []interface{}{time.Now().UTC()}

	if skillLevel != "" {
		args = append(args, skillLevel)
		query += fmt.Sprintf(" AND m.skill_level = $%d", len(args))
	}
	query += " ORDER BY m.match_date_time ASC"

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches with courts: %w", err)
	}
	defer rows.Close()

	var matches []*domain.Match
	for rows.Next() {
		var m domain.Match
		var c domain.Court
		err := rows.Scan(
			&m.ID, &m.CourtID, &m.CreatorID, &m.Title, &m.Description,
			&m.MatchDateTime, &m.MaxPlayers, &m.CurrentPlayers, &m.SkillLevel,
			&m.MatchType, &m.Status, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
			&c.ID, &c.Name, &c.Latitude, &c.Longitude, &c.City,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match with court: %w", err)
		}
		m.Court = &c
		matches = append(matches, &m)
	}

	return matches, rows.Err()
}

// Create creates a new match
func (r *PostgresMatchRepository) Create(ctx context.Context, match *domain.Match) error {
	query := `
		INSERT INTO matches (
			court_id, creator_id, title, description, match_date_time,
			max_players, current_players, skill_level, match_type, status, notes
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, NULLIF($11, ''))
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		match.CourtID,
		match.CreatorID,
		match.Title,
		match.Description,
		match.MatchDateTime,
		match.MaxPlayers,
		match.CurrentPlayers,
		match.SkillLevel,
		match.MatchType,
		match.Status,
		match.Notes,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	return nil
}

// Update persists mutable match fields
func (r *PostgresMatchRepository) Update(ctx context.Context, match *domain.Match) error {
	query := `
		UPDATE matches
		SET title = $2, description = NULLIF($3, ''), match_date_time = $4,
		    skill_level = $5, match_type = $6, status = $7,
		    notes = NULLIF($8, ''), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		match.ID,
		match.Title,
		match.Description,
		match.MatchDateTime,
		match.SkillLevel,
		match.MatchType,
		match.Status,
		match.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete soft-deletes a match; roster, sets and games cascade on hard
// delete and are hidden with the match meanwhile
func (r *PostgresMatchRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE matches SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Players retrieves the roster of a match
func (r *PostgresMatchRepository) Players(ctx context.Context, matchID int64) ([]domain.MatchPlayer, error) {
	query := `
		SELECT mp.id, mp.match_id, mp.user_id, mp.team, mp.status, mp.created_at,
		       u.id, u.name, u.email, u.role
		FROM match_players mp
		JOIN users u ON u.id = mp.user_id
		WHERE mp.match_id = $1
		ORDER BY mp.created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match players: %w", err)
	}
	defer rows.Close()

	var players []domain.MatchPlayer
	for rows.Next() {
		var p domain.MatchPlayer
		var u domain.User
		err := rows.Scan(
			&p.ID, &p.MatchID, &p.UserID, &p.Team, &p.State, &p.JoinedAt,
			&u.ID, &u.Name, &u.Email, &u.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match player: %w", err)
		}
		p.User = &u
		players = append(players, p)
	}

	return players, rows.Err()
}

// Join re-validates and applies a join inside one transaction with the
// match row locked, so two joins racing for the last slot serialize and
// the occupancy invariant holds.
func (r *PostgresMatchRepository) Join(ctx context.Context, matchID, userID int64) (*domain.Match, error) {
	var match *domain.Match

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		m, err := r.lockMatch(ctx, tx, matchID)
		if err != nil {
			return err
		}

		player, err := m.Join(userID)
		if err != nil {
			return err
		}

		insert := `
			INSERT INTO match_players (match_id, user_id, team, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`
		if err := tx.QueryRow(ctx, insert, matchID, userID, player.Team, player.State).
			Scan(&player.ID, &player.JoinedAt); err != nil {
			return fmt.Errorf("failed to insert match player: %w", err)
		}

		if err := r.saveOccupancy(ctx, tx, m); err != nil {
			return err
		}

		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return match, nil
}

// Leave removes a roster entry inside one transaction with the match row
// locked. The occupancy decrement only happens when a row was removed.
func (r *PostgresMatchRepository) Leave(ctx context.Context, matchID, userID int64) (*domain.Match, error) {
	var match *domain.Match

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		m, err := r.lockMatch(ctx, tx, matchID)
		if err != nil {
			return err
		}

		if err := m.Leave(userID); err != nil {
			return err
		}

		del := `DELETE FROM match_players WHERE match_id = $1 AND user_id = $2`
		if _, err := tx.Exec(ctx, del, matchID, userID); err != nil {
			return fmt.Errorf("failed to delete match player: %w", err)
		}

		if err := r.saveOccupancy(ctx, tx, m); err != nil {
			return err
		}

		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return match, nil
}

// UpdateStatus persists an explicitly advanced status
func (r *PostgresMatchRepository) UpdateStatus(ctx context.Context, matchID int64, status domain.MatchStatus) error {
	query := `UPDATE matches SET status = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Pool.Exec(ctx, query, matchID, status)
	if err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// lockMatch loads a match and its roster with the match row locked for
// the duration of the transaction
func (r *PostgresMatchRepository) lockMatch(ctx context.Context, tx pgx.Tx, matchID int64) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	m, err := scanMatch(tx.QueryRow(ctx, query, matchID))
	if err == pgx.ErrNoRows {
		return nil, pgx.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock match: %w", err)
	}

	rows, err := tx.Query(ctx,
		`SELECT id, match_id, user_id, team, status, created_at FROM match_players WHERE match_id = $1 ORDER BY created_at ASC`,
		matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.MatchPlayer
		if err := rows.Scan(&p.ID, &p.MatchID, &p.UserID, &p.Team, &p.State, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		m.Players = append(m.Players, p)
	}

	return m, rows.Err()
}

func (r *PostgresMatchRepository) saveOccupancy(ctx context.Context, tx pgx.Tx, m *domain.Match) error {
	query := `UPDATE matches SET current_players = $2, status = $3, updated_at = NOW() WHERE id = $1`
	if _, err := tx.Exec(ctx, query, m.ID, m.CurrentPlayers, m.Status); err != nil {
		return fmt.Errorf("failed to save occupancy: %w", err)
	}
	return nil
}
