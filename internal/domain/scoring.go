package domain

import (
	"time"

	"padel-api/pkg/errors"
)

// Game is one game within a set. Points are constrained to [0,7] by
// request validation; the sheet itself is a raw scoreboard, not a rules
// engine.
type Game struct {
	ID          int64     `json:"id"`
	SetID       int64     `json:"set_id"`
	GameNumber  int       `json:"game_number"`
	TeamAPoints int       `json:"team_a_points"`
	TeamBPoints int       `json:"team_b_points"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateScore overwrites the game's points and completion flag. The
// completed flag is caller-asserted, not derived from the points.
func (g *Game) UpdateScore(teamAPoints, teamBPoints int, completed bool) {
	g.TeamAPoints = teamAPoints
	g.TeamBPoints = teamBPoints
	g.IsCompleted = completed
}

// Set is one set within a match, owning an ordered sequence of games.
type Set struct {
	ID          int64     `json:"id"`
	MatchID     int64     `json:"match_id"`
	SetNumber   int       `json:"set_number"`
	TeamAGames  int       `json:"team_a_games"`
	TeamBGames  int       `json:"team_b_games"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Games []Game `json:"games,omitempty"`
}

// AddGame appends the next sequential game with zeroed scores. Completed
// sets accept no further games.
func (s *Set) AddGame() (*Game, error) {
	if s.IsCompleted {
		return nil, errors.NewBusinessRuleError("Cannot add games to a completed set")
	}

	game := Game{
		SetID:      s.ID,
		GameNumber: len(s.Games) + 1,
	}
	s.Games = append(s.Games, game)
	return &s.Games[len(s.Games)-1], nil
}

// Complete marks the set completed once every game is completed. A set
// with zero games completes vacuously. Team game tallies are derived from
// completed game outcomes: the team with the higher points wins the game,
// equal points count for neither.
func (s *Set) Complete() error {
	for _, g := range s.Games {
		if !g.IsCompleted {
			return errors.NewBusinessRuleError("All games in the set must be completed first")
		}
	}

	teamA, teamB := 0, 0
	for _, g := range s.Games {
		switch {
		case g.TeamAPoints > g.TeamBPoints:
			teamA++
		case g.TeamBPoints > g.TeamAPoints:
			teamB++
		}
	}

	s.TeamAGames = teamA
	s.TeamBGames = teamB
	s.IsCompleted = true
	return nil
}

// NextSet builds the next sequential set for a match given the number of
// existing sets. There is no gate on prior sets being complete.
func NextSet(matchID int64, existingSets int) *Set {
	return &Set{
		MatchID:   matchID,
		SetNumber: existingSets + 1,
	}
}

// UpdateGameScoreRequest represents a game score update
type UpdateGameScoreRequest struct {
	TeamAPoints int   `json:"team_a_points"`
	TeamBPoints int   `json:"team_b_points"`
	IsCompleted *bool `json:"is_completed,omitempty"`
}

// MatchScore is the full score sheet of a match
type MatchScore struct {
	MatchID int64       `json:"match_id"`
	Status  MatchStatus `json:"status"`
	Sets    []Set       `json:"sets"`
}
