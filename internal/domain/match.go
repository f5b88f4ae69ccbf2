package domain

import (
	"time"

	"padel-api/pkg/errors"
)

// MatchStatus represents the lifecycle state of a match
type MatchStatus string

const (
	MatchOpen      MatchStatus = "open"
	MatchFull      MatchStatus = "full"
	MatchOngoing   MatchStatus = "ongoing"
	MatchFinished  MatchStatus = "finished"
	MatchCancelled MatchStatus = "cancelled"
)

// IsActive reports whether the match still accepts roster or score activity
func (s MatchStatus) IsActive() bool {
	return s == MatchOpen || s == MatchFull || s == MatchOngoing
}

// IsTerminal reports whether the status admits no further transitions
func (s MatchStatus) IsTerminal() bool {
	return s == MatchFinished || s == MatchCancelled
}

// Valid reports whether the status is a known value
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchOpen, MatchFull, MatchOngoing, MatchFinished, MatchCancelled:
		return true
	}
	return false
}

// SkillLevel represents the expected skill level of a match
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// Valid reports whether the skill level is a known value
func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

// MatchType represents the competitiveness of a match
type MatchType string

const (
	MatchFriendly    MatchType = "friendly"
	MatchCompetitive MatchType = "competitive"
)

// Valid reports whether the match type is a known value
func (t MatchType) Valid() bool {
	return t == MatchFriendly || t == MatchCompetitive
}

// PlayerState represents a roster member's state
type PlayerState string

const (
	PlayerJoined   PlayerState = "joined"
	PlayerLeft     PlayerState = "left"
	PlayerFinished PlayerState = "finished"
)

// MatchPlayer is one roster entry; unique per (match, user)
type MatchPlayer struct {
	ID       int64       `json:"id"`
	MatchID  int64       `json:"match_id"`
	UserID   int64       `json:"user_id"`
	Team     *string     `json:"team,omitempty"`
	State    PlayerState `json:"status"`
	JoinedAt time.Time   `json:"joined_at"`

	User *User `json:"user,omitempty"`
}

// Match is a scheduled play session at a court with a capacity and roster.
// CurrentPlayers starts at 1: the creator counts as an occupant but never
// appears among Players.
type Match struct {
	ID             int64       `json:"id"`
	CourtID        int64       `json:"court_id"`
	CreatorID      int64       `json:"creator_id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	MatchDateTime  time.Time   `json:"match_date_time"`
	MaxPlayers     int         `json:"max_players"`
	CurrentPlayers int         `json:"current_players"`
	SkillLevel     SkillLevel  `json:"skill_level"`
	MatchType      MatchType   `json:"match_type"`
	Status         MatchStatus `json:"status"`
	Notes          string      `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`

	Court   *Court        `json:"court,omitempty"`
	Creator *User         `json:"creator,omitempty"`
	Players []MatchPlayer `json:"players,omitempty"`
}

// Coordinates implements geo.Locatable via the match's court
func (m Match) Coordinates() (float64, float64) {
	if m.Court == nil {
		return 0, 0
	}
	return m.Court.Latitude, m.Court.Longitude
}

// IsFull reports whether the match has reached capacity
func (m *Match) IsFull() bool {
	return m.CurrentPlayers >= m.MaxPlayers
}

// HasJoined reports whether the user holds a JOINED roster entry
func (m *Match) HasJoined(userID int64) bool {
	for _, p := range m.Players {
		if p.UserID == userID && p.State == PlayerJoined {
			return true
		}
	}
	return false
}

// JoinViolations returns every violated join precondition, in check order.
// An empty slice means the user may join.
func (m *Match) JoinViolations(userID int64) []string {
	var reasons []string
	if m.IsFull() {
		reasons = append(reasons, "Match is full")
	}
	if m.CreatorID == userID {
		reasons = append(reasons, "You are the creator of this match")
	}
	if m.HasJoined(userID) {
		reasons = append(reasons, "You already joined this match")
	}
	return reasons
}

// Join adds the user to the roster, increments occupancy and flips the
// status to FULL exactly when capacity is reached. All violated
// preconditions are reported in a single error.
func (m *Match) Join(userID int64) (*MatchPlayer, error) {
	if reasons := m.JoinViolations(userID); len(reasons) > 0 {
		return nil, errors.NewBusinessRuleError("Cannot join match", reasons...)
	}

	player := MatchPlayer{
		MatchID:  m.ID,
		UserID:   userID,
		State:    PlayerJoined,
		JoinedAt: time.Now().UTC(),
	}
	m.Players = append(m.Players, player)
	m.CurrentPlayers++
	m.recomputeOccupancyStatus()

	return &m.Players[len(m.Players)-1], nil
}

// Leave removes the user's roster entry and decrements occupancy. The
// decrement is guarded on the entry actually existing, so leaving a match
// you never joined is an error rather than a silent counter drift.
func (m *Match) Leave(userID int64) error {
	removed := false
	players := m.Players[:0]
	for _, p := range m.Players {
		if p.UserID == userID {
			removed = true
			continue
		}
		players = append(players, p)
	}
	if !removed {
		return errors.NewBusinessRuleError("Cannot leave match", "You have not joined this match")
	}

	m.Players = players
	m.CurrentPlayers--
	m.recomputeOccupancyStatus()
	return nil
}

// Advance moves the match to an explicitly set state. Terminal states
// refuse further transitions; occupancy-derived recomputes never touch an
// advanced state, so an explicit ONGOING is not clobbered by a later leave.
func (m *Match) Advance(target MatchStatus) error {
	switch target {
	case MatchOngoing, MatchFinished, MatchCancelled:
	default:
		return errors.NewBusinessRuleError("Cannot update match status", "Target status must be ongoing, finished or cancelled")
	}
	if m.Status.IsTerminal() {
		return errors.NewBusinessRuleError("Cannot update match status", "Match is already "+string(m.Status))
	}
	m.Status = target
	return nil
}

// recomputeOccupancyStatus derives OPEN/FULL from occupancy. The
// derivation only applies while the match is in an occupancy-driven state;
// ONGOING/FINISHED/CANCELLED are owned by Advance.
func (m *Match) recomputeOccupancyStatus() {
	if m.Status != MatchOpen && m.Status != MatchFull {
		return
	}
	if m.IsFull() {
		m.Status = MatchFull
	} else {
		m.Status = MatchOpen
	}
}

// CreateMatchRequest represents match creation data
type CreateMatchRequest struct {
	CourtID       int64      `json:"court_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	MatchDateTime time.Time  `json:"match_date_time"`
	MaxPlayers    int        `json:"max_players"`
	SkillLevel    SkillLevel `json:"skill_level"`
	MatchType     MatchType  `json:"match_type"`
	Notes         string     `json:"notes,omitempty"`
}

// UpdateMatchRequest represents match update data; nil fields are left unchanged
type UpdateMatchRequest struct {
	Title         *string      `json:"title,omitempty"`
	Description   *string      `json:"description,omitempty"`
	MatchDateTime *time.Time   `json:"match_date_time,omitempty"`
	SkillLevel    *SkillLevel  `json:"skill_level,omitempty"`
	MatchType     *MatchType   `json:"match_type,omitempty"`
	Status        *MatchStatus `json:"status,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
}

// NearbyMatch pairs a match with its distance from the query point
type NearbyMatch struct {
	Match      *Match  `json:"match"`
	DistanceKm float64 `json:"distance_km"`
}
