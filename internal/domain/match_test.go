package domain

import (
	"testing"

	"padel-api/pkg/errors"
)

func newTestMatch(maxPlayers int) *Match {
	return &Match{
		ID:             1,
		CreatorID:      100,
		MaxPlayers:     maxPlayers,
		CurrentPlayers: 1,
		Status:         MatchOpen,
	}
}

func TestMatchJoin(t *testing.T) {
	m := newTestMatch(4)

	player, err := m.Join(200)
	if err != nil {
		t.Fatalf("Join() returned error: %v", err)
	}
	if player.UserID != 200 || player.State != PlayerJoined {
		t.Errorf("unexpected roster entry: %+v", player)
	}
	if m.CurrentPlayers != 2 {
		t.Errorf("CurrentPlayers = %d, want 2", m.CurrentPlayers)
	}
	if m.Status != MatchOpen {
		t.Errorf("Status = %s, want open below capacity", m.Status)
	}
}

func TestMatchJoinFlipsToFullAtCapacity(t *testing.T) {
	m := newTestMatch(3)

	if _, err := m.Join(200); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	if m.Status != MatchOpen {
		t.Errorf("Status = %s after 2/3, want open", m.Status)
	}

	if _, err := m.Join(300); err != nil {
		t.Fatalf("second join failed: %v", err)
	}
	if m.Status != MatchFull {
		t.Errorf("Status = %s at 3/3, want full", m.Status)
	}
	if !m.IsFull() {
		t.Error("IsFull() = false at capacity")
	}
}

func TestMatchJoinViolations(t *testing.T) {
	tests := []struct {
		name        string
		setup       func() *Match
		userID      int64
		wantReasons []string
	}{
		{
			name:        "creator cannot join own match",
			setup:       func() *Match { return newTestMatch(4) },
			userID:      100,
			wantReasons: []string{"You are the creator of this match"},
		},
		{
			name: "already joined",
			setup: func() *Match {
				m := newTestMatch(4)
				m.Join(200)
				return m
			},
			userID:      200,
			wantReasons: []string{"You already joined this match"},
		},
		{
			name: "match full",
			setup: func() *Match {
				m := newTestMatch(2)
				m.Join(200)
				return m
			},
			userID:      300,
			wantReasons: []string{"Match is full"},
		},
		{
			name: "full and already joined reported together",
			setup: func() *Match {
				m := newTestMatch(2)
				m.Join(200)
				return m
			},
			userID:      200,
			wantReasons: []string{"Match is full", "You already joined this match"},
		},
		{
			name: "creator blocked on full match reports both",
			setup: func() *Match {
				m := newTestMatch(2)
				m.Join(200)
				return m
			},
			userID:      100,
			wantReasons: []string{"Match is full", "You are the creator of this match"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.setup()
			reasons := m.JoinViolations(tt.userID)

			if len(reasons) != len(tt.wantReasons) {
				t.Fatalf("got %d reasons %v, want %d %v", len(reasons), reasons, len(tt.wantReasons), tt.wantReasons)
			}
			for i, want := range tt.wantReasons {
				if reasons[i] != want {
					t.Errorf("reason[%d] = %q, want %q", i, reasons[i], want)
				}
			}

			before := m.CurrentPlayers
			if _, err := m.Join(tt.userID); err == nil {
				t.Error("Join() succeeded despite violations")
			}
			if m.CurrentPlayers != before {
				t.Errorf("failed join changed occupancy: %d -> %d", before, m.CurrentPlayers)
			}
		})
	}
}

func TestMatchJoinErrorCarriesAllReasons(t *testing.T) {
	m := newTestMatch(2)
	m.Join(200)

	_, err := m.Join(200)
	if err == nil {
		t.Fatal("expected join error")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Type != errors.ErrorTypeBusinessRule {
		t.Errorf("error type = %s, want business_rule", appErr.Type)
	}
	reason, _ := appErr.Details["reason"].(string)
	if reason != "Match is full, You already joined this match" {
		t.Errorf("reason = %q, want both violations reported", reason)
	}
}

func TestMatchLeave(t *testing.T) {
	m := newTestMatch(2)
	m.Join(200)

	if m.Status != MatchFull {
		t.Fatalf("Status = %s, want full before leave", m.Status)
	}

	if err := m.Leave(200); err != nil {
		t.Fatalf("Leave() returned error: %v", err)
	}
	if m.CurrentPlayers != 1 {
		t.Errorf("CurrentPlayers = %d, want 1", m.CurrentPlayers)
	}
	if m.Status != MatchOpen {
		t.Errorf("Status = %s after leave, want open", m.Status)
	}
	if m.HasJoined(200) {
		t.Error("HasJoined() = true after leave")
	}
}

func TestMatchLeaveWithoutJoining(t *testing.T) {
	m := newTestMatch(4)
	m.Join(200)

	err := m.Leave(999)
	if err == nil {
		t.Fatal("Leave() succeeded for user who never joined")
	}
	if m.CurrentPlayers != 2 {
		t.Errorf("occupancy drifted on failed leave: %d, want 2", m.CurrentPlayers)
	}
}

func TestMatchLeaveDoesNotClobberOngoing(t *testing.T) {
	m := newTestMatch(4)
	m.Join(200)

	if err := m.Advance(MatchOngoing); err != nil {
		t.Fatalf("Advance(ongoing) failed: %v", err)
	}
	if err := m.Leave(200); err != nil {
		t.Fatalf("Leave() failed: %v", err)
	}
	if m.Status != MatchOngoing {
		t.Errorf("Status = %s, leave must not reset an advanced state", m.Status)
	}
}

func TestMatchAdvance(t *testing.T) {
	tests := []struct {
		name    string
		from    MatchStatus
		to      MatchStatus
		wantErr bool
	}{
		{name: "open to ongoing", from: MatchOpen, to: MatchOngoing},
		{name: "full to ongoing", from: MatchFull, to: MatchOngoing},
		{name: "ongoing to finished", from: MatchOngoing, to: MatchFinished},
		{name: "open to cancelled", from: MatchOpen, to: MatchCancelled},
		{name: "open straight to finished", from: MatchOpen, to: MatchFinished},
		{name: "finished is terminal", from: MatchFinished, to: MatchOngoing, wantErr: true},
		{name: "cancelled is terminal", from: MatchCancelled, to: MatchOngoing, wantErr: true},
		{name: "open is not a valid target", from: MatchFull, to: MatchOpen, wantErr: true},
		{name: "full is not a valid target", from: MatchOpen, to: MatchFull, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch(4)
			m.Status = tt.from

			err := m.Advance(tt.to)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Advance(%s) from %s succeeded, want error", tt.to, tt.from)
				}
				if m.Status != tt.from {
					t.Errorf("failed advance changed status to %s", m.Status)
				}
				return
			}
			if err != nil {
				t.Errorf("Advance(%s) from %s failed: %v", tt.to, tt.from, err)
			}
			if m.Status != tt.to {
				t.Errorf("Status = %s, want %s", m.Status, tt.to)
			}
		})
	}
}

func TestMatchStatusPredicates(t *testing.T) {
	active := []MatchStatus{MatchOpen, MatchFull, MatchOngoing}
	for _, s := range active {
		if !s.IsActive() {
			t.Errorf("%s.IsActive() = false", s)
		}
		if s.IsTerminal() {
			t.Errorf("%s.IsTerminal() = true", s)
		}
	}

	terminal := []MatchStatus{MatchFinished, MatchCancelled}
	for _, s := range terminal {
		if s.IsActive() {
			t.Errorf("%s.IsActive() = true", s)
		}
		if !s.IsTerminal() {
			t.Errorf("%s.IsTerminal() = false", s)
		}
	}

	if MatchStatus("unknown").Valid() {
		t.Error("unknown status reported valid")
	}
}
