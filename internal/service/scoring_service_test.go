package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-api/internal/domain"
	"padel-api/pkg/errors"
)

func newScoringFixture(t *testing.T) (ScoringService, *fakeMatchRepo, *fakeScoringRepo, *domain.Match) {
	t.Helper()

	matches := newFakeMatchRepo()
	scores := newFakeScoringRepo()
	svc := NewScoringService(scores, matches, testCache(), testLogger())

	match := &domain.Match{
		CreatorID:      100,
		Title:          "Test match",
		MaxPlayers:     4,
		CurrentPlayers: 1,
		Status:         domain.MatchOngoing,
	}
	require.NoError(t, matches.Create(context.Background(), match))

	return svc, matches, scores, match
}

var (
	scoringCreator = &domain.User{ID: 100, Role: domain.RoleUser}
	scoringAdmin   = &domain.User{ID: 999, Role: domain.RoleSuperAdmin}
	scoringOther   = &domain.User{ID: 200, Role: domain.RoleUser}
)

func TestScoringServiceAuthorization(t *testing.T) {
	svc, _, _, match := newScoringFixture(t)

	_, err := svc.CreateSet(context.Background(), scoringOther, match.ID)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeAuthorization))

	_, err = svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)

	_, err = svc.CreateSet(context.Background(), scoringAdmin, match.ID)
	require.NoError(t, err)
}

func TestScoringServiceCreateSetSequencing(t *testing.T) {
	svc, _, _, match := newScoringFixture(t)

	s1, err := svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s1.SetNumber)

	s2, err := svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, s2.SetNumber)
}

func TestScoringServiceCreateGame(t *testing.T) {
	svc, _, _, match := newScoringFixture(t)

	set, err := svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)

	g1, err := svc.CreateGame(context.Background(), scoringCreator, match.ID, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, g1.GameNumber)
	assert.Zero(t, g1.TeamAPoints)
	assert.Zero(t, g1.TeamBPoints)

	g2, err := svc.CreateGame(context.Background(), scoringCreator, match.ID, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, g2.GameNumber)
}

func TestScoringServiceCreateGameOnCompletedSet(t *testing.T) {
	svc, _, _, match := newScoringFixture(t)

	set, err := svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)

	_, err = svc.CompleteSet(context.Background(), scoringCreator, match.ID, set.ID)
	require.NoError(t, err)

	_, err = svc.CreateGame(context.Background(), scoringCreator, match.ID, set.ID)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeBusinessRule))
}

func TestScoringServiceUpdateGameScore(t *testing.T) {
	svc, _, _, match := newScoringFixture(t)

	set, err := svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)
	game, err := svc.CreateGame(context.Background(), scoringCreator, match.ID, set.ID)
	require.NoError(t, err)

	completed := true
	updated, err := svc.UpdateGameScore(context.Background(), scoringCreator, match.ID, set.ID, game.ID, &domain.UpdateGameScoreRequest{
		TeamAPoints: 4,
		TeamBPoints: 2,
		IsCompleted: &completed,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.TeamAPoints)
	assert.Equal(t, 2, updated.TeamBPoints)
	assert.True(t, updated.IsCompleted)
}

func TestScoringServiceUpdateGameScoreValidation(t *testing.T) {
	svc, _, _, match := newScoringFixture(t)

	set, err := svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)
	game, err := svc.CreateGame(context.Background(), scoringCreator, match.ID, set.ID)
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b int
	}{
		{name: "negative points", a: -1, b: 0},
		{name: "points above seven", a: 8, b: 0},
		{name: "both invalid", a: -2, b: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateGameScore(context.Background(), scoringCreator, match.ID, set.ID, game.ID, &domain.UpdateGameScoreRequest{
				TeamAPoints: tt.a,
				TeamBPoints: tt.b,
			})
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		})
	}
}

func TestScoringServiceCompleteSet(t *testing.T) {
	svc, _, _, match := newScoringFixture(t)

	set, err := svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)

	games := []struct {
		a, b int
	}{
		{4, 1}, // team A
		{2, 4}, // team B
		{4, 2}, // team A
	}
	completed := true
	for _, g := range games {
		game, err := svc.CreateGame(context.Background(), scoringCreator, match.ID, set.ID)
		require.NoError(t, err)
		_, err = svc.UpdateGameScore(context.Background(), scoringCreator, match.ID, set.ID, game.ID, &domain.UpdateGameScoreRequest{
			TeamAPoints: g.a,
			TeamBPoints: g.b,
			IsCompleted: &completed,
		})
		require.NoError(t, err)
	}

	done, err := svc.CompleteSet(context.Background(), scoringCreator, match.ID, set.ID)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)
	assert.Equal(t, 2, done.TeamAGames)
	assert.Equal(t, 1, done.TeamBGames)
}

func TestScoringServiceCompleteSetBlockedOnOpenGames(t *testing.T) {
	svc, _, _, match := newScoringFixture(t)

	set, err := svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)
	_, err = svc.CreateGame(context.Background(), scoringCreator, match.ID, set.ID)
	require.NoError(t, err)

	_, err = svc.CompleteSet(context.Background(), scoringCreator, match.ID, set.ID)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeBusinessRule))
}

func TestScoringServiceFinishMatch(t *testing.T) {
	svc, matches, _, match := newScoringFixture(t)

	// An open set and an open game do not block finishing.
	set, err := svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)
	_, err = svc.CreateGame(context.Background(), scoringCreator, match.ID, set.ID)
	require.NoError(t, err)

	finished, err := svc.FinishMatch(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchFinished, finished.Status)

	stored, err := matches.GetByID(context.Background(), match.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchFinished, stored.Status)

	// Finishing twice hits the terminal-state guard.
	_, err = svc.FinishMatch(context.Background(), scoringCreator, match.ID)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeBusinessRule))
}

func TestScoringServiceGetScore(t *testing.T) {
	svc, _, _, match := newScoringFixture(t)

	set, err := svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)
	_, err = svc.CreateGame(context.Background(), scoringCreator, match.ID, set.ID)
	require.NoError(t, err)

	score, err := svc.GetScore(context.Background(), match.ID)
	require.NoError(t, err)
	assert.Equal(t, match.ID, score.MatchID)
	assert.Equal(t, domain.MatchOngoing, score.Status)
	require.Len(t, score.Sets, 1)
	assert.Len(t, score.Sets[0].Games, 1)
}

func TestScoringServiceMissingEntities(t *testing.T) {
	svc, _, _, match := newScoringFixture(t)

	_, err := svc.GetScore(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	_, err = svc.CreateGame(context.Background(), scoringCreator, match.ID, 999)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	set, err := svc.CreateSet(context.Background(), scoringCreator, match.ID)
	require.NoError(t, err)

	_, err = svc.UpdateGameScore(context.Background(), scoringCreator, match.ID, set.ID, 999, &domain.UpdateGameScoreRequest{TeamAPoints: 1, TeamBPoints: 0})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}
