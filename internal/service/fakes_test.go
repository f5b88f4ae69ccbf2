package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"padel-api/internal/domain"
	"padel-api/internal/repository"
	"padel-api/pkg/logger"
)

func testLogger() *logger.Logger {
	log, _ := logger.New("error")
	return log
}

func testCache() *CacheService {
	return NewCacheService(nil, testLogger())
}

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

// fakeCourtRepo is an in-memory CourtRepository
type fakeCourtRepo struct {
	courts map[int64]*domain.Court
	nextID int64
}

func newFakeCourtRepo() *fakeCourtRepo {
	return &fakeCourtRepo{courts: map[int64]*domain.Court{}}
}

func (r *fakeCourtRepo) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	c, ok := r.courts[id]
	if !ok || !c.IsActive {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCourtRepo) ListActive(ctx context.Context, city string) ([]*domain.Court, error) {
	var out []*domain.Court
	for _, c := range r.courts {
		if c.IsActive {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCourtRepo) Create(ctx context.Context, court *domain.Court) error {
	r.nextID++
	court.ID = r.nextID
	court.IsActive = true
	copied := *court
	r.courts[court.ID] = &copied
	return nil
}

func (r *fakeCourtRepo) Update(ctx context.Context, court *domain.Court) error {
	if _, ok := r.courts[court.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *court
	r.courts[court.ID] = &copied
	return nil
}

func (r *fakeCourtRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.courts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.courts, id)
	return nil
}

// fakeLocationRepo is an in-memory LocationRepository
type fakeLocationRepo struct {
	locations map[int64]*domain.PartnerLocation
	nextID    int64
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[int64]*domain.PartnerLocation{}}
}

func (r *fakeLocationRepo) add(location *domain.PartnerLocation) *domain.PartnerLocation {
	r.nextID++
	location.ID = r.nextID
	location.IsActive = true
	copied := *location
	r.locations[location.ID] = &copied
	return location
}

func (r *fakeLocationRepo) GetByID(ctx context.Context, id int64) (*domain.PartnerLocation, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, nil
	}
	copied := *l
	return &copied, nil
}

func (r *fakeLocationRepo) ListActive(ctx context.Context) ([]*domain.PartnerLocation, error) {
	var out []*domain.PartnerLocation
	for _, l := range r.locations {
		copied := *l
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeLocationRepo) SearchByCity(ctx context.Context, city string) ([]*domain.PartnerLocation, error) {
	var out []*domain.PartnerLocation
	for _, l := range r.locations {
		if l.City == city {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeMatchRepo is an in-memory MatchRepository. Join and Leave apply the
// same domain transitions the Postgres repository runs under its row lock.
type fakeMatchRepo struct {
	matches map[int64]*domain.Match
	nextID  int64
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[int64]*domain.Match{}}
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	copied.Players = append([]domain.MatchPlayer(nil), m.Players...)
	return &copied, nil
}

func (r *fakeMatchRepo) List(ctx context.Context, filter repository.MatchFilter) ([]*domain.Match, error) {
	var out []*domain.Match
	for _, m := range r.matches {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.SkillLevel != "" && m.SkillLevel != filter.SkillLevel {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeMatchRepo) ListOpenWithCourts(ctx context.Context, skillLevel domain.SkillLevel) ([]*domain.Match, error) {
	var out []*domain.Match
	for _, m := range r.matches {
		if m.Status == domain.MatchCancelled {
			continue
		}
		if skillLevel != "" && m.SkillLevel != skillLevel {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeMatchRepo) Create(ctx context.Context, match *domain.Match) error {
	r.nextID++
	match.ID = r.nextID
	copied := *match
	r.matches[match.ID] = &copied
	return nil
}

func (r *fakeMatchRepo) Update(ctx context.Context, match *domain.Match) error {
	if _, ok := r.matches[match.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *match
	r.matches[match.ID] = &copied
	return nil
}

func (r *fakeMatchRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.matches[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) Players(ctx context.Context, matchID int64) ([]domain.MatchPlayer, error) {
	m, ok := r.matches[matchID]
	if !ok {
		return nil, nil
	}
	return append([]domain.MatchPlayer(nil), m.Players...), nil
}

func (r *fakeMatchRepo) Join(ctx context.Context, matchID, userID int64) (*domain.Match, error) {
	m, ok := r.matches[matchID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if _, err := m.Join(userID); err != nil {
		return nil, err
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMatchRepo) Leave(ctx context.Context, matchID, userID int64) (*domain.Match, error) {
	m, ok := r.matches[matchID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if err := m.Leave(userID); err != nil {
		return nil, err
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMatchRepo) UpdateStatus(ctx context.Context, matchID int64, status domain.MatchStatus) error {
	m, ok := r.matches[matchID]
	if !ok {
		return pgx.ErrNoRows
	}
	m.Status = status
	return nil
}

// fakeScoringRepo is an in-memory ScoringRepository
type fakeScoringRepo struct {
	sets   map[int64]*domain.Set
	games  map[int64]*domain.Game
	nextID int64
}

func newFakeScoringRepo() *fakeScoringRepo {
	return &fakeScoringRepo{sets: map[int64]*domain.Set{}, games: map[int64]*domain.Game{}}
}

func (r *fakeScoringRepo) GetScore(ctx context.Context, matchID int64) ([]domain.Set, error) {
	var out []domain.Set
	for _, s := range r.sets {
		if s.MatchID != matchID {
			continue
		}
		copied := *s
		copied.Games = r.gamesForSet(s.ID)
		out = append(out, copied)
	}
	return out, nil
}

func (r *fakeScoringRepo) GetSet(ctx context.Context, matchID, setID int64) (*domain.Set, error) {
	s, ok := r.sets[setID]
	if !ok || s.MatchID != matchID {
		return nil, nil
	}
	copied := *s
	copied.Games = r.gamesForSet(setID)
	return &copied, nil
}

func (r *fakeScoringRepo) GetGame(ctx context.Context, setID, gameID int64) (*domain.Game, error) {
	g, ok := r.games[gameID]
	if !ok || g.SetID != setID {
		return nil, nil
	}
	copied := *g
	return &copied, nil
}

func (r *fakeScoringRepo) CountSets(ctx context.Context, matchID int64) (int, error) {
	count := 0
	for _, s := range r.sets {
		if s.MatchID == matchID {
			count++
		}
	}
	return count, nil
}

func (r *fakeScoringRepo) CreateSet(ctx context.Context, set *domain.Set) error {
	r.nextID++
	set.ID = r.nextID
	copied := *set
	r.sets[set.ID] = &copied
	return nil
}

func (r *fakeScoringRepo) CreateGame(ctx context.Context, game *domain.Game) error {
	r.nextID++
	game.ID = r.nextID
	copied := *game
	r.games[game.ID] = &copied
	return nil
}

func (r *fakeScoringRepo) UpdateGame(ctx context.Context, game *domain.Game) error {
	if _, ok := r.games[game.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *game
	r.games[game.ID] = &copied
	return nil
}

func (r *fakeScoringRepo) CompleteSet(ctx context.Context, set *domain.Set) error {
	if _, ok := r.sets[set.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *set
	r.sets[set.ID] = &copied
	return nil
}

func (r *fakeScoringRepo) gamesForSet(setID int64) []domain.Game {
	var out []domain.Game
	for _, g := range r.games {
		if g.SetID == setID {
			out = append(out, *g)
		}
	}
	return out
}
