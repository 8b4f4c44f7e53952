package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"squad-builder/internal/domain"
)

type memPlayerStore struct {
	mu      sync.Mutex
	players map[string]domain.Player
	nextID  int64
	listErr error
}

func newMemPlayerStore(players ...domain.Player) *memPlayerStore {
	s := &memPlayerStore{players: make(map[string]domain.Player)}
	for _, p := range players {
		s.nextID++
		p.ID = s.nextID
		s.players[p.Nickname] = p
	}
	return s
}

func (s *memPlayerStore) List(context.Context) ([]domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]domain.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out, nil
}

func (s *memPlayerStore) GetByNickname(_ context.Context, nickname string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[nickname]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, nickname)
	}
	return &p, nil
}

func (s *memPlayerStore) Create(_ context.Context, player *domain.Player) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.Nickname]; ok {
		return nil, domain.ErrDuplicateNickname
	}
	s.nextID++
	p := *player
	p.ID = s.nextID
	p.CreatedAt = time.Now()
	s.players[p.Nickname] = p
	return &p, nil
}

type memTeamStore struct {
	mu    sync.Mutex
	teams []domain.TeamRecord
}

func (s *memTeamStore) List(context.Context) ([]domain.TeamRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TeamRecord(nil), s.teams...), nil
}

func (s *memTeamStore) Create(_ context.Context, team domain.TeamRecord) (*domain.TeamRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(team.Members) < 2 {
		return nil, domain.ErrInvalidInput
	}
	team.ID = fmt.Sprintf("team-%d", len(s.teams)+1)
	team.CreatedAt = time.Now()
	s.teams = append(s.teams, team)
	return &team, nil
}

type stubCaptcha struct {
	err   error
	calls int
	mu    sync.Mutex
}

func (c *stubCaptcha) Verify(context.Context, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.err
}

var seedPlayers = []domain.Player{
	{Nickname: "ZywOo", Region: domain.RegionEU, Level: 10, Rating: 3200, KD: 1.45, HeadshotPercentage: 42, WinRate: 65, PreferredRole: domain.RoleAWP},
	{Nickname: "NiKo", Region: domain.RegionEU, Level: 10, Rating: 3150, KD: 1.25, HeadshotPercentage: 55, WinRate: 58, PreferredRole: domain.RoleEntry},
	{Nickname: "m0NESY", Region: domain.RegionEU, Level: 10, Rating: 3300, KD: 1.35, HeadshotPercentage: 45, WinRate: 62, PreferredRole: domain.RoleAWP},
	{Nickname: "karrigan", Region: domain.RegionEU, Level: 10, Rating: 2500, KD: 0.95, HeadshotPercentage: 40, WinRate: 60, PreferredRole: domain.RoleIGL},
}
