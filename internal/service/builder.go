package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"squad-builder/internal/builder"
	"squad-builder/internal/config"
	"squad-builder/internal/constants"
	"squad-builder/internal/domain"
	"squad-builder/internal/roster"
	"squad-builder/internal/scoring"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type session struct {
	mu       sync.Mutex
	id       string
	workflow *builder.Workflow
	lastSeen time.Time
}

type SlotState struct {
	ID          int
	Occupied    bool
	Nickname    string
	Role        domain.Role
	Stats       domain.Stats
	RoleOptions []roster.RoleOption
}

// BuilderState is what a client needs to render one team builder screen.
type BuilderState struct {
	SessionID        string
	Slots            []SlotState
	AvailablePlayers []domain.Player
	Summary          scoring.Summary
	CanSave          bool
}

// BuilderService keeps one team-building workflow per session. Sessions are
// independent; each one is serialised by its own mutex.
type BuilderService struct {
	players PlayerStore
	teams   builder.TeamStore
	ttl     time.Duration
	logger  zerolog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewBuilderService(players PlayerStore, teams TeamStore, cfg *config.Config, logger zerolog.Logger) *BuilderService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}
	return &BuilderService{
		players:  players,
		teams:    teams,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

func (s *BuilderService) StartSession(ctx context.Context) (*BuilderState, error) {
	sess := &session{
		id:       uuid.NewString(),
		workflow: builder.New(s.teams),
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info().Str("session_id", sess.id).Msg("builder session started")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.state(ctx, sess)
}

func (s *BuilderService) GetSession(ctx context.Context, sessionID string) (*BuilderState, error) {
	return s.withSession(ctx, sessionID, func(*builder.Workflow) error { return nil })
}

func (s *BuilderService) SelectPlayer(ctx context.Context, sessionID string, slotID int, nickname string) (*BuilderState, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.players.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}

	return s.withSession(ctx, sessionID, func(w *builder.Workflow) error {
		if err := w.SelectPlayer(slotID, *player); err != nil {
			return err
		}
		s.logger.Debug().
			Str("session_id", sessionID).
			Int("slot", slotID).
			Str("nickname", nickname).
			Msg("player selected")
		return nil
	})
}

func (s *BuilderService) AssignRole(ctx context.Context, sessionID string, slotID int, role domain.Role) (*BuilderState, error) {
	return s.withSession(ctx, sessionID, func(w *builder.Workflow) error {
		return w.AssignRole(slotID, role)
	})
}

func (s *BuilderService) RemoveMember(ctx context.Context, sessionID string, slotID int) (*BuilderState, error) {
	return s.withSession(ctx, sessionID, func(w *builder.Workflow) error {
		return w.RemoveMember(slotID)
	})
}

func (s *BuilderService) ResetSession(ctx context.Context, sessionID string) (*BuilderState, error) {
	return s.withSession(ctx, sessionID, func(w *builder.Workflow) error {
		w.Reset()
		return nil
	})
}

// SaveTeam persists the session's roster under name. The session stays open
// with its roster unchanged.
func (s *BuilderService) SaveTeam(ctx context.Context, sessionID, name string) (*domain.TeamRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	team, err := sess.workflow.SaveTeam(ctx, name)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("save team rejected")
		return nil, err
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Str("team_id", team.ID).
		Int("synergy", team.SynergyScore).
		Msg("team saved from builder")
	return team, nil
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were dropped.
func (s *BuilderService) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		s.logger.Info().Int("dropped", dropped).Int("remaining", len(s.sessions)).Msg("expired builder sessions")
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *BuilderService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *BuilderService) lookup(sessionID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	sess.lastSeen = s.now()
	return sess, nil
}

func (s *BuilderService) withSession(ctx context.Context, sessionID string, fn func(*builder.Workflow) error) (*BuilderState, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := fn(sess.workflow); err != nil {
		return nil, err
	}
	return s.state(ctx, sess)
}

// state must be called with sess.mu held.
func (s *BuilderService) state(ctx context.Context, sess *session) (*BuilderState, error) {
	pool, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	r := sess.workflow.Roster()
	st := &BuilderState{
		SessionID:        sess.id,
		AvailablePlayers: roster.AvailablePlayers(r, pool),
		Summary:          sess.workflow.Summary(),
		CanSave:          r.ActiveCount() >= roster.MinTeamSize,
	}
	for _, slot := range r.Slots() {
		ss := SlotState{ID: slot.ID, Occupied: slot.Occupied()}
		if slot.Occupied() {
			ss.Nickname = slot.Occupant.Nickname
			ss.Role = slot.Occupant.Role
			ss.Stats = slot.Occupant.Stats
			ss.RoleOptions = roster.AvailableRoles(r, slot.ID)
		}
		st.Slots = append(st.Slots, ss)
	}
	return st, nil
}
