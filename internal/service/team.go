package service

import (
	"context"
	"fmt"

	"squad-builder/internal/constants"
	"squad-builder/internal/domain"
	"squad-builder/internal/roster"
	"squad-builder/internal/scoring"

	"github.com/rs/zerolog"
)

type TeamStore interface {
	List(ctx context.Context) ([]domain.TeamRecord, error)
	Create(ctx context.Context, team domain.TeamRecord) (*domain.TeamRecord, error)
}

type TeamService struct {
	store  TeamStore
	logger zerolog.Logger
}

func NewTeamService(store TeamStore, logger zerolog.Logger) *TeamService {
	return &TeamService{store: store, logger: logger}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]domain.TeamRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	teams, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list teams")
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// CreateTeam stores a team assembled outside a builder session. Members are
// checked with the same roster rules a session uses; synergy is derived from
// the member count.
func (s *TeamService) CreateTeam(ctx context.Context, name string, members []domain.TeamMember) (*domain.TeamRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if len(members) > roster.Size {
		return nil, fmt.Errorf("%w: at most %d members", domain.ErrInvalidInput, roster.Size)
	}
	r := roster.New()
	for i, m := range members {
		if m.Nickname == "" {
			return nil, fmt.Errorf("%w: member %d has no nickname", domain.ErrInvalidInput, i)
		}
		if !roster.CanAssignPlayer(r, m.Nickname) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatePlayer, m.Nickname)
		}
		if m.Role != domain.RoleNone && !m.Role.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, m.Role)
		}
		if !roster.CanAssignRole(r, m.Role, i) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRoleUnavailable, m.Role)
		}
		if err := r.Occupy(i, m.Nickname, m.Role, m.Stats); err != nil {
			return nil, err
		}
	}

	team, err := s.store.Create(ctx, domain.TeamRecord{
		Name:         name,
		SynergyScore: scoring.TeamSynergy(r.Members()),
		Members:      members,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("name", name).Msg("team creation rejected")
		return nil, err
	}
	return team, nil
}
