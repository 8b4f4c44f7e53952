package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"squad-builder/internal/db"
	"squad-builder/internal/domain"
	"squad-builder/internal/roster"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type TeamRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// List returns all teams with their members, newest first.
func (r *TeamRepository) List(ctx context.Context) ([]domain.TeamRecord, error) {
	teams, err := r.queries.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	members, err := r.queries.ListAllTeamMembers(ctx)
	if err != nil {
		return nil, err
	}

	byTeam := make(map[string][]domain.TeamMember, len(teams))
	for _, m := range members {
		byTeam[m.TeamID] = append(byTeam[m.TeamID], toDomainMember(m))
	}

	result := make([]domain.TeamRecord, len(teams))
	for i, t := range teams {
		result[i] = domain.TeamRecord{
			ID:           t.ID,
			Name:         t.Name,
			SynergyScore: int(t.Synergy),
			Members:      byTeam[t.ID],
			CreatedAt:    t.CreatedAt,
		}
	}
	return result, nil
}

// Create stores the team and its members in one transaction and returns the
// record with its id and creation time filled in.
func (r *TeamRepository) Create(ctx context.Context, team domain.TeamRecord) (*domain.TeamRecord, error) {
	team.Name = strings.TrimSpace(team.Name)
	if team.Name == "" {
		return nil, fmt.Errorf("%w: team name is required", domain.ErrInvalidInput)
	}
	if len(team.Members) < roster.MinTeamSize || len(team.Members) > roster.Size {
		return nil, fmt.Errorf("%w: a team needs %d to %d members, got %d",
			domain.ErrInvalidInput, roster.MinTeamSize, roster.Size, len(team.Members))
	}
	if team.SynergyScore < 0 || team.SynergyScore > 100 {
		return nil, fmt.Errorf("%w: synergy %d out of range", domain.ErrInvalidInput, team.SynergyScore)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nanoid: %w", err)
	}
	team.ID = id
	team.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := qtx.CreateTeam(ctx, db.CreateTeamParams{
		ID:        team.ID,
		Name:      team.Name,
		Synergy:   int64(team.SynergyScore),
		CreatedAt: team.CreatedAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	members := make([]domain.TeamMember, len(team.Members))
	for i, m := range team.Members {
		memberID, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate nanoid: %w", err)
		}
		m.ID = memberID
		m.TeamID = team.ID

		err = qtx.CreateTeamMember(ctx, db.CreateTeamMemberParams{
			ID:           m.ID,
			TeamID:       m.TeamID,
			Position:     int64(i),
			Nickname:     m.Nickname,
			Role:         sql.NullString{String: string(m.Role), Valid: m.Role != domain.RoleNone},
			Elo:          int64(m.Stats.Rating),
			Kd:           m.Stats.KD,
			HsPercentage: int64(m.Stats.HeadshotPercentage),
			WinRate:      int64(m.Stats.WinRate),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create team member %s: %w", m.Nickname, err)
		}
		members[i] = m
	}
	team.Members = members

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit team: %w", err)
	}

	r.logger.Info().
		Str("team_id", team.ID).
		Str("name", team.Name).
		Int("members", len(team.Members)).
		Int("synergy", team.SynergyScore).
		Msg("team created")
	return &team, nil
}

func toDomainMember(m db.TeamMember) domain.TeamMember {
	return domain.TeamMember{
		ID:       m.ID,
		TeamID:   m.TeamID,
		Nickname: m.Nickname,
		Role:     domain.Role(m.Role.String),
		Stats: domain.Stats{
			Rating:             int(m.Elo),
			KD:                 m.Kd,
			HeadshotPercentage: int(m.HsPercentage),
			WinRate:            int(m.WinRate),
		},
	}
}
