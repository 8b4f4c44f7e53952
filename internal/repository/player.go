package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"squad-builder/internal/db"
	"squad-builder/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// List returns every player, highest rating first.
func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	players, err := r.queries.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Player, len(players))
	for i, p := range players {
		result[i] = toDomainPlayer(p)
	}
	return result, nil
}

func (r *PlayerRepository) GetByNickname(ctx context.Context, nickname string) (*domain.Player, error) {
	player, err := r.queries.GetPlayerByNickname(ctx, nickname)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, nickname)
	}
	if err != nil {
		return nil, err
	}

	p := toDomainPlayer(player)
	return &p, nil
}

// Create inserts a new player. A nickname that already exists yields
// domain.ErrDuplicateNickname.
func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	now := time.Now().UTC()
	id, err := r.queries.CreatePlayer(ctx, db.CreatePlayerParams{
		Nickname:       player.Nickname,
		Region:         string(player.Region),
		Level:          int64(player.Level),
		Elo:            int64(player.Rating),
		Kd:             player.KD,
		HsPercentage:   int64(player.HeadshotPercentage),
		WinRate:        int64(player.WinRate),
		PreferredRole:  string(player.PreferredRole),
		Aggressiveness: int64(player.Aggressiveness),
		Experience:     string(player.Experience),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if isUniqueViolation(err) {
		r.logger.Debug().Str("nickname", player.Nickname).Msg("nickname already taken")
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateNickname, player.Nickname)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("nickname", player.Nickname).Msg("failed to create player")
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	created, err := r.queries.GetPlayer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load created player: %w", err)
	}

	p := toDomainPlayer(created)
	return &p, nil
}

func toDomainPlayer(p db.Player) domain.Player {
	return domain.Player{
		ID:                 p.ID,
		Nickname:           p.Nickname,
		Region:             domain.Region(p.Region),
		Level:              int(p.Level),
		Rating:             int(p.Elo),
		KD:                 p.Kd,
		HeadshotPercentage: int(p.HsPercentage),
		WinRate:            int(p.WinRate),
		PreferredRole:      domain.Role(p.PreferredRole),
		Aggressiveness:     int(p.Aggressiveness),
		Experience:         domain.Experience(p.Experience),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
