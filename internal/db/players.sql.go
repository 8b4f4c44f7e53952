package db

import (
	"context"
	"time"
)

const playerColumns = `id, nickname, region, level, elo, kd, hs_percentage, win_rate,
    preferred_role, aggressiveness, experience, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row rowScanner) (Player, error) {
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Nickname,
		&i.Region,
		&i.Level,
		&i.Elo,
		&i.Kd,
		&i.HsPercentage,
		&i.WinRate,
		&i.PreferredRole,
		&i.Aggressiveness,
		&i.Experience,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listPlayers = `SELECT ` + playerColumns + `
FROM players
ORDER BY elo DESC, nickname ASC`

func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Player
	for rows.Next() {
		i, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPlayer = `SELECT ` + playerColumns + `
FROM players
WHERE id = ?
LIMIT 1`

func (q *Queries) GetPlayer(ctx context.Context, id int64) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, id)
	return scanPlayer(row)
}

const getPlayerByNickname = `SELECT ` + playerColumns + `
FROM players
WHERE nickname = ?
LIMIT 1`

func (q *Queries) GetPlayerByNickname(ctx context.Context, nickname string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayerByNickname, nickname)
	return scanPlayer(row)
}

const createPlayer = `INSERT INTO players (
    nickname, region, level, elo, kd, hs_percentage, win_rate,
    preferred_role, aggressiveness, experience, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type CreatePlayerParams struct {
	Nickname       string
	Region         string
	Level          int64
	Elo            int64
	Kd             float64
	HsPercentage   int64
	WinRate        int64
	PreferredRole  string
	Aggressiveness int64
	Experience     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createPlayer,
		arg.Nickname,
		arg.Region,
		arg.Level,
		arg.Elo,
		arg.Kd,
		arg.HsPercentage,
		arg.WinRate,
		arg.PreferredRole,
		arg.Aggressiveness,
		arg.Experience,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
