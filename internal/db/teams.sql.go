package db

import (
	"context"
	"database/sql"
	"time"
)

const listTeams = `SELECT id, name, synergy, created_at
FROM teams
ORDER BY created_at DESC, id ASC`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(&i.ID, &i.Name, &i.Synergy, &i.CreatedAt); err != nil {
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

const createTeam = `INSERT INTO teams (id, name, synergy, created_at)
VALUES (?, ?, ?, ?)`

type CreateTeamParams struct {
	ID        string
	Name      string
	Synergy   int64
	CreatedAt time.Time
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) error {
	_, err := q.db.ExecContext(ctx, createTeam, arg.ID, arg.Name, arg.Synergy, arg.CreatedAt)
	return err
}

const teamMemberColumns = `id, team_id, position, nickname, role, elo, kd, hs_percentage, win_rate`

func scanTeamMembers(rows *sql.Rows) ([]TeamMember, error) {
	defer rows.Close()
	var items []TeamMember
	for rows.Next() {
		var i TeamMember
		if err := rows.Scan(
			&i.ID,
			&i.TeamID,
			&i.Position,
			&i.Nickname,
			&i.Role,
			&i.Elo,
			&i.Kd,
			&i.HsPercentage,
			&i.WinRate,
		); err != nil {
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

const listTeamMembers = `SELECT ` + teamMemberColumns + `
FROM team_members
WHERE team_id = ?
ORDER BY position ASC`

func (q *Queries) ListTeamMembers(ctx context.Context, teamID string) ([]TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, listTeamMembers, teamID)
	if err != nil {
		return nil, err
	}
	return scanTeamMembers(rows)
}

const listAllTeamMembers = `SELECT ` + teamMemberColumns + `
FROM team_members
ORDER BY team_id ASC, position ASC`

func (q *Queries) ListAllTeamMembers(ctx context.Context) ([]TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, listAllTeamMembers)
	if err != nil {
		return nil, err
	}
	return scanTeamMembers(rows)
}

const createTeamMember = `INSERT INTO team_members (
    id, team_id, position, nickname, role, elo, kd, hs_percentage, win_rate
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

type CreateTeamMemberParams struct {
	ID           string
	TeamID       string
	Position     int64
	Nickname     string
	Role         sql.NullString
	Elo          int64
	Kd           float64
	HsPercentage int64
	WinRate      int64
}

func (q *Queries) CreateTeamMember(ctx context.Context, arg CreateTeamMemberParams) error {
	_, err := q.db.ExecContext(ctx, createTeamMember,
		arg.ID,
		arg.TeamID,
		arg.Position,
		arg.Nickname,
		arg.Role,
		arg.Elo,
		arg.Kd,
		arg.HsPercentage,
		arg.WinRate,
	)
	return err
}
