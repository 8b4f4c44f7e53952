package db

import (
	"database/sql"
	"time"
)

type Player struct {
	ID             int64
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

type Team struct {
	ID        string
	Name      string
	Synergy   int64
	CreatedAt time.Time
}

type TeamMember struct {
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
