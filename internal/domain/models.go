package domain

import (
	"time"
)

type Role string

const (
	RoleNone    Role = "" // unassigned
	RoleIGL     Role = "IGL"
	RoleEntry   Role = "Entry"
	RoleSupport Role = "Support"
	RoleAWP     Role = "AWP"
	RoleLurker  Role = "Lurker"
)

// Roles is the fixed role set in display order.
var Roles = []Role{RoleIGL, RoleEntry, RoleSupport, RoleAWP, RoleLurker}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Region string

const (
	RegionEU   Region = "EU"
	RegionNA   Region = "NA"
	RegionSA   Region = "SA"
	RegionASIA Region = "ASIA"
	RegionOCE  Region = "OCE"
)

var Regions = []Region{RegionEU, RegionNA, RegionSA, RegionASIA, RegionOCE}

type Experience string

const (
	ExperienceOnline  Experience = "Online"
	ExperienceLAN     Experience = "LAN"
	ExperiencePro     Experience = "Pro"
	ExperienceVeteran Experience = "Veteran"
)

// MinTopLevelRating is the lowest rating a level 10 player may have.
const MinTopLevelRating = 2000

type Player struct {
	ID                 int64
	Nickname           string
	Region             Region
	Level              int
	Rating             int
	KD                 float64
	HeadshotPercentage int
	WinRate            int
	PreferredRole      Role
	Aggressiveness     int
	Experience         Experience
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Stats is the part of a player record that a roster snapshots at selection time.
type Stats struct {
	Rating             int
	KD                 float64
	HeadshotPercentage int
	WinRate            int
}

func (p Player) Stats() Stats {
	return Stats{
		Rating:             p.Rating,
		KD:                 p.KD,
		HeadshotPercentage: p.HeadshotPercentage,
		WinRate:            p.WinRate,
	}
}

type TeamMember struct {
	ID       string // nanoid
	TeamID   string
	Nickname string
	Role     Role
	Stats    Stats
}

type TeamRecord struct {
	ID           string // nanoid
	Name         string
	SynergyScore int
	Members      []TeamMember
	CreatedAt    time.Time
}
