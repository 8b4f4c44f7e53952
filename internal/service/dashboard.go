package service

import (
	"squad-builder/internal/domain"
	"squad-builder/internal/scoring"
)

type RatingPoint struct {
	Match  int
	Rating int
}

type MatchSummary struct {
	ID           int
	Map          string
	Result       string
	Score        string
	KD           float64
	RatingChange int
}

type RoleEfficiency struct {
	Role       domain.Role
	Efficiency int
	Kills      int
}

// Dashboard is the showcase profile page. Its data is fixed display data,
// not derived from stored matches.
type Dashboard struct {
	Player           domain.Player
	PerformanceScore int
	RatingHistory    []RatingPoint
	RecentMatches    []MatchSummary
	RoleEfficiency   []RoleEfficiency
}

var showcasePlayer = domain.Player{
	Nickname:           "Antii",
	Region:             domain.RegionEU,
	Level:              10,
	Rating:             2843,
	KD:                 1.42,
	HeadshotPercentage: 58,
	WinRate:            62,
	PreferredRole:      domain.RoleAWP,
	Aggressiveness:     65,
	Experience:         domain.ExperienceOnline,
}

type DashboardService struct{}

func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

func (s *DashboardService) GetDashboard() Dashboard {
	return Dashboard{
		Player:           showcasePlayer,
		PerformanceScore: scoring.PerformanceScore(showcasePlayer.Stats()),
		RatingHistory: []RatingPoint{
			{Match: 1, Rating: 2400},
			{Match: 2, Rating: 2425},
			{Match: 3, Rating: 2410},
			{Match: 4, Rating: 2435},
			{Match: 5, Rating: 2480},
		},
		RecentMatches: []MatchSummary{
			{ID: 1, Map: "Mirage", Result: "WIN", Score: "13-5", KD: 1.8, RatingChange: 25},
			{ID: 2, Map: "Ancient", Result: "LOSS", Score: "11-13", KD: 0.9, RatingChange: -24},
			{ID: 3, Map: "Anubis", Result: "WIN", Score: "13-9", KD: 1.2, RatingChange: 25},
			{ID: 4, Map: "Nuke", Result: "WIN", Score: "13-2", KD: 2.1, RatingChange: 26},
			{ID: 5, Map: "Vertigo", Result: "LOSS", Score: "5-13", KD: 0.8, RatingChange: -26},
		},
		RoleEfficiency: []RoleEfficiency{
			{Role: domain.RoleAWP, Efficiency: 92, Kills: 1420},
			{Role: domain.RoleEntry, Efficiency: 65, Kills: 400},
			{Role: domain.RoleLurker, Efficiency: 78, Kills: 600},
			{Role: domain.RoleSupport, Efficiency: 50, Kills: 200},
			{Role: domain.RoleIGL, Efficiency: 40, Kills: 100},
		},
	}
}
