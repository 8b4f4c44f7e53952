package server

import (
	"time"

	"squad-builder/internal/domain"
	"squad-builder/internal/roster"
	"squad-builder/internal/scoring"
	"squad-builder/internal/service"
)

type Stats struct {
	Rating             int     `json:"rating"`
	KD                 float64 `json:"kd"`
	HeadshotPercentage int     `json:"hsPercentage"`
	WinRate            int     `json:"winRate"`
}

type Player struct {
	ID                 int64   `json:"id"`
	Nickname           string  `json:"nickname"`
	Region             string  `json:"region"`
	Level              int     `json:"level"`
	Rating             int     `json:"rating"`
	KD                 float64 `json:"kd"`
	HeadshotPercentage int     `json:"hsPercentage"`
	WinRate            int     `json:"winRate"`
	PreferredRole      string  `json:"preferredRole"`
	Aggressiveness     int     `json:"aggressiveness"`
	Experience         string  `json:"experience"`
	PerformanceScore   int     `json:"performanceScore"`
	CreatedAt          string  `json:"createdAt,omitempty"`
}

type TeamMember struct {
	ID       string  `json:"id,omitempty"`
	Nickname string  `json:"nickname"`
	Role     *string `json:"role"`
	Stats    Stats   `json:"stats"`
}

type Team struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Synergy   int          `json:"synergy"`
	Members   []TeamMember `json:"members"`
	CreatedAt string       `json:"createdAt"`
}

type RoleOption struct {
	Role       string `json:"role"`
	Selectable bool   `json:"selectable"`
	Current    bool   `json:"current"`
}

type Slot struct {
	SlotID      int          `json:"slotId"`
	Occupied    bool         `json:"occupied"`
	Nickname    string       `json:"nickname,omitempty"`
	Role        *string      `json:"role"`
	Stats       *Stats       `json:"stats,omitempty"`
	RoleOptions []RoleOption `json:"roleOptions,omitempty"`
}

type BuilderState struct {
	SessionID        string   `json:"sessionId"`
	Slots            []Slot   `json:"slots"`
	AvailablePlayers []Player `json:"availablePlayers"`
	Synergy          int      `json:"synergy"`
	AverageRating    int      `json:"averageRating"`
	ActiveCount      int      `json:"activeCount"`
	CanSave          bool     `json:"canSave"`
}

type ListPlayersRequest struct{}

type ListPlayersResponse struct {
	Players []Player `json:"players"`
}

type CreatePlayerRequest struct {
	Nickname           string  `json:"nickname"`
	Region             string  `json:"region"`
	Level              int     `json:"level"`
	Rating             int     `json:"rating"`
	KD                 float64 `json:"kd"`
	HeadshotPercentage int     `json:"hsPercentage"`
	WinRate            int     `json:"winRate"`
	PreferredRole      string  `json:"preferredRole"`
	Aggressiveness     int     `json:"aggressiveness"`
	Experience         string  `json:"experience"`
	CaptchaToken       string  `json:"captchaToken"`
}

type CreatePlayerResponse struct {
	Player Player `json:"player"`
}

type ListTeamsRequest struct{}

type ListTeamsResponse struct {
	Teams []Team `json:"teams"`
}

type CreateTeamRequest struct {
	Name    string       `json:"name"`
	Members []TeamMember `json:"members"`
}

type TeamResponse struct {
	Team Team `json:"team"`
}

type StartSessionRequest struct{}

type SessionRequest struct {
	SessionID string `json:"sessionId"`
}

type SelectPlayerRequest struct {
	SessionID string `json:"sessionId"`
	SlotID    int    `json:"slotId"`
	Nickname  string `json:"nickname"`
}

type AssignRoleRequest struct {
	SessionID string  `json:"sessionId"`
	SlotID    int     `json:"slotId"`
	Role      *string `json:"role"`
}

type RemoveMemberRequest struct {
	SessionID string `json:"sessionId"`
	SlotID    int    `json:"slotId"`
}

type SaveTeamRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

type GetDashboardRequest struct{}

type RatingPoint struct {
	Match  int `json:"match"`
	Rating int `json:"rating"`
}

type MatchSummary struct {
	ID           int     `json:"id"`
	Map          string  `json:"map"`
	Result       string  `json:"result"`
	Score        string  `json:"score"`
	KD           float64 `json:"kd"`
	RatingChange int     `json:"ratingChange"`
}

type RoleEfficiency struct {
	Role       string `json:"role"`
	Efficiency int    `json:"efficiency"`
	Kills      int    `json:"kills"`
}

type DashboardResponse struct {
	Player         Player           `json:"player"`
	RatingHistory  []RatingPoint    `json:"ratingHistory"`
	RecentMatches  []MatchSummary   `json:"recentMatches"`
	RoleEfficiency []RoleEfficiency `json:"roleEfficiency"`
}

func rolePtr(r domain.Role) *string {
	if r == domain.RoleNone {
		return nil
	}
	s := string(r)
	return &s
}

func roleFrom(s *string) domain.Role {
	if s == nil {
		return domain.RoleNone
	}
	return domain.Role(*s)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toStats(s domain.Stats) Stats {
	return Stats{
		Rating:             s.Rating,
		KD:                 s.KD,
		HeadshotPercentage: s.HeadshotPercentage,
		WinRate:            s.WinRate,
	}
}

func fromStats(s Stats) domain.Stats {
	return domain.Stats{
		Rating:             s.Rating,
		KD:                 s.KD,
		HeadshotPercentage: s.HeadshotPercentage,
		WinRate:            s.WinRate,
	}
}

func toPlayer(p domain.Player) Player {
	return Player{
		ID:                 p.ID,
		Nickname:           p.Nickname,
		Region:             string(p.Region),
		Level:              p.Level,
		Rating:             p.Rating,
		KD:                 p.KD,
		HeadshotPercentage: p.HeadshotPercentage,
		WinRate:            p.WinRate,
		PreferredRole:      string(p.PreferredRole),
		Aggressiveness:     p.Aggressiveness,
		Experience:         string(p.Experience),
		PerformanceScore:   scoring.PerformanceScore(p.Stats()),
		CreatedAt:          formatTime(p.CreatedAt),
	}
}

func toTeam(t domain.TeamRecord) Team {
	members := make([]TeamMember, len(t.Members))
	for i, m := range t.Members {
		members[i] = TeamMember{
			ID:       m.ID,
			Nickname: m.Nickname,
			Role:     rolePtr(m.Role),
			Stats:    toStats(m.Stats),
		}
	}
	return Team{
		ID:        t.ID,
		Name:      t.Name,
		Synergy:   t.SynergyScore,
		Members:   members,
		CreatedAt: formatTime(t.CreatedAt),
	}
}

func toRoleOptions(opts []roster.RoleOption) []RoleOption {
	out := make([]RoleOption, len(opts))
	for i, o := range opts {
		out[i] = RoleOption{Role: string(o.Role), Selectable: o.Selectable, Current: o.Current}
	}
	return out
}

func toBuilderState(st *service.BuilderState) *BuilderState {
	out := &BuilderState{
		SessionID:        st.SessionID,
		Slots:            make([]Slot, len(st.Slots)),
		AvailablePlayers: make([]Player, len(st.AvailablePlayers)),
		Synergy:          st.Summary.Synergy,
		AverageRating:    st.Summary.AverageRating,
		ActiveCount:      st.Summary.ActiveCount,
		CanSave:          st.CanSave,
	}
	for i, s := range st.Slots {
		slot := Slot{SlotID: s.ID, Occupied: s.Occupied}
		if s.Occupied {
			stats := toStats(s.Stats)
			slot.Nickname = s.Nickname
			slot.Role = rolePtr(s.Role)
			slot.Stats = &stats
			slot.RoleOptions = toRoleOptions(s.RoleOptions)
		}
		out.Slots[i] = slot
	}
	for i, p := range st.AvailablePlayers {
		out.AvailablePlayers[i] = toPlayer(p)
	}
	return out
}
