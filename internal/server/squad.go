package server

import (
	"context"
	"errors"
	"net/http"

	"squad-builder/internal/domain"
	"squad-builder/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const SquadBuilderPath = "/squad.v1.SquadBuilder/"

const (
	ListPlayersProcedure  = SquadBuilderPath + "ListPlayers"
	CreatePlayerProcedure = SquadBuilderPath + "CreatePlayer"
	ListTeamsProcedure    = SquadBuilderPath + "ListTeams"
	CreateTeamProcedure   = SquadBuilderPath + "CreateTeam"
	StartSessionProcedure = SquadBuilderPath + "StartSession"
	GetSessionProcedure   = SquadBuilderPath + "GetSession"
	SelectPlayerProcedure = SquadBuilderPath + "SelectPlayer"
	AssignRoleProcedure   = SquadBuilderPath + "AssignRole"
	RemoveMemberProcedure = SquadBuilderPath + "RemoveMember"
	ResetSessionProcedure = SquadBuilderPath + "ResetSession"
	SaveTeamProcedure     = SquadBuilderPath + "SaveTeam"
	GetDashboardProcedure = SquadBuilderPath + "GetDashboard"
)

type SquadServer struct {
	playerSvc    *service.PlayerService
	teamSvc      *service.TeamService
	builderSvc   *service.BuilderService
	dashboardSvc *service.DashboardService
}

func NewSquadServer(
	playerSvc *service.PlayerService,
	teamSvc *service.TeamService,
	builderSvc *service.BuilderService,
	dashboardSvc *service.DashboardService,
) *SquadServer {
	return &SquadServer{
		playerSvc:    playerSvc,
		teamSvc:      teamSvc,
		builderSvc:   builderSvc,
		dashboardSvc: dashboardSvc,
	}
}

// NewHandler mounts every SquadBuilder procedure and returns the path prefix
// to register the handler under.
func NewHandler(s *SquadServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ListPlayersProcedure, connect.NewUnaryHandler(ListPlayersProcedure, s.ListPlayers, opts...))
	mux.Handle(CreatePlayerProcedure, connect.NewUnaryHandler(CreatePlayerProcedure, s.CreatePlayer, opts...))
	mux.Handle(ListTeamsProcedure, connect.NewUnaryHandler(ListTeamsProcedure, s.ListTeams, opts...))
	mux.Handle(CreateTeamProcedure, connect.NewUnaryHandler(CreateTeamProcedure, s.CreateTeam, opts...))
	mux.Handle(StartSessionProcedure, connect.NewUnaryHandler(StartSessionProcedure, s.StartSession, opts...))
	mux.Handle(GetSessionProcedure, connect.NewUnaryHandler(GetSessionProcedure, s.GetSession, opts...))
	mux.Handle(SelectPlayerProcedure, connect.NewUnaryHandler(SelectPlayerProcedure, s.SelectPlayer, opts...))
	mux.Handle(AssignRoleProcedure, connect.NewUnaryHandler(AssignRoleProcedure, s.AssignRole, opts...))
	mux.Handle(RemoveMemberProcedure, connect.NewUnaryHandler(RemoveMemberProcedure, s.RemoveMember, opts...))
	mux.Handle(ResetSessionProcedure, connect.NewUnaryHandler(ResetSessionProcedure, s.ResetSession, opts...))
	mux.Handle(SaveTeamProcedure, connect.NewUnaryHandler(SaveTeamProcedure, s.SaveTeam, opts...))
	mux.Handle(GetDashboardProcedure, connect.NewUnaryHandler(GetDashboardProcedure, s.GetDashboard, opts...))
	return SquadBuilderPath, mux
}

func (s *SquadServer) ListPlayers(ctx context.Context, _ *connect.Request[ListPlayersRequest]) (*connect.Response[ListPlayersResponse], error) {
	profiles, err := s.playerSvc.ListPlayers(ctx)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	players := make([]Player, len(profiles))
	for i, p := range profiles {
		players[i] = toPlayer(p.Player)
	}
	return connect.NewResponse(&ListPlayersResponse{Players: players}), nil
}

func (s *SquadServer) CreatePlayer(ctx context.Context, req *connect.Request[CreatePlayerRequest]) (*connect.Response[CreatePlayerResponse], error) {
	m := req.Msg
	player, err := s.playerSvc.CreatePlayer(ctx, service.PlayerInput{
		Nickname:           m.Nickname,
		Region:             domain.Region(m.Region),
		Level:              m.Level,
		Rating:             m.Rating,
		KD:                 m.KD,
		HeadshotPercentage: m.HeadshotPercentage,
		WinRate:            m.WinRate,
		PreferredRole:      domain.Role(m.PreferredRole),
		Aggressiveness:     m.Aggressiveness,
		Experience:         domain.Experience(m.Experience),
	}, m.CaptchaToken)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&CreatePlayerResponse{Player: toPlayer(*player)}), nil
}

func (s *SquadServer) ListTeams(ctx context.Context, _ *connect.Request[ListTeamsRequest]) (*connect.Response[ListTeamsResponse], error) {
	records, err := s.teamSvc.ListTeams(ctx)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	teams := make([]Team, len(records))
	for i, t := range records {
		teams[i] = toTeam(t)
	}
	return connect.NewResponse(&ListTeamsResponse{Teams: teams}), nil
}

func (s *SquadServer) CreateTeam(ctx context.Context, req *connect.Request[CreateTeamRequest]) (*connect.Response[TeamResponse], error) {
	members := make([]domain.TeamMember, len(req.Msg.Members))
	for i, m := range req.Msg.Members {
		members[i] = domain.TeamMember{
			Nickname: m.Nickname,
			Role:     roleFrom(m.Role),
			Stats:    fromStats(m.Stats),
		}
	}

	team, err := s.teamSvc.CreateTeam(ctx, req.Msg.Name, members)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&TeamResponse{Team: toTeam(*team)}), nil
}

func (s *SquadServer) StartSession(ctx context.Context, _ *connect.Request[StartSessionRequest]) (*connect.Response[BuilderState], error) {
	return builderResponse(ctx)(s.builderSvc.StartSession(ctx))
}

func (s *SquadServer) GetSession(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[BuilderState], error) {
	return builderResponse(ctx)(s.builderSvc.GetSession(ctx, req.Msg.SessionID))
}

func (s *SquadServer) SelectPlayer(ctx context.Context, req *connect.Request[SelectPlayerRequest]) (*connect.Response[BuilderState], error) {
	m := req.Msg
	return builderResponse(ctx)(s.builderSvc.SelectPlayer(ctx, m.SessionID, m.SlotID, m.Nickname))
}

func (s *SquadServer) AssignRole(ctx context.Context, req *connect.Request[AssignRoleRequest]) (*connect.Response[BuilderState], error) {
	m := req.Msg
	return builderResponse(ctx)(s.builderSvc.AssignRole(ctx, m.SessionID, m.SlotID, roleFrom(m.Role)))
}

func (s *SquadServer) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[BuilderState], error) {
	m := req.Msg
	return builderResponse(ctx)(s.builderSvc.RemoveMember(ctx, m.SessionID, m.SlotID))
}

func (s *SquadServer) ResetSession(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[BuilderState], error) {
	return builderResponse(ctx)(s.builderSvc.ResetSession(ctx, req.Msg.SessionID))
}

func (s *SquadServer) SaveTeam(ctx context.Context, req *connect.Request[SaveTeamRequest]) (*connect.Response[TeamResponse], error) {
	team, err := s.builderSvc.SaveTeam(ctx, req.Msg.SessionID, req.Msg.Name)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&TeamResponse{Team: toTeam(*team)}), nil
}

func (s *SquadServer) GetDashboard(ctx context.Context, _ *connect.Request[GetDashboardRequest]) (*connect.Response[DashboardResponse], error) {
	d := s.dashboardSvc.GetDashboard()

	resp := &DashboardResponse{
		Player:         toPlayer(d.Player),
		RatingHistory:  make([]RatingPoint, len(d.RatingHistory)),
		RecentMatches:  make([]MatchSummary, len(d.RecentMatches)),
		RoleEfficiency: make([]RoleEfficiency, len(d.RoleEfficiency)),
	}
	for i, p := range d.RatingHistory {
		resp.RatingHistory[i] = RatingPoint{Match: p.Match, Rating: p.Rating}
	}
	for i, m := range d.RecentMatches {
		resp.RecentMatches[i] = MatchSummary{
			ID:           m.ID,
			Map:          m.Map,
			Result:       m.Result,
			Score:        m.Score,
			KD:           m.KD,
			RatingChange: m.RatingChange,
		}
	}
	for i, r := range d.RoleEfficiency {
		resp.RoleEfficiency[i] = RoleEfficiency{Role: string(r.Role), Efficiency: r.Efficiency, Kills: r.Kills}
	}
	return connect.NewResponse(resp), nil
}

func builderResponse(ctx context.Context) func(*service.BuilderState, error) (*connect.Response[BuilderState], error) {
	return func(st *service.BuilderState, err error) (*connect.Response[BuilderState], error) {
		if err != nil {
			return nil, toConnectError(ctx, err)
		}
		return connect.NewResponse(toBuilderState(st)), nil
	}
}

func toConnectError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidSlot),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidTeamName),
		errors.Is(err, domain.ErrInsufficientMembers),
		errors.Is(err, domain.ErrCaptchaRequired),
		errors.Is(err, domain.ErrCaptchaInvalid):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, domain.ErrDuplicateNickname),
		errors.Is(err, domain.ErrDuplicatePlayer):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, domain.ErrRoleUnavailable),
		errors.Is(err, domain.ErrSlotEmpty):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}

	zerolog.Ctx(ctx).Error().Err(err).Msg("request failed")
	return connect.NewError(connect.CodeInternal, err)
}
