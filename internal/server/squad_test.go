package server

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"squad-builder/internal/config"
	"squad-builder/internal/database"
	"squad-builder/internal/db"
	"squad-builder/internal/domain"
	"squad-builder/internal/middleware"
	"squad-builder/internal/repository"
	"squad-builder/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type captchaFunc func(ctx context.Context, token string) error

func (f captchaFunc) Verify(ctx context.Context, token string) error { return f(ctx, token) }

type SquadServerTestSuite struct {
	suite.Suite
	ctx   context.Context
	sqlDB *sql.DB
	srv   *httptest.Server
}

func TestSquadServerTestSuite(t *testing.T) {
	suite.Run(t, new(SquadServerTestSuite))
}

func (s *SquadServerTestSuite) SetupTest() {
	cfg := &config.Config{
		DBPath:     filepath.Join(s.T().TempDir(), "squad.db"),
		SessionTTL: time.Minute,
	}
	logger := zerolog.Nop()

	sqlDB, err := database.New(cfg, logger)
	s.Require().NoError(err)
	s.sqlDB = sqlDB

	queries := db.New(sqlDB)
	players := repository.NewPlayerRepository(sqlDB, queries, logger)
	teams := repository.NewTeamRepository(sqlDB, queries, logger)
	captcha := captchaFunc(func(_ context.Context, token string) error {
		if token != "ok" {
			return domain.ErrCaptchaInvalid
		}
		return nil
	})

	squad := NewSquadServer(
		service.NewPlayerService(players, captcha, service.NewValidator(), logger),
		service.NewTeamService(teams, logger),
		service.NewBuilderService(players, teams, cfg, logger),
		service.NewDashboardService(),
	)

	mux := http.NewServeMux()
	path, handler := NewHandler(squad)
	mux.Handle(path, middleware.RequestID(logger)(handler))

	s.ctx = context.Background()
	s.srv = httptest.NewServer(mux)
}

func (s *SquadServerTestSuite) TearDownTest() {
	s.srv.Close()
	s.NoError(s.sqlDB.Close())
}

func call[Req, Res any](s *SquadServerTestSuite, procedure string, msg *Req) (*connect.Response[Res], error) {
	client := connect.NewClient[Req, Res](s.srv.Client(), s.srv.URL+procedure, connect.WithCodec(jsonCodec{}))
	return client.CallUnary(s.ctx, connect.NewRequest(msg))
}

func (s *SquadServerTestSuite) TestListPlayers() {
	res, err := call[ListPlayersRequest, ListPlayersResponse](s, ListPlayersProcedure, &ListPlayersRequest{})
	s.Require().NoError(err)
	s.Require().Len(res.Msg.Players, 6)
	s.Equal("m0NESY", res.Msg.Players[0].Nickname)
	s.NotEmpty(res.Header().Get("X-Request-ID"))

	for _, p := range res.Msg.Players {
		if p.Nickname == "ZywOo" {
			s.Equal(79, p.PerformanceScore)
		}
	}
}

func (s *SquadServerTestSuite) TestCreatePlayer() {
	req := &CreatePlayerRequest{
		Nickname:           "s1mple",
		Region:             "EU",
		Level:              10,
		Rating:             3400,
		KD:                 1.3,
		HeadshotPercentage: 40,
		WinRate:            60,
		PreferredRole:      "AWP",
		Aggressiveness:     70,
		Experience:         "Veteran",
		CaptchaToken:       "ok",
	}

	res, err := call[CreatePlayerRequest, CreatePlayerResponse](s, CreatePlayerProcedure, req)
	s.Require().NoError(err)
	s.NotZero(res.Msg.Player.ID)
	s.NotEmpty(res.Msg.Player.CreatedAt)

	_, err = call[CreatePlayerRequest, CreatePlayerResponse](s, CreatePlayerProcedure, req)
	s.Equal(connect.CodeAlreadyExists, connect.CodeOf(err))

	req.Nickname = "newcomer"
	req.CaptchaToken = "bad"
	_, err = call[CreatePlayerRequest, CreatePlayerResponse](s, CreatePlayerProcedure, req)
	s.Equal(connect.CodeInvalidArgument, connect.CodeOf(err))

	req.CaptchaToken = "ok"
	req.Rating = 1500
	_, err = call[CreatePlayerRequest, CreatePlayerResponse](s, CreatePlayerProcedure, req)
	s.Equal(connect.CodeInvalidArgument, connect.CodeOf(err))
	s.Contains(err.Error(), "level 10")
}

func (s *SquadServerTestSuite) TestBuilderFlow() {
	start, err := call[StartSessionRequest, BuilderState](s, StartSessionProcedure, &StartSessionRequest{})
	s.Require().NoError(err)
	id := start.Msg.SessionID
	s.Require().NotEmpty(id)
	s.Len(start.Msg.Slots, 5)
	s.Len(start.Msg.AvailablePlayers, 6)

	st, err := call[SelectPlayerRequest, BuilderState](s, SelectPlayerProcedure, &SelectPlayerRequest{SessionID: id, SlotID: 0, Nickname: "ZywOo"})
	s.Require().NoError(err)
	s.Require().NotNil(st.Msg.Slots[0].Role)
	s.Equal("AWP", *st.Msg.Slots[0].Role)

	st, err = call[SelectPlayerRequest, BuilderState](s, SelectPlayerProcedure, &SelectPlayerRequest{SessionID: id, SlotID: 1, Nickname: "m0NESY"})
	s.Require().NoError(err)
	s.Nil(st.Msg.Slots[1].Role)
	s.True(st.Msg.CanSave)
	s.Equal(40, st.Msg.Synergy)
	s.Equal(3250, st.Msg.AverageRating)

	_, err = call[SelectPlayerRequest, BuilderState](s, SelectPlayerProcedure, &SelectPlayerRequest{SessionID: id, SlotID: 2, Nickname: "ZywOo"})
	s.Equal(connect.CodeAlreadyExists, connect.CodeOf(err))

	awp := "AWP"
	_, err = call[AssignRoleRequest, BuilderState](s, AssignRoleProcedure, &AssignRoleRequest{SessionID: id, SlotID: 1, Role: &awp})
	s.Equal(connect.CodeFailedPrecondition, connect.CodeOf(err))

	_, err = call[SelectPlayerRequest, BuilderState](s, SelectPlayerProcedure, &SelectPlayerRequest{SessionID: id, SlotID: 7, Nickname: "NiKo"})
	s.Equal(connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = call[SaveTeamRequest, TeamResponse](s, SaveTeamProcedure, &SaveTeamRequest{SessionID: id, Name: " "})
	s.Equal(connect.CodeInvalidArgument, connect.CodeOf(err))

	saved, err := call[SaveTeamRequest, TeamResponse](s, SaveTeamProcedure, &SaveTeamRequest{SessionID: id, Name: "Dream Squad"})
	s.Require().NoError(err)
	s.Equal(40, saved.Msg.Team.Synergy)
	s.Len(saved.Msg.Team.Members, 2)

	teams, err := call[ListTeamsRequest, ListTeamsResponse](s, ListTeamsProcedure, &ListTeamsRequest{})
	s.Require().NoError(err)
	s.Require().Len(teams.Msg.Teams, 1)
	s.Equal("Dream Squad", teams.Msg.Teams[0].Name)

	st, err = call[RemoveMemberRequest, BuilderState](s, RemoveMemberProcedure, &RemoveMemberRequest{SessionID: id, SlotID: 0})
	s.Require().NoError(err)
	s.False(st.Msg.Slots[0].Occupied)

	st, err = call[SessionRequest, BuilderState](s, ResetSessionProcedure, &SessionRequest{SessionID: id})
	s.Require().NoError(err)
	s.Zero(st.Msg.ActiveCount)
}

func (s *SquadServerTestSuite) TestUnknownSession() {
	_, err := call[SessionRequest, BuilderState](s, GetSessionProcedure, &SessionRequest{SessionID: "missing"})
	s.Equal(connect.CodeNotFound, connect.CodeOf(err))
}

func (s *SquadServerTestSuite) TestCreateTeam() {
	igl := "IGL"
	res, err := call[CreateTeamRequest, TeamResponse](s, CreateTeamProcedure, &CreateTeamRequest{
		Name: "Mix",
		Members: []TeamMember{
			{Nickname: "karrigan", Role: &igl, Stats: Stats{Rating: 2500, KD: 0.95, HeadshotPercentage: 40, WinRate: 60}},
			{Nickname: "ropz", Stats: Stats{Rating: 2900, KD: 1.15, HeadshotPercentage: 50, WinRate: 59}},
		},
	})
	s.Require().NoError(err)
	s.Equal(40, res.Msg.Team.Synergy)
	s.Equal("IGL", *res.Msg.Team.Members[0].Role)
	s.Nil(res.Msg.Team.Members[1].Role)

	_, err = call[CreateTeamRequest, TeamResponse](s, CreateTeamProcedure, &CreateTeamRequest{
		Name:    "Clones",
		Members: []TeamMember{{Nickname: "ropz"}, {Nickname: "ropz"}},
	})
	s.Equal(connect.CodeAlreadyExists, connect.CodeOf(err))
}

func (s *SquadServerTestSuite) TestGetDashboard() {
	res, err := call[GetDashboardRequest, DashboardResponse](s, GetDashboardProcedure, &GetDashboardRequest{})
	s.Require().NoError(err)
	s.Equal("Antii", res.Msg.Player.Nickname)
	s.Equal(77, res.Msg.Player.PerformanceScore)
	s.Len(res.Msg.RoleEfficiency, len(domain.Roles))
}
