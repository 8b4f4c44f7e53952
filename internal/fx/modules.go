package fx

import (
	"database/sql"

	"squad-builder/internal/api"
	"squad-builder/internal/config"
	"squad-builder/internal/database"
	"squad-builder/internal/db"
	"squad-builder/internal/logger"
	"squad-builder/internal/repository"
	"squad-builder/internal/server"
	"squad-builder/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(
		fx.Annotate(repository.NewPlayerRepository, fx.As(new(service.PlayerStore))),
		fx.Annotate(repository.NewTeamRepository, fx.As(new(service.TeamStore))),
	),
	// api client
	fx.Provide(fx.Annotate(api.NewRecaptchaClient, fx.As(new(service.CaptchaVerifier)))),
	// svc
	fx.Provide(service.NewValidator),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewTeamService),
	fx.Provide(service.NewBuilderService),
	fx.Provide(service.NewDashboardService),
	// server
	fx.Provide(server.NewSquadServer),
)
