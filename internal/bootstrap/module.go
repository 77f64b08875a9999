package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"zvitbot/internal/bootstrap/config"
	"zvitbot/internal/bootstrap/database"
	"zvitbot/internal/bootstrap/logging"
	"zvitbot/internal/discord"
	"zvitbot/internal/httpapi"
	counterinfra "zvitbot/internal/infrastructure/counter"
	sqliterepo "zvitbot/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "zvitbot/internal/infrastructure/persistence/sqlite/uow"
	"zvitbot/internal/ports"
	"zvitbot/internal/render"
	"zvitbot/internal/usecase/diplomas"
	"zvitbot/internal/usecase/reports"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewReportRepository,
			fx.As(new(ports.ReportRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			provideCounter,
			fx.As(new(ports.SequenceCounter)),
		),
	),
	fx.Provide(provideRenderer),
	fx.Provide(reports.NewService),
	fx.Provide(diplomas.NewService),
	fx.Provide(provideBot),
	fx.Provide(provideOpsServer),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func provideCounter(cfg config.Config) *counterinfra.FileCounter {
	return counterinfra.NewFileCounter(cfg.Counter.File)
}

func provideRenderer(cfg config.Config) *render.Renderer {
	return render.New(cfg.Assets.Dir, cfg.Assets.FontFile)
}

func provideBot(cfg config.Config, reportSvc *reports.Service, diplomaSvc *diplomas.Service) (*discord.Bot, error) {
	return discord.NewBot(cfg, reportSvc, diplomaSvc)
}

func provideOpsServer(lc fx.Lifecycle, cfg config.Config, repo ports.ReportRepository) *httpapi.Server {
	server := httpapi.NewServer(cfg.Ops.ListenAddr, repo)

	lc.Append(fx.Hook{
		OnStart: server.Start,
		OnStop:  server.Shutdown,
	})

	return server
}
