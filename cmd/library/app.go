package main

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/library/pkg/clientip"
	"github.com/dmitrymomot/library/pkg/db"
	"github.com/dmitrymomot/library/pkg/environment"
	"github.com/dmitrymomot/library/pkg/logger"
	"github.com/dmitrymomot/library/pkg/requestid"
	"github.com/dmitrymomot/library/svc/library"
	"github.com/dmitrymomot/library/svc/library/sqlstore"
)

// app holds the process wide dependencies of every command.
type app struct {
	cfg  settings
	log  *slog.Logger
	conn *db.DB
	svc  *library.Service
}

func newLogger(cfg appConfig) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	}
	if lvl, ok, _ := cfg.level(); ok {
		opts = append(opts, logger.WithLevel(lvl))
	}
	return logger.New(opts...)
}

// openApp loads the configuration and connects to the database. migrate
// applies pending migrations before the service is built.
func openApp(ctx context.Context, migrate bool) (*app, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg.App)
	logger.SetAsDefault(log)

	conn, err := db.Open(ctx, cfg.DB)
	if err != nil {
		log.ErrorContext(ctx, "database connection failed", logger.Error(err), logger.Component("db"))
		return nil, err
	}
	if migrate {
		if err := db.Migrate(ctx, conn.DB, conn.Dialect, sqlstore.Migrations(conn.Dialect), log); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return &app{
		cfg:  cfg,
		log:  log,
		conn: conn,
		svc:  library.NewService(sqlstore.New(conn.DB, conn.Dialect)),
	}, nil
}

func (a *app) Close() error {
	return a.conn.Close()
}
