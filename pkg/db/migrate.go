package db

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/library/pkg/logger"
	"github.com/dmitrymomot/library/pkg/search"
)

// Migrate applies every pending goose migration found at the root of fsys.
func Migrate(ctx context.Context, db *sql.DB, dialect search.Dialect, fsys fs.FS, log *slog.Logger) error {
	gooseDialect := goose.DialectSQLite3
	if dialect == search.Postgres {
		gooseDialect = goose.DialectPostgres
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		log.InfoContext(ctx, "migration applied",
			logger.Component("migrate"),
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			logger.Duration(r.Duration),
		)
	}
	if err != nil {
		log.ErrorContext(ctx, "migration failed", logger.Component("migrate"), logger.Error(err))
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}
