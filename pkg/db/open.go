package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrymomot/library/pkg/search"
)

// DB is an open database handle together with the SQL dialect it speaks.
type DB struct {
	*sql.DB
	Dialect search.Dialect

	driver string
	pool   *pgxpool.Pool
}

// Driver returns the configured driver name.
func (d *DB) Driver() string { return d.driver }

// Close closes the database/sql handle and the underlying pgx pool, if any.
func (d *DB) Close() error {
	err := d.DB.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

// Open connects to the configured database.
//
// Postgres goes through a pgx pool with retry and is exposed via
// stdlib.OpenDBFromPool. SQLite uses the pure Go modernc driver with a single
// connection and foreign keys enabled.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.URL == "" {
		return nil, ErrEmptyConnectionString
	}
	switch cfg.Driver {
	case DriverPostgres:
		pool, err := connectPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &DB{DB: stdlib.OpenDBFromPool(pool), Dialect: search.Postgres, driver: DriverPostgres, pool: pool}, nil
	case DriverSQLite, "sqlite3":
		sqlDB, err := openSQLite(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return &DB{DB: sqlDB, Dialect: search.SQLite, driver: DriverSQLite}, nil
	default:
		return nil, errors.Join(ErrUnknownDriver, errors.New(cfg.Driver))
	}
}

func connectPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = cfg.MaxOpenConns
	}
	poolCfg.MinConns = cfg.MinConns
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		// Linear backoff: attempt n waits n*RetryInterval.
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
			case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
			}
		}
	}
	return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

func openSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	// In-memory databases live per connection.
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	return sqlDB, nil
}

// Healthcheck returns a readiness check pinging the database.
func Healthcheck(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
