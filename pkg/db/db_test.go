package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/library/pkg/db"
	"github.com/dmitrymomot/library/pkg/logger"
	"github.com/dmitrymomot/library/pkg/search"
)

var migrations = fstest.MapFS{
	"00001_people.sql": &fstest.MapFile{Data: []byte(`-- +goose Up
CREATE TABLE people (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE
);
CREATE TABLE notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	person_id INTEGER NOT NULL REFERENCES people(id)
);

-- +goose Down
DROP TABLE notes;
DROP TABLE people;
`)},
}

func openMemory(t *testing.T) *db.DB {
	t.Helper()
	conn, err := db.Open(context.Background(), db.Config{Driver: db.DriverSQLite, URL: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn.DB, conn.Dialect, migrations, logger.Discard()))
	return conn
}

func TestOpenSQLite(t *testing.T) {
	t.Parallel()

	conn := openMemory(t)
	assert.Equal(t, search.SQLite, conn.Dialect)
	assert.Equal(t, db.DriverSQLite, conn.Driver())
	require.NoError(t, db.Healthcheck(conn.DB)(context.Background()))

	t.Run("migrations are idempotent", func(t *testing.T) {
		require.NoError(t, db.Migrate(context.Background(), conn.DB, conn.Dialect, migrations, logger.Discard()))
	})
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	_, err := db.Open(context.Background(), db.Config{Driver: db.DriverSQLite})
	assert.ErrorIs(t, err, db.ErrEmptyConnectionString)

	_, err = db.Open(context.Background(), db.Config{Driver: "oracle", URL: "x"})
	assert.ErrorIs(t, err, db.ErrUnknownDriver)

	_, err = db.Open(context.Background(), db.Config{Driver: db.DriverPostgres, URL: "postgres://user@localhost:notaport/library"})
	assert.ErrorIs(t, err, db.ErrFailedToParseDBConfig)
}

func TestSQLiteConstraintErrors(t *testing.T) {
	t.Parallel()

	conn := openMemory(t)
	ctx := context.Background()

	_, err := conn.ExecContext(ctx, `INSERT INTO people (email) VALUES (?1)`, "a@example.com")
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `INSERT INTO people (email) VALUES (?1)`, "a@example.com")
	require.Error(t, err)
	target, ok := db.UniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "people.email", target)
	assert.True(t, db.IsDuplicateKeyError(fmt.Errorf("create: %w", err)))
	assert.False(t, db.IsForeignKeyViolationError(err))

	_, err = conn.ExecContext(ctx, `INSERT INTO notes (person_id) VALUES (?1)`, 42)
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolationError(err))
	assert.False(t, db.IsDuplicateKeyError(err))

	var id int
	err = conn.QueryRowContext(ctx, `SELECT id FROM people WHERE email = ?1`, "missing").Scan(&id)
	assert.True(t, db.IsNotFoundError(err))
}

func TestPostgresErrors(t *testing.T) {
	t.Parallel()

	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "patrons_library_id_key"})
	target, ok := db.UniqueViolation(unique)
	assert.True(t, ok)
	assert.Equal(t, "patrons_library_id_key", target)

	fk := &pgconn.PgError{Code: "23503"}
	assert.True(t, db.IsForeignKeyViolationError(fk))
	assert.False(t, db.IsDuplicateKeyError(fk))

	assert.True(t, db.IsNotFoundError(pgx.ErrNoRows))
	assert.True(t, db.IsNotFoundError(sql.ErrNoRows))
	assert.False(t, db.IsNotFoundError(nil))
	assert.False(t, db.IsDuplicateKeyError(errors.New("boom")))
}
