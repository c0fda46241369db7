package sqlstore

import (
	"embed"
	"io/fs"

	"github.com/dmitrymomot/library/pkg/search"
)

//go:embed migrations
var migrations embed.FS

// Migrations returns the goose migrations of the dialect, rooted at the
// migration files.
func Migrations(d search.Dialect) fs.FS {
	dir := "migrations/sqlite"
	if d == search.Postgres {
		dir = "migrations/postgres"
	}
	sub, err := fs.Sub(migrations, dir)
	if err != nil {
		// embedded paths are fixed at compile time
		panic(err)
	}
	return sub
}
