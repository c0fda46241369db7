// Package sqlstore persists the library in Postgres or SQLite through
// database/sql.
//
// Listings are flat SELECTs over the joined tables with the free text filter
// of pkg/search, so LIMIT and OFFSET count filtered rows. Driver errors are
// translated into *apperror.Error values: missing rows become not-found
// failures and unique violations on the patron library id or email become
// uniqueness failures carrying the field label.
//
// Migrations returns the embedded goose migrations of a dialect:
//
//	if err := db.Migrate(ctx, conn.DB, conn.Dialect, sqlstore.Migrations(conn.Dialect), log); err != nil {
//		return err
//	}
//	store := sqlstore.New(conn.DB, conn.Dialect)
package sqlstore
