// Package db opens the application database and applies its migrations.
//
// Two drivers are supported: postgres (pgx pool bridged to database/sql) and
// sqlite (modernc.org/sqlite, pure Go). Both are exposed as *sql.DB so the
// storage layer is driver independent; DB.Dialect tells it which SQL flavor
// to generate.
//
// The error helpers classify driver errors without leaking driver types:
//
//	if target, ok := db.UniqueViolation(err); ok {
//		// target is "patrons_email_key" on postgres, "patrons.email" on sqlite
//	}
package db
