// Package search builds free-text search filters for SQL listings.
//
// A Schema lists the columns a single search token is matched against.
// Build ORs a case-insensitive "contains" predicate per column; numeric
// columns match through their text form, date columns through their
// calendar date (YYYY-MM-DD) so time of day never matters, and Concat
// columns match several text columns joined with a space as one unit.
//
//	loans := search.Schema{
//		Table: "loans",
//		Joins: []search.Join{{Table: "books", On: "books.id = loans.book_id"}},
//		Columns: []search.Column{
//			search.Text("books.title"),
//			search.Date("loans.loaned_on"),
//		},
//	}
//	f := search.Build(search.Postgres, loans, "2024-01", 1)
//	query := "SELECT loans.id " + loans.From() + " WHERE " + f.SQL + " LIMIT 10"
//
// An empty token never matches anything.
package search
