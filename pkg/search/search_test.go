package search_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/library/pkg/search"
)

var books = search.Schema{
	Table: "books",
	Columns: []search.Column{
		search.Text("books.title"),
		search.Text("books.author"),
		search.Number("books.first_published"),
	},
}

var loans = search.Schema{
	Table: "loans",
	Joins: []search.Join{
		{Table: "books", On: "books.id = loans.book_id"},
		{Table: "patrons", On: "patrons.id = loans.patron_id"},
	},
	Columns: []search.Column{
		search.Text("books.title"),
		search.Text("patrons.first_name"),
		search.Text("patrons.last_name"),
		search.Concat("patrons.first_name", "patrons.last_name"),
		search.Date("loans.loaned_on"),
	},
}

func TestBuild_SQL(t *testing.T) {
	t.Parallel()

	t.Run("postgres", func(t *testing.T) {
		f := search.Build(search.Postgres, books, "Tolkien", 1)
		assert.Equal(t, `(books.title ILIKE $1 ESCAPE '\' OR books.author ILIKE $1 ESCAPE '\' OR CAST(books.first_published AS TEXT) ILIKE $1 ESCAPE '\')`, f.SQL)
		assert.Equal(t, []any{"%Tolkien%"}, f.Args)
	})

	t.Run("sqlite placeholder ordinal", func(t *testing.T) {
		f := search.Build(search.SQLite, books, "x", 3)
		assert.Contains(t, f.SQL, "books.title LIKE ?3 ESCAPE")
		assert.NotContains(t, f.SQL, "ILIKE")
	})

	t.Run("joined columns and dates", func(t *testing.T) {
		f := search.Build(search.Postgres, loans, "2024", 1)
		assert.Contains(t, f.SQL, "(patrons.first_name || ' ' || patrons.last_name) ILIKE $1")
		assert.Contains(t, f.SQL, "to_char(loans.loaned_on, 'YYYY-MM-DD') ILIKE $1")

		f = search.Build(search.SQLite, loans, "2024", 1)
		assert.Contains(t, f.SQL, "substr(loans.loaned_on, 1, 10) LIKE ?1")
	})

	t.Run("empty token matches nothing", func(t *testing.T) {
		f := search.Build(search.Postgres, books, "", 1)
		assert.Equal(t, "(1 = 0)", f.SQL)
		assert.Empty(t, f.Args)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		assert.Equal(t, `%50\%\_off\\%`, search.Contains(`50%_off\`))
	})
}

func TestSchema_From(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "FROM books", books.From())
	assert.Equal(t, "FROM loans JOIN books ON books.id = loans.book_id JOIN patrons ON patrons.id = loans.patron_id", loans.From())
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE books (id INTEGER PRIMARY KEY, title TEXT NOT NULL, author TEXT NOT NULL, first_published INTEGER)`,
		`CREATE TABLE patrons (id INTEGER PRIMARY KEY, first_name TEXT NOT NULL, last_name TEXT NOT NULL)`,
		`CREATE TABLE loans (id INTEGER PRIMARY KEY, book_id INTEGER NOT NULL, patron_id INTEGER NOT NULL, loaned_on TEXT NOT NULL)`,
		`INSERT INTO books (id, title, author, first_published) VALUES
			(1, 'The Hobbit', 'J.R.R. Tolkien', 1937),
			(2, 'The Silmarillion', 'J.R.R. Tolkien', 1977),
			(3, 'Dune', 'Frank Herbert', 1965),
			(4, 'Emma', 'Jane Austen', 1815),
			(5, '100% Pure', 'Anon', NULL)`,
		`INSERT INTO patrons (id, first_name, last_name) VALUES
			(1, 'Ada', 'Lovelace'),
			(2, 'Alan', 'Turing')`,
		`INSERT INTO loans (id, book_id, patron_id, loaned_on) VALUES
			(1, 1, 1, '2024-01-05 08:15:00'),
			(2, 2, 2, '2024-01-05 23:59:59'),
			(3, 3, 1, '2024-01-05 00:00:00'),
			(4, 4, 2, '2024-01-06 00:00:00'),
			(5, 5, 1, '2023-12-31 12:00:00')`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func matchIDs(t *testing.T, db *sql.DB, s search.Schema, token string) []int {
	t.Helper()

	f := search.Build(search.SQLite, s, token, 1)
	rows, err := db.Query("SELECT "+s.Table+".id "+s.From()+" WHERE "+f.SQL+" ORDER BY "+s.Table+".id", f.Args...)
	require.NoError(t, err)
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	return ids
}

func TestBuild_Matches(t *testing.T) {
	db := openDB(t)

	tests := []struct {
		name   string
		schema search.Schema
		token  string
		want   []int
	}{
		{name: "empty token matches zero rows", schema: books, token: "", want: []int{}},
		{name: "exact shared value", schema: books, token: "J.R.R. Tolkien", want: []int{1, 2}},
		{name: "case insensitive", schema: books, token: "tOLKIEN", want: []int{1, 2}},
		{name: "substring", schema: books, token: "the", want: []int{1, 2}},
		{name: "numeric column", schema: books, token: "1965", want: []int{3}},
		{name: "percent is literal", schema: books, token: "100%", want: []int{5}},
		{name: "underscore is literal", schema: books, token: "_", want: []int{}},
		{name: "joined title", schema: loans, token: "dune", want: []int{3}},
		{name: "full name as one unit", schema: loans, token: "ada lovelace", want: []int{1, 3, 5}},
		{name: "date ignores time of day", schema: loans, token: "2024-01-05", want: []int{1, 2, 3}},
		{name: "time of day does not match", schema: loans, token: "08:15", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchIDs(t, db, tt.schema, tt.token))
		})
	}
}
