package sqlstore

import (
	"github.com/dmitrymomot/library/pkg/search"
)

const (
	bookColumns   = "books.id, books.title, books.author, books.genre, books.first_published"
	patronColumns = "patrons.id, patrons.first_name, patrons.last_name, patrons.address, patrons.email, patrons.library_id, patrons.zip_code"
	loanColumns   = "loans.id, loans.book_id, loans.patron_id, loans.loaned_on, loans.return_by, loans.returned_on"
)

var bookSchema = search.Schema{
	Table: "books",
	Columns: []search.Column{
		search.Text("books.title"),
		search.Text("books.author"),
		search.Text("books.genre"),
		search.Number("books.first_published"),
	},
}

var patronSchema = search.Schema{
	Table: "patrons",
	Columns: []search.Column{
		search.Text("patrons.first_name"),
		search.Text("patrons.last_name"),
		search.Concat("patrons.first_name", "patrons.last_name"),
		search.Text("patrons.address"),
		search.Text("patrons.email"),
		search.Text("patrons.library_id"),
		search.Number("patrons.zip_code"),
	},
}

var loanSchema = search.Schema{
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
		search.Date("loans.return_by"),
		search.Date("loans.returned_on"),
	},
}
