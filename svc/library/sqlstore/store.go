package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrymomot/library/pkg/search"
	"github.com/dmitrymomot/library/svc/library"
)

// Store is the database/sql implementation of library.Storage.
type Store struct {
	db      *sql.DB
	dialect search.Dialect
}

var _ library.Storage = (*Store)(nil)

func New(db *sql.DB, dialect search.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) builder() *selectBuilder {
	return &selectBuilder{dialect: s.dialect}
}

func (s *Store) ph(n int) string { return s.dialect.Placeholder(n) }

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) count(ctx context.Context, query string, args []any) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, mapError(err, "", "")
	}
	return n, nil
}

func queryRows[T any](ctx context.Context, db *sql.DB, query string, args []any, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "", "")
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, mapError(err, "", "")
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "", "")
	}
	return out, nil
}

// exec runs a mutation of a single row; no affected row means not found.
func (s *Store) exec(ctx context.Context, entity string, id int64, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, entity, id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, entity, id)
	}
	if n == 0 {
		return mapError(sql.ErrNoRows, entity, id)
	}
	return nil
}

// Books

func scanBook(row scanner) (library.Book, error) {
	var (
		b         library.Book
		published sql.NullInt64
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &published); err != nil {
		return library.Book{}, err
	}
	if published.Valid {
		year := int(published.Int64)
		b.FirstPublished = &year
	}
	return b, nil
}

func (s *Store) bookFilter(q library.ListQuery) *selectBuilder {
	b := s.builder()
	if scope := b.loanScope(q.Scope, q.Now, "loans"); scope != "" {
		b.and("EXISTS (SELECT 1 FROM loans WHERE loans.book_id = books.id AND " + scope + ")")
	}
	b.search(bookSchema, q.Search)
	return b
}

func (s *Store) CountBooks(ctx context.Context, q library.ListQuery) (int, error) {
	b := s.bookFilter(q)
	return s.count(ctx, b.count(bookSchema), b.args)
}

func (s *Store) ListBooks(ctx context.Context, q library.ListQuery) ([]library.Book, error) {
	b := s.bookFilter(q)
	query := b.list(bookColumns, bookSchema, "books.id", q)
	return queryRows(ctx, s.db, query, b.args, scanBook)
}

func (s *Store) GetBook(ctx context.Context, id int64) (library.Book, error) {
	query := "SELECT " + bookColumns + " FROM books WHERE books.id = " + s.ph(1)
	b, err := scanBook(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return library.Book{}, mapError(err, library.EntityBook, id)
	}
	return b, nil
}

func (s *Store) CreateBook(ctx context.Context, b library.Book) (library.Book, error) {
	query := "INSERT INTO books (title, author, genre, first_published) VALUES (" +
		s.ph(1) + ", " + s.ph(2) + ", " + s.ph(3) + ", " + s.ph(4) + ") RETURNING id"
	if err := s.db.QueryRowContext(ctx, query, b.Title, b.Author, b.Genre, nullInt(b.FirstPublished)).Scan(&b.ID); err != nil {
		return library.Book{}, mapError(err, library.EntityBook, "")
	}
	return b, nil
}

func (s *Store) UpdateBook(ctx context.Context, b library.Book) error {
	query := "UPDATE books SET title = " + s.ph(1) + ", author = " + s.ph(2) +
		", genre = " + s.ph(3) + ", first_published = " + s.ph(4) + " WHERE id = " + s.ph(5)
	return s.exec(ctx, library.EntityBook, b.ID, query, b.Title, b.Author, b.Genre, nullInt(b.FirstPublished), b.ID)
}

func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	return s.exec(ctx, library.EntityBook, id, "DELETE FROM books WHERE id = "+s.ph(1), id)
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

// Patrons

func scanPatron(row scanner) (library.Patron, error) {
	var p library.Patron
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Address, &p.Email, &p.LibraryID, &p.ZipCode)
	return p, err
}

func (s *Store) patronFilter(q library.ListQuery) *selectBuilder {
	b := s.builder()
	b.search(patronSchema, q.Search)
	return b
}

func (s *Store) CountPatrons(ctx context.Context, q library.ListQuery) (int, error) {
	b := s.patronFilter(q)
	return s.count(ctx, b.count(patronSchema), b.args)
}

func (s *Store) ListPatrons(ctx context.Context, q library.ListQuery) ([]library.Patron, error) {
	b := s.patronFilter(q)
	query := b.list(patronColumns, patronSchema, "patrons.id", q)
	return queryRows(ctx, s.db, query, b.args, scanPatron)
}

func (s *Store) GetPatron(ctx context.Context, id int64) (library.Patron, error) {
	query := "SELECT " + patronColumns + " FROM patrons WHERE patrons.id = " + s.ph(1)
	p, err := scanPatron(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return library.Patron{}, mapError(err, library.EntityPatron, id)
	}
	return p, nil
}

func (s *Store) CreatePatron(ctx context.Context, p library.Patron) (library.Patron, error) {
	query := "INSERT INTO patrons (first_name, last_name, address, email, library_id, zip_code) VALUES (" +
		s.ph(1) + ", " + s.ph(2) + ", " + s.ph(3) + ", " + s.ph(4) + ", " + s.ph(5) + ", " + s.ph(6) + ") RETURNING id"
	err := s.db.QueryRowContext(ctx, query, p.FirstName, p.LastName, p.Address, p.Email, p.LibraryID, p.ZipCode).Scan(&p.ID)
	if err != nil {
		return library.Patron{}, mapError(err, library.EntityPatron, "")
	}
	return p, nil
}

func (s *Store) UpdatePatron(ctx context.Context, p library.Patron) error {
	query := "UPDATE patrons SET first_name = " + s.ph(1) + ", last_name = " + s.ph(2) +
		", address = " + s.ph(3) + ", email = " + s.ph(4) + ", library_id = " + s.ph(5) +
		", zip_code = " + s.ph(6) + " WHERE id = " + s.ph(7)
	return s.exec(ctx, library.EntityPatron, p.ID, query,
		p.FirstName, p.LastName, p.Address, p.Email, p.LibraryID, p.ZipCode, p.ID)
}

func (s *Store) DeletePatron(ctx context.Context, id int64) error {
	return s.exec(ctx, library.EntityPatron, id, "DELETE FROM patrons WHERE id = "+s.ph(1), id)
}

// Loans

const joinedLoanColumns = loanColumns + ", " + bookColumns + ", " + patronColumns

// scanLoan reads joinedLoanColumns.
func scanLoan(row scanner) (library.Loan, error) {
	var (
		l                            library.Loan
		b                            library.Book
		p                            library.Patron
		loanedOn, returnBy, returned timestamp
		published                    sql.NullInt64
	)
	err := row.Scan(
		&l.ID, &l.BookID, &l.PatronID, &loanedOn, &returnBy, &returned,
		&b.ID, &b.Title, &b.Author, &b.Genre, &published,
		&p.ID, &p.FirstName, &p.LastName, &p.Address, &p.Email, &p.LibraryID, &p.ZipCode,
	)
	if err != nil {
		return library.Loan{}, err
	}
	if published.Valid {
		year := int(published.Int64)
		b.FirstPublished = &year
	}
	l.LoanedOn = loanedOn.Time
	l.ReturnBy = returnBy.Time
	l.ReturnedOn = returned.ptr()
	l.Book, l.Patron = &b, &p
	return l, nil
}

func (s *Store) loanFilter(q library.ListQuery) *selectBuilder {
	b := s.builder()
	if scope := b.loanScope(q.Scope, q.Now, "loans"); scope != "" {
		b.and(scope)
	}
	b.search(loanSchema, q.Search)
	return b
}

func (s *Store) CountLoans(ctx context.Context, q library.ListQuery) (int, error) {
	b := s.loanFilter(q)
	return s.count(ctx, b.count(loanSchema), b.args)
}

func (s *Store) ListLoans(ctx context.Context, q library.ListQuery) ([]library.Loan, error) {
	b := s.loanFilter(q)
	query := b.list(joinedLoanColumns, loanSchema, "loans.id", q)
	return queryRows(ctx, s.db, query, b.args, scanLoan)
}

func (s *Store) GetLoan(ctx context.Context, id int64) (library.Loan, error) {
	query := "SELECT " + joinedLoanColumns + " " + loanSchema.From() + " WHERE loans.id = " + s.ph(1)
	l, err := scanLoan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return library.Loan{}, mapError(err, library.EntityLoan, id)
	}
	return l, nil
}

func (s *Store) LoansByBook(ctx context.Context, bookID int64) ([]library.Loan, error) {
	query := "SELECT " + joinedLoanColumns + " " + loanSchema.From() + " WHERE loans.book_id = " + s.ph(1) + " ORDER BY loans.id"
	return queryRows(ctx, s.db, query, []any{bookID}, scanLoan)
}

func (s *Store) LoansByPatron(ctx context.Context, patronID int64) ([]library.Loan, error) {
	query := "SELECT " + joinedLoanColumns + " " + loanSchema.From() + " WHERE loans.patron_id = " + s.ph(1) + " ORDER BY loans.id"
	return queryRows(ctx, s.db, query, []any{patronID}, scanLoan)
}

func (s *Store) CreateLoan(ctx context.Context, l library.Loan) (library.Loan, error) {
	query := "INSERT INTO loans (book_id, patron_id, loaned_on, return_by, returned_on) VALUES (" +
		s.ph(1) + ", " + s.ph(2) + ", " + s.ph(3) + ", " + s.ph(4) + ", " + s.ph(5) + ") RETURNING id"
	err := s.db.QueryRowContext(ctx, query,
		l.BookID, l.PatronID,
		timeArg(s.dialect, l.LoanedOn), timeArg(s.dialect, l.ReturnBy), nullTimeArg(s.dialect, l.ReturnedOn),
	).Scan(&l.ID)
	if err != nil {
		return library.Loan{}, s.mapLoanError(ctx, err, l)
	}
	return l, nil
}

func (s *Store) ReturnLoan(ctx context.Context, id int64, returnedOn time.Time) error {
	query := "UPDATE loans SET returned_on = " + s.ph(1) + " WHERE id = " + s.ph(2)
	return s.exec(ctx, library.EntityLoan, id, query, timeArg(s.dialect, returnedOn), id)
}

func (s *Store) DeleteLoan(ctx context.Context, id int64) error {
	return s.exec(ctx, library.EntityLoan, id, "DELETE FROM loans WHERE id = "+s.ph(1), id)
}
