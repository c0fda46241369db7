package library

import (
	"context"
	"time"

	"github.com/dmitrymomot/library/pkg/pagination"
)

// Scope narrows a listing.
type Scope string

const (
	ScopeAll        Scope = ""
	ScopeCheckedOut Scope = "checked_out"
	ScopeOverdue    Scope = "overdue"
)

// ListQuery describes one listing request. A nil Search lists everything;
// a non-nil one applies the free text filter, even when empty.
type ListQuery struct {
	Scope  Scope
	Search *string
	Window pagination.Window
	// Now is the reference time of the overdue scope.
	Now time.Time
}

// Storage is the persistence contract of the library.
//
// Get methods return apperror.NotFound for missing records. Create and
// Update return apperror.Uniqueness when a unique column is taken.
type Storage interface {
	CountBooks(ctx context.Context, q ListQuery) (int, error)
	ListBooks(ctx context.Context, q ListQuery) ([]Book, error)
	GetBook(ctx context.Context, id int64) (Book, error)
	CreateBook(ctx context.Context, b Book) (Book, error)
	UpdateBook(ctx context.Context, b Book) error
	DeleteBook(ctx context.Context, id int64) error

	CountPatrons(ctx context.Context, q ListQuery) (int, error)
	ListPatrons(ctx context.Context, q ListQuery) ([]Patron, error)
	GetPatron(ctx context.Context, id int64) (Patron, error)
	CreatePatron(ctx context.Context, p Patron) (Patron, error)
	UpdatePatron(ctx context.Context, p Patron) error
	DeletePatron(ctx context.Context, id int64) error

	CountLoans(ctx context.Context, q ListQuery) (int, error)
	ListLoans(ctx context.Context, q ListQuery) ([]Loan, error)
	// GetLoan returns the loan with its book and patron.
	GetLoan(ctx context.Context, id int64) (Loan, error)
	LoansByBook(ctx context.Context, bookID int64) ([]Loan, error)
	LoansByPatron(ctx context.Context, patronID int64) ([]Loan, error)
	CreateLoan(ctx context.Context, l Loan) (Loan, error)
	ReturnLoan(ctx context.Context, id int64, returnedOn time.Time) error
	DeleteLoan(ctx context.Context, id int64) error
}
