package library

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/library/pkg/apperror"
)

// Entity names used in not-found messages.
const (
	EntityBook   = "Book"
	EntityPatron = "Patron"
	EntityLoan   = "Loan"
)

// Service implements the library operations on top of a Storage.
// Every operation is a plain sequence of storage calls; nothing is cached.
type Service struct {
	store Storage
	now   func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source, used for loan defaults and the overdue scope.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store Storage, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current time of the service clock.
func (s *Service) Now() time.Time { return s.now() }

func (s *Service) query(q ListQuery) ListQuery {
	if q.Now.IsZero() {
		q.Now = s.now()
	}
	return q
}

// parseID converts a path id. Ids that are not positive integers cannot
// exist, so they yield the same not-found error as a missing row.
func parseID(entity, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.NotFound(entity, raw)
	}
	return id, nil
}

// Books

func (s *Service) Books(ctx context.Context, q ListQuery) ([]Book, error) {
	return s.store.ListBooks(ctx, s.query(q))
}

func (s *Service) CountBooks(ctx context.Context, q ListQuery) (int, error) {
	return s.store.CountBooks(ctx, s.query(q))
}

func (s *Service) Book(ctx context.Context, id string) (Book, error) {
	bid, err := parseID(EntityBook, id)
	if err != nil {
		return Book{}, err
	}
	return s.store.GetBook(ctx, bid)
}

func (s *Service) BookLoans(ctx context.Context, id string) ([]Loan, error) {
	b, err := s.Book(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.LoansByBook(ctx, b.ID)
}

func (s *Service) CreateBook(ctx context.Context, in BookInput) (Book, error) {
	if err := in.validate(); err != nil {
		return Book{}, err
	}
	var b Book
	in.apply(&b)
	return s.store.CreateBook(ctx, b)
}

func (s *Service) UpdateBook(ctx context.Context, id string, in BookInput) (Book, error) {
	b, err := s.Book(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if err := in.validate(); err != nil {
		return Book{}, err
	}
	in.apply(&b)
	if err := s.store.UpdateBook(ctx, b); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (s *Service) DeleteBook(ctx context.Context, id string) error {
	b, err := s.Book(ctx, id)
	if err != nil {
		return err
	}
	return s.store.DeleteBook(ctx, b.ID)
}

// Patrons

func (s *Service) Patrons(ctx context.Context, q ListQuery) ([]Patron, error) {
	return s.store.ListPatrons(ctx, s.query(q))
}

func (s *Service) CountPatrons(ctx context.Context, q ListQuery) (int, error) {
	return s.store.CountPatrons(ctx, s.query(q))
}

func (s *Service) Patron(ctx context.Context, id string) (Patron, error) {
	pid, err := parseID(EntityPatron, id)
	if err != nil {
		return Patron{}, err
	}
	return s.store.GetPatron(ctx, pid)
}

func (s *Service) PatronLoans(ctx context.Context, id string) ([]Loan, error) {
	p, err := s.Patron(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.LoansByPatron(ctx, p.ID)
}

func (s *Service) CreatePatron(ctx context.Context, in PatronInput) (Patron, error) {
	if err := in.validate(); err != nil {
		return Patron{}, err
	}
	var p Patron
	in.apply(&p)
	return s.store.CreatePatron(ctx, p)
}

func (s *Service) UpdatePatron(ctx context.Context, id string, in PatronInput) (Patron, error) {
	p, err := s.Patron(ctx, id)
	if err != nil {
		return Patron{}, err
	}
	if err := in.validate(); err != nil {
		return Patron{}, err
	}
	in.apply(&p)
	if err := s.store.UpdatePatron(ctx, p); err != nil {
		return Patron{}, err
	}
	return p, nil
}

func (s *Service) DeletePatron(ctx context.Context, id string) error {
	p, err := s.Patron(ctx, id)
	if err != nil {
		return err
	}
	return s.store.DeletePatron(ctx, p.ID)
}

// Loans

func (s *Service) Loans(ctx context.Context, q ListQuery) ([]Loan, error) {
	return s.store.ListLoans(ctx, s.query(q))
}

func (s *Service) CountLoans(ctx context.Context, q ListQuery) (int, error) {
	return s.store.CountLoans(ctx, s.query(q))
}

// Loan returns the loan with its book and patron.
func (s *Service) Loan(ctx context.Context, id string) (Loan, error) {
	lid, err := parseID(EntityLoan, id)
	if err != nil {
		return Loan{}, err
	}
	return s.store.GetLoan(ctx, lid)
}

// NewLoanDefaults returns the new loan form state for the service clock.
func (s *Service) NewLoanDefaults() LoanInput {
	return NewLoanDefaults(s.now())
}

// NewReturnDefaults returns the return form state for the service clock.
func (s *Service) NewReturnDefaults() ReturnInput {
	return NewReturnDefaults(s.now())
}

// CreateLoan validates the submission, including the existence of the
// referenced book and patron, and stores the loan.
func (s *Service) CreateLoan(ctx context.Context, in LoanInput) (Loan, error) {
	var missing []string

	book, err := s.reference(ctx, EntityBook, in.BookID, func(id int64) error {
		_, err := s.store.GetBook(ctx, id)
		return err
	})
	if err != nil {
		return Loan{}, err
	}
	if !book.ok {
		missing = append(missing, MissingMessage(LabelBook))
	}

	patron, err := s.reference(ctx, EntityPatron, in.PatronID, func(id int64) error {
		_, err := s.store.GetPatron(ctx, id)
		return err
	})
	if err != nil {
		return Loan{}, err
	}
	if !patron.ok {
		missing = append(missing, MissingMessage(LabelPatron))
	}

	verr := validate(loanLabels, in.rules()...)
	if verr != nil && !apperror.Is(verr, apperror.KindValidation) {
		return Loan{}, verr
	}
	if verr != nil || len(missing) > 0 {
		var messages []string
		if e, ok := verr.(*apperror.Error); ok {
			messages = e.Messages
		}
		return Loan{}, apperror.Validation(append(messages, missing...)...)
	}

	return s.store.CreateLoan(ctx, Loan{
		BookID:   book.id,
		PatronID: patron.id,
		LoanedOn: parseDate(in.LoanedOn),
		ReturnBy: parseDate(in.ReturnBy),
	})
}

type reference struct {
	id int64
	ok bool
}

// reference resolves a submitted foreign key. Blank values are left to the
// required rule and count as resolved; unknown ids are reported as not ok.
func (s *Service) reference(ctx context.Context, entity, raw string, lookup func(int64) error) (reference, error) {
	if trim(raw) == "" {
		return reference{ok: true}, nil
	}
	id, err := parseID(entity, raw)
	if err != nil {
		return reference{}, nil
	}
	if err := lookup(id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return reference{}, nil
		}
		return reference{}, err
	}
	return reference{id: id, ok: true}, nil
}

// ReturnLoan marks an outstanding loan as returned.
// A loan already returned fails with apperror.AlreadyReturned before any
// validation or mutation happens.
func (s *Service) ReturnLoan(ctx context.Context, id string, in ReturnInput) (Loan, error) {
	l, err := s.Loan(ctx, id)
	if err != nil {
		return Loan{}, err
	}
	if !l.Outstanding() {
		return Loan{}, apperror.AlreadyReturned(l.ID, *l.ReturnedOn)
	}
	if err := in.validate(l); err != nil {
		return Loan{}, err
	}

	returned := parseDate(in.ReturnedOn)
	if err := s.store.ReturnLoan(ctx, l.ID, returned); err != nil {
		return Loan{}, err
	}
	l.ReturnedOn = &returned
	return l, nil
}

func (s *Service) DeleteLoan(ctx context.Context, id string) error {
	l, err := s.Loan(ctx, id)
	if err != nil {
		return err
	}
	return s.store.DeleteLoan(ctx, l.ID)
}
