package loans

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/library/handler"
	"github.com/dmitrymomot/library/modules/web"
	"github.com/dmitrymomot/library/pkg/apperror"
	"github.com/dmitrymomot/library/svc/library"
)

// Path is where the module is mounted.
const Path = "/loans"

// Service is the part of library.Service the module uses.
type Service interface {
	Loans(ctx context.Context, q library.ListQuery) ([]library.Loan, error)
	CountLoans(ctx context.Context, q library.ListQuery) (int, error)
	Loan(ctx context.Context, id string) (library.Loan, error)
	Books(ctx context.Context, q library.ListQuery) ([]library.Book, error)
	Book(ctx context.Context, id string) (library.Book, error)
	Patrons(ctx context.Context, q library.ListQuery) ([]library.Patron, error)
	Patron(ctx context.Context, id string) (library.Patron, error)
	NewLoanDefaults() library.LoanInput
	NewReturnDefaults() library.ReturnInput
	CreateLoan(ctx context.Context, in library.LoanInput) (library.Loan, error)
	ReturnLoan(ctx context.Context, id string, in library.ReturnInput) (library.Loan, error)
	DeleteLoan(ctx context.Context, id string) error
}

type Module struct {
	svc Service
	kit web.Kit
}

func New(svc Service, kit web.Kit) *Module {
	return &Module{svc: svc, kit: kit}
}

type returnRequest struct {
	ID string `path:"id"`
	library.ReturnInput
}

func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", web.Route(m.kit, m.listing(Path, "Loans", library.ScopeAll)))
	r.Get("/checked-out", web.Route(m.kit, m.listing(Path+"/checked-out", "Checked Out Books", library.ScopeCheckedOut)))
	r.Get("/overdue", web.Route(m.kit, m.listing(Path+"/overdue", "Overdue Books", library.ScopeOverdue)))

	r.Get("/new", web.Route(m.kit, m.newForm))
	r.Post("/new", web.Route(m.kit, m.create,
		handler.WithErrorView("loan/new"),
		handler.WithSupplement(handler.FormSupplementFunc(m.loanOptions)),
	))

	r.Get("/{id}/return", web.Route(m.kit, m.returnForm))
	r.Post("/{id}/return", web.Route(m.kit, m.returnBook,
		handler.WithErrorView("loan/return"),
		handler.WithSupplement(handler.FormSupplementFunc(m.returnedLoan)),
	))
	r.Post("/{id}/delete", web.Route(m.kit, m.delete))

	return r
}

func (m *Module) listing(route, heading string, scope library.Scope) handler.Action[handler.Context, web.ListRequest] {
	return web.List(m.kit.Views, web.Listing[library.Loan]{
		Route:   route,
		View:    "loan/index",
		Plural:  "loans",
		Heading: heading,
		Scope:   scope,
		Count:   m.svc.CountLoans,
		Fetch:   m.svc.Loans,
	})
}

func (m *Module) newForm(ctx handler.Context, _ struct{}) (handler.Response, error) {
	values, err := web.FormData(ctx, m.svc.NewLoanDefaults().Values(), "", handler.FormSupplementFunc(m.loanOptions))
	if err != nil {
		return nil, err
	}
	return handler.Render(m.kit.Views, "loan/new", handler.Data{handler.DataValuesKey: values}), nil
}

func (m *Module) create(ctx handler.Context, in library.LoanInput) (handler.Response, error) {
	if _, err := m.svc.CreateLoan(ctx, in); err != nil {
		return nil, err
	}
	return handler.Redirect(Path), nil
}

// loanOptions lists every book and patron for the selects and resolves the
// submitted book_id and patron_id. Unresolvable ids yield nil records.
func (m *Module) loanOptions(ctx context.Context, _ string, form url.Values) (handler.Data, error) {
	books, err := m.svc.Books(ctx, library.ListQuery{})
	if err != nil {
		return nil, err
	}
	patrons, err := m.svc.Patrons(ctx, library.ListQuery{})
	if err != nil {
		return nil, err
	}
	data := handler.Data{
		"books":   books,
		"patrons": patrons,
		"book":    nil,
		"patron":  nil,
	}

	if id := form.Get("book_id"); id != "" {
		book, err := m.svc.Book(ctx, id)
		switch {
		case err == nil:
			data["book"] = book
		case !apperror.Is(err, apperror.KindNotFound):
			return nil, err
		}
	}
	if id := form.Get("patron_id"); id != "" {
		patron, err := m.svc.Patron(ctx, id)
		switch {
		case err == nil:
			data["patron"] = patron
		case !apperror.Is(err, apperror.KindNotFound):
			return nil, err
		}
	}
	return data, nil
}

// outstanding loads the loan and guards against returned loans.
func (m *Module) outstanding(ctx context.Context, id string) (library.Loan, error) {
	loan, err := m.svc.Loan(ctx, id)
	if err != nil {
		return library.Loan{}, err
	}
	if !loan.Outstanding() {
		return library.Loan{}, apperror.AlreadyReturned(loan.ID, *loan.ReturnedOn)
	}
	return loan, nil
}

func (m *Module) returnForm(ctx handler.Context, req web.IDRequest) (handler.Response, error) {
	loan, err := m.outstanding(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	values, err := web.FormData(ctx, m.svc.NewReturnDefaults().Values(), req.ID,
		handler.FormSupplementFunc(func(context.Context, string, url.Values) (handler.Data, error) {
			return handler.Data{"loan": loan}, nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return handler.Render(m.kit.Views, "loan/return", handler.Data{handler.DataValuesKey: values}), nil
}

func (m *Module) returnBook(ctx handler.Context, req returnRequest) (handler.Response, error) {
	if _, err := m.svc.ReturnLoan(ctx, req.ID, req.ReturnInput); err != nil {
		return nil, err
	}
	return handler.Redirect(Path), nil
}

// returnedLoan re-resolves the loan of a failed return with its book and patron.
func (m *Module) returnedLoan(ctx context.Context, id string, _ url.Values) (handler.Data, error) {
	loan, err := m.svc.Loan(ctx, id)
	if err != nil {
		return nil, err
	}
	return handler.Data{"loan": loan}, nil
}

func (m *Module) delete(ctx handler.Context, req web.IDRequest) (handler.Response, error) {
	if err := m.svc.DeleteLoan(ctx, req.ID); err != nil {
		return nil, err
	}
	return handler.Redirect(Path), nil
}
