package books

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/library/handler"
	"github.com/dmitrymomot/library/modules/web"
	"github.com/dmitrymomot/library/svc/library"
)

// Path is where the module is mounted.
const Path = "/books"

// Service is the part of library.Service the module uses.
type Service interface {
	Books(ctx context.Context, q library.ListQuery) ([]library.Book, error)
	CountBooks(ctx context.Context, q library.ListQuery) (int, error)
	Book(ctx context.Context, id string) (library.Book, error)
	BookLoans(ctx context.Context, id string) ([]library.Loan, error)
	CreateBook(ctx context.Context, in library.BookInput) (library.Book, error)
	UpdateBook(ctx context.Context, id string, in library.BookInput) (library.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

type Module struct {
	svc Service
	kit web.Kit
}

func New(svc Service, kit web.Kit) *Module {
	return &Module{svc: svc, kit: kit}
}

type updateRequest struct {
	ID string `path:"id"`
	library.BookInput
}

func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", web.Route(m.kit, m.listing(Path, "Books", library.ScopeAll)))
	r.Get("/checked-out", web.Route(m.kit, m.listing(Path+"/checked-out", "Checked Out Books", library.ScopeCheckedOut)))
	r.Get("/overdue", web.Route(m.kit, m.listing(Path+"/overdue", "Overdue Books", library.ScopeOverdue)))

	r.Get("/new", web.Route(m.kit, m.newForm))
	r.Post("/new", web.Route(m.kit, m.create, handler.WithErrorView("book/new")))

	r.Get("/{id}", web.Route(m.kit, m.detail))
	r.Post("/{id}", web.Route(m.kit, m.update,
		handler.WithErrorView("book/detail"),
		handler.WithSupplement(handler.FormSupplementFunc(m.loans)),
	))
	r.Post("/{id}/delete", web.Route(m.kit, m.delete))

	return r
}

func (m *Module) listing(route, heading string, scope library.Scope) handler.Action[handler.Context, web.ListRequest] {
	return web.List(m.kit.Views, web.Listing[library.Book]{
		Route:   route,
		View:    "book/index",
		Plural:  "books",
		Heading: heading,
		Scope:   scope,
		Count:   m.svc.CountBooks,
		Fetch:   m.svc.Books,
	})
}

func (m *Module) newForm(ctx handler.Context, _ struct{}) (handler.Response, error) {
	values, err := web.FormData(ctx, library.BookInput{}.Values(), "", nil)
	if err != nil {
		return nil, err
	}
	return handler.Render(m.kit.Views, "book/new", handler.Data{handler.DataValuesKey: values}), nil
}

func (m *Module) create(ctx handler.Context, in library.BookInput) (handler.Response, error) {
	if _, err := m.svc.CreateBook(ctx, in); err != nil {
		return nil, err
	}
	return handler.Redirect(Path), nil
}

func (m *Module) detail(ctx handler.Context, req web.IDRequest) (handler.Response, error) {
	book, err := m.svc.Book(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	values, err := web.FormData(ctx, library.BookInputOf(book).Values(), req.ID, handler.FormSupplementFunc(m.loans))
	if err != nil {
		return nil, err
	}
	return handler.Render(m.kit.Views, "book/detail", handler.Data{handler.DataValuesKey: values}), nil
}

func (m *Module) update(ctx handler.Context, req updateRequest) (handler.Response, error) {
	if _, err := m.svc.UpdateBook(ctx, req.ID, req.BookInput); err != nil {
		return nil, err
	}
	return handler.Redirect(Path), nil
}

// loans re-attaches the loan history to a failed update.
func (m *Module) loans(ctx context.Context, id string, _ url.Values) (handler.Data, error) {
	loans, err := m.svc.BookLoans(ctx, id)
	if err != nil {
		return nil, err
	}
	return handler.Data{"loans": loans}, nil
}

func (m *Module) delete(ctx handler.Context, req web.IDRequest) (handler.Response, error) {
	if err := m.svc.DeleteBook(ctx, req.ID); err != nil {
		return nil, err
	}
	return handler.Redirect(Path), nil
}
