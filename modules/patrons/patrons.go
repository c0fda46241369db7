package patrons

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
const Path = "/patrons"

// Service is the part of library.Service the module uses.
type Service interface {
	Patrons(ctx context.Context, q library.ListQuery) ([]library.Patron, error)
	CountPatrons(ctx context.Context, q library.ListQuery) (int, error)
	Patron(ctx context.Context, id string) (library.Patron, error)
	PatronLoans(ctx context.Context, id string) ([]library.Loan, error)
	CreatePatron(ctx context.Context, in library.PatronInput) (library.Patron, error)
	UpdatePatron(ctx context.Context, id string, in library.PatronInput) (library.Patron, error)
	DeletePatron(ctx context.Context, id string) error
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
	library.PatronInput
}

func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", web.Route(m.kit, m.listing()))

	r.Get("/new", web.Route(m.kit, m.newForm))
	r.Post("/new", web.Route(m.kit, m.create, handler.WithErrorView("patron/new")))

	r.Get("/{id}", web.Route(m.kit, m.detail))
	r.Post("/{id}", web.Route(m.kit, m.update,
		handler.WithErrorView("patron/detail"),
		handler.WithSupplement(handler.FormSupplementFunc(m.loans)),
	))
	r.Post("/{id}/delete", web.Route(m.kit, m.delete))

	return r
}

func (m *Module) listing() handler.Action[handler.Context, web.ListRequest] {
	return web.List(m.kit.Views, web.Listing[library.Patron]{
		Route:   Path,
		View:    "patron/index",
		Plural:  "patrons",
		Heading: "Patrons",
		Count:   m.svc.CountPatrons,
		Fetch:   m.svc.Patrons,
	})
}

func (m *Module) newForm(ctx handler.Context, _ struct{}) (handler.Response, error) {
	values, err := web.FormData(ctx, library.PatronInput{}.Values(), "", nil)
	if err != nil {
		return nil, err
	}
	return handler.Render(m.kit.Views, "patron/new", handler.Data{handler.DataValuesKey: values}), nil
}

func (m *Module) create(ctx handler.Context, in library.PatronInput) (handler.Response, error) {
	if _, err := m.svc.CreatePatron(ctx, in); err != nil {
		return nil, err
	}
	return handler.Redirect(Path), nil
}

func (m *Module) detail(ctx handler.Context, req web.IDRequest) (handler.Response, error) {
	patron, err := m.svc.Patron(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	values, err := web.FormData(ctx, library.PatronInputOf(patron).Values(), req.ID, handler.FormSupplementFunc(m.loans))
	if err != nil {
		return nil, err
	}
	return handler.Render(m.kit.Views, "patron/detail", handler.Data{handler.DataValuesKey: values}), nil
}

func (m *Module) update(ctx handler.Context, req updateRequest) (handler.Response, error) {
	if _, err := m.svc.UpdatePatron(ctx, req.ID, req.PatronInput); err != nil {
		return nil, err
	}
	return handler.Redirect(Path), nil
}

// loans re-attaches the loan history to a failed update.
func (m *Module) loans(ctx context.Context, id string, _ url.Values) (handler.Data, error) {
	loans, err := m.svc.PatronLoans(ctx, id)
	if err != nil {
		return nil, err
	}
	return handler.Data{"loans": loans}, nil
}

func (m *Module) delete(ctx handler.Context, req web.IDRequest) (handler.Response, error) {
	if err := m.svc.DeletePatron(ctx, req.ID); err != nil {
		return nil, err
	}
	return handler.Redirect(Path), nil
}
