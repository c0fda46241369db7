// Package web holds the plumbing shared by the library HTTP modules:
// route wrapping, the listing action and the common request types.
package web

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/library/handler"
	"github.com/dmitrymomot/library/pkg/binder"
	"github.com/dmitrymomot/library/pkg/pagination"
	"github.com/dmitrymomot/library/svc/library"
)

// Kit is what every module needs to answer requests.
type Kit struct {
	Views        handler.Renderer
	ErrorHandler handler.ErrorHandler[handler.Context]
	Logger       *slog.Logger
}

// IDRequest carries the path id of the addressed entity.
type IDRequest struct {
	ID string `path:"id"`
}

// ListRequest carries the free text search of a listing. Q is nil when the
// query has no "q" parameter at all.
type ListRequest struct {
	Q *string `query:"q"`
}

// Route wraps an action into an http.HandlerFunc: path, query and form
// values are bound into R, the outcome is decided by handler.Dispatch and
// forwarded failures end in the kit error handler.
func Route[R any](k Kit, action handler.Action[handler.Context, R], opts ...handler.DispatchOption) http.HandlerFunc {
	base := []handler.DispatchOption{
		handler.WithRenderer(k.Views),
		handler.WithPathParam(chi.URLParam),
	}
	if k.Logger != nil {
		base = append(base, handler.WithDispatchLogger(k.Logger))
	}

	return handler.Wrap(
		handler.Dispatch(action, append(base, opts...)...),
		handler.WithBinders[handler.Context, R](
			binder.Path(chi.URLParam),
			binder.Query(),
			binder.Form(),
		),
		handler.WithErrorHandler[handler.Context, R](k.ErrorHandler),
	)
}

// Listing describes one paginated, searchable index page.
type Listing[T any] struct {
	Route   string // canonical path, used for redirects and page links
	View    string
	Plural  string // payload key of the rows
	Heading string
	Scope   library.Scope
	Count   func(context.Context, library.ListQuery) (int, error)
	Fetch   func(context.Context, library.ListQuery) ([]T, error)
}

// List returns the index action of l.
//
// A request with page or limit values that are not canonical positive
// integers is redirected to the canonical URL before any data access.
func List[T any](views handler.Renderer, l Listing[T]) handler.Action[handler.Context, ListRequest] {
	return func(ctx handler.Context, req ListRequest) (handler.Response, error) {
		query := ctx.Request().URL.Query()
		root := pagination.Root(l.Route, query)

		page := pagination.Normalize(query)
		if page.NeedsRedirect() {
			return handler.RedirectWithCode(page.RedirectURL(root), http.StatusFound), nil
		}

		lq := library.ListQuery{Scope: l.Scope, Search: req.Q}
		rows, state, err := pagination.Load(ctx, page,
			func(c context.Context) (int, error) { return l.Count(c, lq) },
			func(c context.Context, w pagination.Window) ([]T, error) {
				windowed := lq
				windowed.Window = w
				return l.Fetch(c, windowed)
			},
		)
		if err != nil {
			return nil, err
		}

		data := handler.Data{
			l.Plural:  rows,
			"heading": l.Heading,
			"route":   l.Route,
		}
		if req.Q != nil {
			data[pagination.ParamSearch] = *req.Q
		}
		if state != nil {
			maps.Copy(data, state.Payload(root))
		}
		return handler.Render(views, l.View, data), nil
	}
}

// FormData returns the initial state of a form: values as if submitted,
// id as the edited entity and the supplement merged on top, the same shape
// a failed submission is re-rendered with. supplement may be nil.
func FormData(ctx context.Context, values url.Values, id string, supplement handler.FormSupplement) (handler.Data, error) {
	return handler.Rebuild(ctx, values, id, supplement)
}
