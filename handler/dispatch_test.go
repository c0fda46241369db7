package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/library/handler"
	"github.com/dmitrymomot/library/pkg/apperror"
	"github.com/dmitrymomot/library/pkg/binder"
	"github.com/dmitrymomot/library/pkg/logger"
)

type bookInput struct {
	Title  string `form:"title"`
	Author string `form:"author"`
}

type dispatchCase struct {
	renderer *captureRenderer
	errors   *errorRecorder
	mux      *http.ServeMux
}

func newDispatchCase(pattern string, action handler.Action[handler.Context, bookInput], opts ...handler.DispatchOption) *dispatchCase {
	dc := &dispatchCase{renderer: &captureRenderer{}, errors: &errorRecorder{}, mux: http.NewServeMux()}
	opts = append([]handler.DispatchOption{
		handler.WithRenderer(dc.renderer),
		handler.WithDispatchLogger(logger.Discard()),
	}, opts...)
	dc.mux.Handle(pattern, handler.Wrap(
		handler.Dispatch(action, opts...),
		handler.WithBinders[handler.Context, bookInput](binder.Form()),
		handler.WithErrorHandler[handler.Context, bookInput](dc.errors.handle),
	))
	return dc
}

func (dc *dispatchCase) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	dc.mux.ServeHTTP(rec, req)
	return rec
}

func failWith(err error) handler.Action[handler.Context, bookInput] {
	return func(handler.Context, bookInput) (handler.Response, error) { return nil, err }
}

func TestDispatch_Succeeded(t *testing.T) {
	t.Parallel()

	dc := newDispatchCase("POST /books/new", func(_ handler.Context, in bookInput) (handler.Response, error) {
		assert.Equal(t, "Dune", in.Title)
		return handler.Redirect("/books"), nil
	}, handler.WithErrorView("book/new"))

	rec := dc.serve(formRequest(http.MethodPost, "/books/new", url.Values{"title": {"Dune"}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/books", rec.Header().Get("Location"))
	assert.Zero(t, dc.renderer.calls)
	assert.Empty(t, dc.errors.errs)
}

func TestDispatch_RecoversValidation(t *testing.T) {
	t.Parallel()

	dc := newDispatchCase("POST /books/new", failWith(apperror.Validation(`"Title" is required`)),
		handler.WithErrorView("book/new"))

	rec := dc.serve(formRequest(http.MethodPost, "/books/new", url.Values{"title": {""}, "author": {"author"}}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "view:book/new", rec.Body.String())
	assert.Empty(t, dc.errors.errs)
	require.Equal(t, 1, dc.renderer.calls)
	assert.Equal(t, "book/new", dc.renderer.view)
	assert.Equal(t, handler.Data{
		"dataValues": handler.Data{"id": nil, "title": "", "author": "author"},
		"errors":     []string{`"Title" is required`},
	}, dc.renderer.data)
}

func TestDispatch_SortsMessagesAndUsesSupplement(t *testing.T) {
	t.Parallel()

	supplement := handler.FormSupplementFunc(func(_ context.Context, id string, _ url.Values) (handler.Data, error) {
		return handler.Data{"loans": []string{"loan-of-" + id}}, nil
	})
	cause := apperror.Uniqueness(errors.New("duplicate key"), `"Library ID" must be unique`, `"Email" must be unique`)
	dc := newDispatchCase("POST /patrons/{id}", failWith(cause),
		handler.WithErrorView("patron/detail"), handler.WithSupplement(supplement))

	rec := dc.serve(formRequest(http.MethodPost, "/patrons/3", url.Values{"email": {"a@b.c"}}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	values := dc.renderer.data["dataValues"].(handler.Data)
	assert.Equal(t, "3", values["id"])
	assert.Equal(t, "a@b.c", values["email"])
	assert.Equal(t, []string{"loan-of-3"}, values["loans"])
	assert.Equal(t, []string{`"Email" must be unique`, `"Library ID" must be unique`}, dc.renderer.data["errors"])
}

func TestDispatch_CustomIDParam(t *testing.T) {
	t.Parallel()

	dc := newDispatchCase("POST /loans/{loan}/return", failWith(apperror.Validation("x")),
		handler.WithErrorView("loan/return"),
		handler.WithIDParam("loan"),
		handler.WithPathParam(func(r *http.Request, name string) string { return "custom-" + r.PathValue(name) }))

	dc.serve(formRequest(http.MethodPost, "/loans/5/return", url.Values{}))
	assert.Equal(t, "custom-5", dc.renderer.data["dataValues"].(handler.Data)["id"])
}

func TestDispatch_RecoveryFailureForwardsOriginal(t *testing.T) {
	t.Parallel()

	original := apperror.Validation(`"Title" is required`)

	tests := []struct {
		name       string
		supplement handler.FormSupplement
	}{
		{
			name: "supplement error",
			supplement: handler.FormSupplementFunc(func(context.Context, string, url.Values) (handler.Data, error) {
				return nil, errors.New("connection reset")
			}),
		},
		{
			name: "supplement panic",
			supplement: handler.FormSupplementFunc(func(context.Context, string, url.Values) (handler.Data, error) {
				panic("nil map")
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dc := newDispatchCase("POST /books/new", failWith(original),
				handler.WithErrorView("book/new"), handler.WithSupplement(tt.supplement))

			rec := dc.serve(formRequest(http.MethodPost, "/books/new", url.Values{"title": {""}}))

			assert.Equal(t, http.StatusTeapot, rec.Code)
			require.Len(t, dc.errors.errs, 1)
			assert.Same(t, original, dc.errors.errs[0])
			assert.Zero(t, dc.renderer.calls)
		})
	}

	t.Run("view failure", func(t *testing.T) {
		t.Parallel()

		errs := &errorRecorder{}
		broken := handler.RendererFunc(func(string, handler.Data) (templ.Component, error) {
			return nil, errors.New("unknown view")
		})
		h := handler.Wrap(
			handler.Dispatch(failWith(original), handler.WithRenderer(broken), handler.WithErrorView("missing"),
				handler.WithDispatchLogger(logger.Discard())),
			handler.WithErrorHandler[handler.Context, bookInput](errs.handle),
		)
		h(httptest.NewRecorder(), formRequest(http.MethodPost, "/books/new", url.Values{}))

		require.Len(t, errs.errs, 1)
		assert.Same(t, original, errs.errs[0])
	})
}

func TestDispatch_Forwards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		opts []handler.DispatchOption
	}{
		{name: "not found", err: apperror.NotFound("Book", 9), opts: []handler.DispatchOption{handler.WithErrorView("book/detail")}},
		{name: "already returned", err: apperror.AlreadyReturned(2, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)), opts: []handler.DispatchOption{handler.WithErrorView("loan/return")}},
		{name: "fatal", err: errors.New("disk full"), opts: []handler.DispatchOption{handler.WithErrorView("book/new")}},
		{name: "validation without error view", err: apperror.Validation("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dc := newDispatchCase("POST /x", failWith(tt.err), tt.opts...)
			dc.serve(formRequest(http.MethodPost, "/x", url.Values{"title": {"t"}}))

			require.Len(t, dc.errors.errs, 1)
			assert.ErrorIs(t, dc.errors.errs[0], tt.err)
			assert.Zero(t, dc.renderer.calls)
		})
	}
}

func TestDispatch_NilResponse(t *testing.T) {
	t.Parallel()

	dc := newDispatchCase("GET /x", func(handler.Context, bookInput) (handler.Response, error) { return nil, nil })
	dc.serve(httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Len(t, dc.errors.errs, 1)
	assert.ErrorIs(t, dc.errors.errs[0], handler.ErrNilResponse)
}
