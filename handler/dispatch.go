package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/library/pkg/apperror"
	"github.com/dmitrymomot/library/pkg/logger"
)

// Action runs the request against the persistence layer and either returns
// the response to send or the error that stopped it.
type Action[C Context, R any] func(ctx C, req R) (Response, error)

// Payload keys of a validation re-render.
const (
	DataValuesKey = "dataValues"
	ErrorsKey     = "errors"
)

// DispatchOption configures Dispatch.
type DispatchOption func(*dispatchConfig)

type dispatchConfig struct {
	errorView  string
	supplement FormSupplement
	renderer   Renderer
	idParam    string
	pathParam  func(r *http.Request, name string) string
	log        *slog.Logger
}

// WithErrorView sets the view re-rendered when the action fails validation.
// Without it validation failures are forwarded like any other error.
func WithErrorView(name string) DispatchOption {
	return func(c *dispatchConfig) { c.errorView = name }
}

// WithSupplement sets the form supplement used when re-rendering the error view.
func WithSupplement(s FormSupplement) DispatchOption {
	return func(c *dispatchConfig) { c.supplement = s }
}

func WithRenderer(r Renderer) DispatchOption {
	return func(c *dispatchConfig) { c.renderer = r }
}

// WithIDParam sets the route parameter holding the edited entity id. Default "id".
func WithIDParam(name string) DispatchOption {
	return func(c *dispatchConfig) {
		if name != "" {
			c.idParam = name
		}
	}
}

// WithPathParam sets the route parameter extractor, e.g. chi.URLParam.
// Default r.PathValue.
func WithPathParam(f func(r *http.Request, name string) string) DispatchOption {
	return func(c *dispatchConfig) {
		if f != nil {
			c.pathParam = f
		}
	}
}

func WithDispatchLogger(l *slog.Logger) DispatchOption {
	return func(c *dispatchConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Dispatch turns an Action into a HandlerFunc that resolves every request
// to exactly one outcome:
//
//   - succeeded: the action's response is returned unchanged;
//   - recovered: a validation failure with an error view configured
//     re-renders that view with {dataValues, errors} and status 422;
//   - forwarded: any other failure, including a failed recovery, reaches
//     the Wrap error handler with the original error.
func Dispatch[C Context, R any](action Action[C, R], opts ...DispatchOption) HandlerFunc[C, R] {
	cfg := &dispatchConfig{
		idParam:   IDKey,
		pathParam: func(r *http.Request, name string) string { return r.PathValue(name) },
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(ctx C, req R) Response {
		resp, err := action(ctx, req)
		if err == nil {
			if resp == nil {
				return Fail(ErrNilResponse)
			}
			return resp
		}

		classified := apperror.Classify(err)
		if classified.Recoverable() && cfg.errorView != "" {
			if recovered, ok := cfg.recoverForm(ctx, classified); ok {
				return recovered
			}
		}
		return Fail(err)
	}
}

// recoverForm rebuilds the submission and prerenders the error view.
// ok is false when any step fails or panics; the failure is logged and the
// caller forwards the original error.
func (c *dispatchConfig) recoverForm(ctx Context, classified apperror.Classified) (resp Response, ok bool) {
	r := ctx.Request()
	attrs := []any{logger.Component("dispatcher"), logger.View(c.errorView), logger.Error(classified.Cause)}

	defer func() {
		if p := recover(); p != nil {
			c.log.ErrorContext(ctx, "form recovery failed",
				append(attrs, slog.Any("rebuild_error", fmt.Errorf("%w: %v", ErrRebuildPanic, p)))...)
			resp, ok = nil, false
		}
	}()

	if err := r.ParseForm(); err != nil {
		c.log.ErrorContext(ctx, "form recovery failed", append(attrs, slog.Any("rebuild_error", err))...)
		return nil, false
	}

	values, err := Rebuild(ctx, r.PostForm, c.pathParam(r, c.idParam), c.supplement)
	if err != nil {
		c.log.ErrorContext(ctx, "form recovery failed", append(attrs, slog.Any("rebuild_error", err))...)
		return nil, false
	}

	view := viewResponse{
		renderer: c.renderer,
		view:     c.errorView,
		data:     Data{DataValuesKey: values, ErrorsKey: classified.Messages},
		status:   http.StatusUnprocessableEntity,
	}
	rendered, err := view.prerender(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "form recovery failed", append(attrs, slog.Any("rebuild_error", err))...)
		return nil, false
	}

	c.log.DebugContext(ctx, "form recovered", logger.Component("dispatcher"), logger.View(c.errorView), logger.Outcome("recovered"))
	return rendered, true
}
