package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/library/handler"
	"github.com/dmitrymomot/library/modules/books"
	"github.com/dmitrymomot/library/modules/loans"
	"github.com/dmitrymomot/library/modules/patrons"
	"github.com/dmitrymomot/library/modules/web"
	"github.com/dmitrymomot/library/pkg/apperror"
	"github.com/dmitrymomot/library/pkg/clientip"
	"github.com/dmitrymomot/library/pkg/environment"
	"github.com/dmitrymomot/library/pkg/httpserver"
	"github.com/dmitrymomot/library/pkg/metrics"
	"github.com/dmitrymomot/library/pkg/requestid"
	"github.com/dmitrymomot/library/svc/library"
	"github.com/dmitrymomot/library/views"
)

type routerDeps struct {
	env     environment.Environment
	log     *slog.Logger
	svc     *library.Service
	views   *views.Registry
	metrics *metrics.HTTP // nil disables /metrics
	checks  []httpserver.HealthCheck
	// ipHeaders overrides clientip.DefaultHeaders.
	ipHeaders []string
}

func newRouter(d routerDeps) http.Handler {
	errorHandler := handler.NewErrorHandler(d.log, handler.ErrorHandlerConfig{
		ErrorPage:  d.views.ErrorPage,
		ErrorToast: d.views.ErrorToast,
	})
	kit := web.Kit{Views: d.views, ErrorHandler: errorHandler, Logger: d.log}

	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware(d.ipHeaders...), environment.Middleware(d.env))
	if d.metrics != nil {
		r.Use(d.metrics.Middleware)
		r.Handle("/metrics", d.metrics.Handler())
	}

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(d.log, d.checks...))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, books.Path, http.StatusFound)
	})
	r.Mount(books.Path, books.New(d.svc, kit).Handle())
	r.Mount(patrons.Path, patrons.New(d.svc, kit).Handle())
	r.Mount(loans.Path, loans.New(d.svc, kit).Handle())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler(handler.NewContext(w, r), apperror.RouteNotFound(r.URL.Path))
	})

	return r
}
