package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/library/pkg/db"
	"github.com/dmitrymomot/library/pkg/environment"
	"github.com/dmitrymomot/library/pkg/httpserver"
	"github.com/dmitrymomot/library/pkg/logger"
	"github.com/dmitrymomot/library/pkg/metrics"
	"github.com/dmitrymomot/library/pkg/requestid"
	"github.com/dmitrymomot/library/svc/library"
	"github.com/dmitrymomot/library/svc/library/sqlstore"
	"github.com/dmitrymomot/library/views"
)

func testRouter(t *testing.T, env environment.Environment, checks ...httpserver.HealthCheck) http.Handler {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, db.Config{Driver: db.DriverSQLite, URL: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(ctx, conn.DB, conn.Dialect, sqlstore.Migrations(conn.Dialect), logger.Discard()))

	return newRouter(routerDeps{
		env:     env,
		log:     logger.Discard(),
		svc:     library.NewService(sqlstore.New(conn.DB, conn.Dialect)),
		views:   views.MustNew(),
		metrics: metrics.New("library", nil),
		checks:  append([]httpserver.HealthCheck{db.Healthcheck(conn.DB)}, checks...),
	})
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter(t *testing.T) {
	t.Parallel()
	h := testRouter(t, environment.Development)

	t.Run("root redirects to books", func(t *testing.T) {
		rec := get(h, "/")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/books", rec.Header().Get("Location"))
		assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	})

	t.Run("unknown route renders the error page", func(t *testing.T) {
		rec := get(h, "/shelves/3")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Page /shelves/3 does not exist")
		assert.Contains(t, rec.Body.String(), "Request ID: "+rec.Header().Get(requestid.Header))
	})

	t.Run("modules are mounted", func(t *testing.T) {
		for _, path := range []string{"/books", "/books/overdue", "/patrons", "/loans/checked-out", "/loans/new"} {
			assert.Equal(t, http.StatusOK, get(h, path).Code, path)
		}
	})

	t.Run("health", func(t *testing.T) {
		rec := get(h, "/health/live")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ALIVE", rec.Body.String())
		rec = get(h, "/health/ready")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		rec := get(h, "/metrics")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "library_http_requests_total")
		assert.Contains(t, body, `status="302"`)
	})
}

func TestRouter_Production(t *testing.T) {
	t.Parallel()
	h := testRouter(t, environment.Production, func(context.Context) error { return errors.New("down") })

	rec := get(h, "/books/42")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<pre>")

	assert.Equal(t, http.StatusServiceUnavailable, get(h, "/health/ready").Code)
}
