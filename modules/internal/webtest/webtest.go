// Package webtest wires the library modules against an in-memory SQLite
// database for HTTP tests.
package webtest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/library/handler"
	"github.com/dmitrymomot/library/modules/web"
	"github.com/dmitrymomot/library/pkg/db"
	"github.com/dmitrymomot/library/pkg/logger"
	"github.com/dmitrymomot/library/svc/library"
	"github.com/dmitrymomot/library/svc/library/sqlstore"
	"github.com/dmitrymomot/library/views"
)

// Today is the clock of services returned by Service.
var Today = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

// Service returns a library service over a fresh migrated database.
func Service(t *testing.T) *library.Service {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, db.Config{Driver: db.DriverSQLite, URL: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(ctx, conn.DB, conn.Dialect, sqlstore.Migrations(conn.Dialect), logger.Discard()))

	return library.NewService(sqlstore.New(conn.DB, conn.Dialect), library.WithClock(func() time.Time { return Today }))
}

// Kit returns a module kit with the embedded views and the error page.
func Kit(t *testing.T) web.Kit {
	t.Helper()
	v, err := views.New()
	require.NoError(t, err)
	log := logger.Discard()
	return web.Kit{
		Views: v,
		ErrorHandler: handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
			ErrorPage:  v.ErrorPage,
			ErrorToast: v.ErrorToast,
		}),
		Logger: log,
	}
}

// Mount serves h under prefix.
func Mount(prefix string, h http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Mount(prefix, h)
	return r
}

// Get performs a GET request against h.
func Get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// Post submits form to h as urlencoded data.
func Post(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
