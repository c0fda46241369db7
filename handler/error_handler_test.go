package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/library/handler"
	"github.com/dmitrymomot/library/pkg/apperror"
	"github.com/dmitrymomot/library/pkg/environment"
	"github.com/dmitrymomot/library/pkg/logger"
	"github.com/dmitrymomot/library/pkg/requestid"
)

func recordingPage(got *handler.ErrorPageParams) func(handler.ErrorPageParams) templ.Component {
	return func(p handler.ErrorPageParams) templ.Component {
		*got = p
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, "Error: %s", p.Error)
			return err
		})
	}
}

func mockErrorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<div id=\"toast\">"+p.Type+": "+p.Message+"</div>")
		return err
	})
}

func TestErrorHandler_Statuses(t *testing.T) {
	t.Parallel()

	returned := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "fatal", err: errors.New("relation does not exist"), status: http.StatusInternalServerError, message: apperror.GenericMessage},
		{name: "entity not found", err: apperror.NotFound("Book", 42), status: http.StatusNotFound, message: "Book with id 42 does not exist"},
		{name: "route not found", err: apperror.RouteNotFound("/nope"), status: http.StatusNotFound, message: "Page /nope does not exist"},
		{name: "already returned", err: fmt.Errorf("return: %w", apperror.AlreadyReturned(7, returned)), status: http.StatusForbidden, message: "Loan with id 7 has been returned on 2024-03-05"},
		{name: "validation", err: apperror.Validation("b", "a"), status: http.StatusUnprocessableEntity, message: "a; b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var params handler.ErrorPageParams
			eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{ErrorPage: recordingPage(&params)})

			req := httptest.NewRequest(http.MethodGet, "/books/42", nil)
			req = req.WithContext(requestid.WithContext(req.Context(), "req-1"))
			rec := httptest.NewRecorder()
			eh(handler.NewContext(rec, req), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "Error: "+tt.message, rec.Body.String())
			assert.Equal(t, tt.status, params.StatusCode)
			assert.Equal(t, "req-1", params.RequestID)
			assert.Equal(t, "/books/42", params.RetryURL)
		})
	}
}

func TestErrorHandler_Detail(t *testing.T) {
	t.Parallel()

	cause := errors.New("pq: relation \"books\" does not exist")

	for _, env := range []environment.Environment{environment.Development, environment.Production} {
		t.Run(string(env), func(t *testing.T) {
			t.Parallel()

			var params handler.ErrorPageParams
			eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{ErrorPage: recordingPage(&params)})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(environment.WithContext(req.Context(), env))
			eh(handler.NewContext(httptest.NewRecorder(), req), cause)

			if env == environment.Production {
				assert.Empty(t, params.Detail)
			} else {
				assert.Equal(t, cause.Error(), params.Detail)
			}
		})
	}
}

func TestErrorHandler_LogLevels(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug))
	eh := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{})

	eh(handler.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/a", nil)), apperror.NotFound("Patron", 1))
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"kind":"not_found"`)

	buf.Reset()
	rec := httptest.NewRecorder()
	eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/a", nil)), errors.New("boom"))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "falls back to plain text without an error page")
	assert.Contains(t, rec.Body.String(), apperror.GenericMessage)
}

func TestErrorHandler_DataStarToast(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{ErrorToast: mockErrorToast})

	req := httptest.NewRequest(http.MethodPost, "/loans/1/return", nil)
	req.Header.Set("Accept", "text/event-stream")
	rec := httptest.NewRecorder()
	eh(handler.NewContext(rec, req), apperror.NotFound("Loan", 1))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "warning: Loan with id 1 does not exist")
	assert.Contains(t, body, "#toast-container")
}
