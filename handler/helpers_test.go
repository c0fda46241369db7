package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/library/handler"
)

// captureRenderer records the last view it resolved.
type captureRenderer struct {
	mu    sync.Mutex
	calls int
	view  string
	data  handler.Data
}

func (c *captureRenderer) View(name string, data handler.Data) (templ.Component, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.view = name
	c.data = data
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "view:"+name)
		return err
	}), nil
}

// errorRecorder is an error handler counting its invocations.
type errorRecorder struct {
	mu   sync.Mutex
	errs []error
}

func (e *errorRecorder) handle(ctx handler.Context, err error) {
	e.mu.Lock()
	e.errs = append(e.errs, err)
	e.mu.Unlock()
	ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
