package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// Data is the payload handed to a view.
type Data map[string]any

// Renderer resolves a named view with its data into a component.
type Renderer interface {
	View(name string, data Data) (templ.Component, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(name string, data Data) (templ.Component, error)

func (f RendererFunc) View(name string, data Data) (templ.Component, error) { return f(name, data) }

// Render instructs the renderer to draw view with data and respond 200.
//
//	return handler.Render(s.views, "book/index", handler.Data{"books": books}), nil
func Render(renderer Renderer, view string, data Data) Response {
	return RenderWithStatus(renderer, view, data, http.StatusOK)
}

// RenderWithStatus is Render with an explicit status code.
func RenderWithStatus(renderer Renderer, view string, data Data, status int) Response {
	return viewResponse{renderer: renderer, view: view, data: data, status: status}
}

type viewResponse struct {
	renderer Renderer
	view     string
	data     Data
	status   int
}

func (v viewResponse) Render(w http.ResponseWriter, r *http.Request) error {
	resp, err := v.prerender(r.Context())
	if err != nil {
		return err
	}
	return resp.Render(w, r)
}

// prerender executes the view into memory. Nothing reaches the client when
// the view fails, so the error handler can still answer cleanly.
func (v viewResponse) prerender(ctx context.Context) (htmlResponse, error) {
	if v.renderer == nil {
		return htmlResponse{}, ErrNoRenderer
	}
	component, err := v.renderer.View(v.view, v.data)
	if err != nil {
		return htmlResponse{}, err
	}
	return renderComponent(ctx, component, v.status)
}

func renderComponent(ctx context.Context, component templ.Component, status int, opts ...datastar.PatchElementOption) (htmlResponse, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return htmlResponse{}, err
	}
	return htmlResponse{status: status, body: buf.Bytes(), options: opts}, nil
}

// htmlResponse is an already rendered document or fragment.
type htmlResponse struct {
	status  int
	body    []byte
	options []datastar.PatchElementOption
}

// Render patches the fragment via SSE for DataStar, writes HTML otherwise.
// SSE responses always carry status 200.
func (h htmlResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return patchSSE(w, r, string(h.body), h.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(h.status)
	// Headers are sent; a failed write means the client went away.
	_, _ = w.Write(h.body)
	return nil
}
