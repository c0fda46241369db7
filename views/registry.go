package views

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/library/handler"
)

// all: keeps the "_" prefixed fragments.
//
//go:embed all:templates
var templates embed.FS

var (
	ErrUnknownView   = errors.New("views: unknown view")
	ErrParseTemplate = errors.New("views: failed to parse template")
)

const (
	layoutFile   = "templates/layout.html"
	partialsGlob = "templates/partials/*.html"
	// error and toast are drawn by the error reporter, not by handlers.
	errorView = "error"
	toastView = "toast"
)

// Registry resolves view names such as "book/index" to components.
// It is immutable after New and safe for concurrent use.
type Registry struct {
	views map[string]*template.Template
}

var _ handler.Renderer = (*Registry)(nil)

// New parses every embedded view. Each view is its own template set made of
// the layout, the shared partials and the view file.
func New() (*Registry, error) {
	return newRegistry(templates)
}

func newRegistry(fsys fs.FS) (*Registry, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys, layoutFile, partialsGlob)
	if err != nil {
		return nil, errors.Join(ErrParseTemplate, err)
	}

	r := &Registry{views: make(map[string]*template.Template)}
	err = fs.WalkDir(fsys, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == layoutFile || strings.HasPrefix(p, "templates/partials/") ||
			strings.HasPrefix(d.Name(), "_") || path.Ext(p) != ".html" {
			return nil
		}
		// "_" prefixed files are fragments shared by the views of a directory.
		patterns := []string{p}
		shared := path.Join(path.Dir(p), "_*.html")
		if matches, _ := fs.Glob(fsys, shared); len(matches) > 0 {
			patterns = append(patterns, shared)
		}
		t, err := template.Must(base.Clone()).ParseFS(fsys, patterns...)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")
		r.views[name] = t
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrParseTemplate, err)
	}
	return r, nil
}

// MustNew is New that panics on error.
func MustNew() *Registry {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// View implements handler.Renderer. The component renders the full page.
func (r *Registry) View(name string, data handler.Data) (templ.Component, error) {
	return r.component(name, "layout", map[string]any(data))
}

// Has reports whether the view exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.views[name]
	return ok
}

func (r *Registry) component(name, entry string, data any) (templ.Component, error) {
	t, ok := r.views[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownView, name)
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, entry, data)
	}), nil
}

// ErrorPage renders the error page for the terminal error reporter.
func (r *Registry) ErrorPage(p handler.ErrorPageParams) templ.Component {
	return r.mustComponent(errorView, "layout", map[string]any{
		"title":   "Error",
		"error":   p,
		"heading": headingFor(p.StatusCode),
	})
}

// ErrorToast renders the toast fragment patched into DataStar pages.
func (r *Registry) ErrorToast(p handler.ErrorToastParams) templ.Component {
	return r.mustComponent(toastView, "toast", p)
}

func (r *Registry) mustComponent(name, entry string, data any) templ.Component {
	c, err := r.component(name, entry, data)
	if err != nil {
		// error views are embedded and checked by New callers
		return templ.ComponentFunc(func(context.Context, io.Writer) error { return err })
	}
	return c
}

func headingFor(status int) string {
	switch status {
	case 403:
		return "Forbidden"
	case 404:
		return "Page Not Found"
	case 400, 422:
		return "Bad Request"
	default:
		return "Server Error"
	}
}
