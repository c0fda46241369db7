package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption is an alias for datastar's PatchElementOption.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the selector the fragment is patched into.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the fragment is merged into the DOM.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

type templResponse struct {
	component templ.Component
	status    int
	options   []TemplOption
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	resp, err := renderComponent(r.Context(), t.component, t.status, t.options...)
	if err != nil {
		return err
	}
	return resp.Render(w, r)
}

// Templ responds with a templ component. For DataStar requests the component
// is patched via SSE with the given options.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{component: component, status: http.StatusOK, options: opts}
}

// TemplWithStatus is Templ with an explicit status code for regular requests.
func TemplWithStatus(component templ.Component, status int, opts ...TemplOption) Response {
	return templResponse{component: component, status: status, options: opts}
}
