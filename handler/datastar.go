package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// datastarRequestHeader is "true" on every request of the DataStar client.
	datastarRequestHeader = "Datastar-Request"
	// datastarQueryParam carries the signals of GET requests.
	datastarQueryParam = "datastar"
)

// IsDataStar reports whether r expects an SSE answer: the DataStar request
// header, an event stream Accept header or signals in the "datastar" query.
func IsDataStar(r *http.Request) bool {
	switch {
	case r.Header.Get(datastarRequestHeader) == "true":
		return true
	case strings.Contains(r.Header.Get("Accept"), "text/event-stream"):
		return true
	default:
		return r.URL.Query().Has(datastarQueryParam)
	}
}

// patchSSE sends html as an element patch. SSE streams always start with 200.
func patchSSE(w http.ResponseWriter, r *http.Request, html string, opts ...datastar.PatchElementOption) error {
	return datastar.NewSSE(w, r).PatchElements(html, opts...)
}

// redirectSSE asks the DataStar client to navigate to url.
func redirectSSE(w http.ResponseWriter, r *http.Request, url string) error {
	return datastar.NewSSE(w, r).Redirect(url)
}
