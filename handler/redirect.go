package handler

import "net/http"

type redirectResponse struct {
	url  string
	code int
}

// Render issues an HTTP redirect, or a client side redirect over SSE for DataStar.
func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	if IsDataStar(req) {
		return redirectSSE(w, req, r.url)
	}
	http.Redirect(w, req, r.url, r.code)
	return nil
}

// Redirect responds 303 See Other, used after a successful form submission.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// RedirectWithCode responds with the given 3xx code.
func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}
