package handler

import "net/http"

// errorResponse hands its error to the Wrap error handler when rendered.
type errorResponse struct {
	err error
}

func (e errorResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return e.err
}

func (e errorResponse) Unwrap() error { return e.err }

// Fail forwards err to the terminal error handler. Nothing is written by the
// response itself, so the error handler is the only writer.
func Fail(err error) Response {
	if err == nil {
		err = ErrNilResponse
	}
	return errorResponse{err: err}
}
