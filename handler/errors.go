package handler

import "errors"

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response.
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrNoRenderer is returned by view responses built without a Renderer.
	ErrNoRenderer = errors.New("no renderer configured")
	// ErrRebuildPanic wraps a panic recovered while rebuilding a form.
	ErrRebuildPanic = errors.New("form rebuild panicked")
)
