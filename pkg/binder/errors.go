package binder

import "errors"

var (
	// ErrBinderNotApplicable is returned when the request carries nothing the
	// binder understands, e.g. a form binder on a GET request. Callers skip it.
	ErrBinderNotApplicable  = errors.New("binder not applicable to request")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrFailedToParseQuery   = errors.New("failed to parse query parameters")
	ErrFailedToParsePath    = errors.New("failed to parse path parameters")
	ErrInvalidTarget        = errors.New("bind target must be a non-nil pointer to struct")
)
