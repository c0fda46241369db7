// Package handler implements the request outcome pipeline on top of typed
// HTTP handlers.
//
// Wrap adapts a HandlerFunc[C, R] to http.HandlerFunc: it builds the request
// context, applies binders, runs the handler and renders its Response. Any
// error produced on the way is reported once by the configured ErrorHandler.
//
// Dispatch adapts an Action, a handler that may fail, and decides the single
// outcome of the request:
//
//	create := handler.Dispatch(s.createBook,
//		handler.WithRenderer(s.views),
//		handler.WithErrorView("book/new"),
//	)
//
// On a validation failure the submission is rebuilt with Rebuild, merged
// with the optional FormSupplement, and the error view is rendered with
//
//	{"dataValues": {...submitted fields, "id": ...}, "errors": ["sorted", "messages"]}
//
// Everything else is forwarded with Fail to the error reporter created by
// NewErrorHandler, which classifies the error with apperror and renders the
// error page (or a DataStar toast).
//
// Responses prerender views into memory, so a failing template never leaves
// a half written page behind.
package handler
