package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Kind is a failure class of the request outcome pipeline.
type Kind uint8

const (
	// KindFatal covers everything unexpected: connectivity failures,
	// programming errors, broken invariants.
	KindFatal Kind = iota
	// KindNotFound is raised by lookup guards when an entity or route is absent.
	KindNotFound
	// KindValidation is a recoverable field validation failure,
	// uniqueness conflicts included.
	KindValidation
	// KindAlreadyReturned is raised when an operation requires an outstanding
	// loan but the loan has already been returned.
	KindAlreadyReturned
)

// String returns a name of the kind suitable for logs and metrics labels.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindAlreadyReturned:
		return "already_returned"
	default:
		return "fatal"
	}
}

// DateLayout is the textual date format used in user-facing messages.
const DateLayout = "2006-01-02"

// Error is the tagged error produced at the point of failure.
// The persistence adapter and the domain guards wrap raw failures into it
// before they reach the handlers.
type Error struct {
	Kind     Kind
	Status   int      // HTTP status used by the terminal error reporter
	Message  string   // human-readable summary
	Messages []string // individual field messages, validation only
	Unique   bool     // validation failure caused by a uniqueness conflict
	Entity   string   // entity type, not-found only
	ID       string   // entity identifier, not-found and already-returned only
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == KindValidation && len(e.Messages) > 0 {
		return e.Message + ": " + strings.Join(e.Messages, "; ")
	}
	if e.Cause != nil && e.Message == "" {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NotFound is raised by a lookup guard when the entity with the given id does not exist.
func NotFound(entity string, id any) *Error {
	sid := fmt.Sprint(id)
	return &Error{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s with id %s does not exist", entity, sid),
		Entity:  entity,
		ID:      sid,
	}
}

// RouteNotFound is raised when no route matches the request path.
func RouteNotFound(path string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("Page %s does not exist", path),
	}
}

// Validation wraps ordinary field validation messages.
func Validation(messages ...string) *Error {
	return &Error{
		Kind:     KindValidation,
		Status:   http.StatusUnprocessableEntity,
		Message:  "validation failed",
		Messages: messages,
	}
}

// Uniqueness wraps messages produced by a uniqueness conflict.
// It classifies the same way as Validation.
func Uniqueness(cause error, messages ...string) *Error {
	return &Error{
		Kind:     KindValidation,
		Status:   http.StatusConflict,
		Message:  "uniqueness conflict",
		Messages: messages,
		Unique:   true,
		Cause:    cause,
	}
}

// AlreadyReturned is raised when a returned loan is used as an outstanding one.
func AlreadyReturned(id any, returnedOn time.Time) *Error {
	sid := fmt.Sprint(id)
	return &Error{
		Kind:    KindAlreadyReturned,
		Status:  http.StatusForbidden,
		Message: fmt.Sprintf("Loan with id %s has been returned on %s", sid, returnedOn.Format(DateLayout)),
		Entity:  "Loan",
		ID:      sid,
	}
}

// Fatal wraps an unexpected error. Nil causes yield nil.
func Fatal(cause error) *Error {
	if cause == nil {
		return nil
	}
	var e *Error
	if errors.As(cause, &e) && e.Kind == KindFatal {
		return e
	}
	return &Error{
		Kind:   KindFatal,
		Status: http.StatusInternalServerError,
		Cause:  cause,
	}
}

// BadRequest wraps a request that could not be decoded at all.
// It is fatal for the request but reported with status 400.
func BadRequest(cause error) *Error {
	return &Error{
		Kind:    KindFatal,
		Status:  http.StatusBadRequest,
		Message: "Malformed request",
		Cause:   cause,
	}
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
