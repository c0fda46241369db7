package apperror

import (
	"errors"
	"net/http"
	"slices"
)

// GenericMessage is shown to users instead of the text of fatal errors.
const GenericMessage = "An error occurred processing your request"

// Classified is the outcome of classifying a failed action.
type Classified struct {
	Kind     Kind
	Status   int
	Message  string
	Messages []string // sorted, validation only
	Entity   string
	ID       string
	Cause    error
}

// Recoverable reports whether the failure can be handled by re-rendering the form.
func (c Classified) Recoverable() bool {
	return c.Kind == KindValidation
}

// Classify turns an error returned by an action into a Classified value.
// It never mutates err, so classifying the same error twice yields equal values.
func Classify(err error) Classified {
	var e *Error
	if !errors.As(err, &e) {
		return Classified{
			Kind:    KindFatal,
			Status:  http.StatusInternalServerError,
			Message: GenericMessage,
			Cause:   err,
		}
	}

	c := Classified{
		Kind:    e.Kind,
		Status:  e.Status,
		Message: e.Message,
		Entity:  e.Entity,
		ID:      e.ID,
		Cause:   err,
	}
	if c.Status == 0 {
		c.Status = http.StatusInternalServerError
	}

	switch e.Kind {
	case KindValidation:
		c.Messages = slices.Clone(e.Messages)
		slices.Sort(c.Messages)
	case KindFatal:
		if c.Status >= http.StatusInternalServerError || c.Message == "" {
			c.Message = GenericMessage
		}
	}

	return c
}
