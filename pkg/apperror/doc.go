// Package apperror defines the failure taxonomy of the request outcome pipeline.
//
// Failures are tagged at the point where they happen: lookup guards raise
// NotFound, the loan return guard raises AlreadyReturned, the domain layer
// wraps validator failures into Validation and the persistence adapter wraps
// unique constraint violations into Uniqueness. Anything else is Fatal.
//
// Classify turns any error into a Classified value consumed by the handler
// dispatcher and the terminal error reporter:
//
//	c := apperror.Classify(err)
//	if c.Recoverable() {
//		// re-render the form with c.Messages
//	}
package apperror
