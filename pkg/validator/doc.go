// Package validator provides small declarative validation rules for form input.
//
// Every exported rule constructor returns a Rule: a Check closure and the
// ValidationError reported when the check fails. Apply evaluates rules and
// aggregates failures into ValidationErrors, which implements error.
//
//	err := validator.Apply(
//		validator.Required("title", in.Title),
//		validator.When(in.Year != "", validator.ValidInteger("first_published", in.Year)),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		msgs := verrs.Messages(map[string]string{"title": "Title"})
//		// msgs[0] == `"Title" is required`
//	}
//
// Rule messages are predicates meant to follow a field label, so
// Messages can render them as complete sentences.
package validator
