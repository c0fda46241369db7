package library

import (
	"strconv"
	"strings"

	"github.com/dmitrymomot/library/pkg/apperror"
	"github.com/dmitrymomot/library/pkg/validator"
)

// validate applies rules and wraps failures into an apperror validation
// error whose messages carry the field labels.
func validate(labels map[string]string, rules ...validator.Rule) error {
	err := validator.Apply(rules...)
	if err == nil {
		return nil
	}
	ve := validator.ExtractValidationErrors(err)
	if ve == nil {
		return apperror.Fatal(err)
	}
	return apperror.Validation(ve.Messages(labels)...)
}

func required(field, value string) validator.Rule {
	return validator.RequiredString(field, value)
}

func optionalInteger(field, value string) validator.Rule {
	return validator.When(trim(value) != "", validator.ValidInteger(field, value))
}

func optionalDate(field, value string) validator.Rule {
	return validator.When(trim(value) != "", validator.ValidDate(field, value))
}

func trim(s string) string { return strings.TrimSpace(s) }

func atoi(s string) int {
	n, _ := strconv.Atoi(trim(s))
	return n
}
