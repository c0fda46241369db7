package validator

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted by date rules.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date in DateLayout, in UTC.
func ParseDate(value string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidDate validates that a string is a calendar date in DateLayout.
func ValidDate(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, ok := ParseDate(value)
			return ok
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid date",
			TranslationKey: "validation.date",
			TranslationValues: map[string]any{
				"field":  field,
				"layout": DateLayout,
			},
		},
	}
}

// DateNotBefore validates that value is the same day as min or later.
// The check passes when either date cannot be parsed, ValidDate reports that case.
func DateNotBefore(field, value, min, minLabel string) Rule {
	return Rule{
		Check: func() bool {
			v, ok := ParseDate(value)
			if !ok {
				return true
			}
			m, ok := ParseDate(min)
			if !ok {
				return true
			}
			return !v.Before(m)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be on or after " + minLabel,
			TranslationKey: "validation.date_not_before",
			TranslationValues: map[string]any{
				"field": field,
				"min":   minLabel,
			},
		},
	}
}
