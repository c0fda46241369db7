package validator

import (
	"net/mail"
	"strconv"
	"strings"
)

// ValidEmail validates that a string is a valid email address using RFC 5322.
// A bare address is required: display names are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			v := strings.TrimSpace(value)
			if v == "" {
				return false
			}

			addr, err := mail.ParseAddress(v)
			if err != nil || addr.Address != v {
				return false
			}

			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidInteger validates that a string is a base 10 integer, sign allowed.
func ValidInteger(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := strconv.Atoi(strings.TrimSpace(value))
			return err == nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a number",
			TranslationKey: "validation.integer",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
