package validator

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Rule is a deferred check and the failure reported when it does not hold.
type Rule struct {
	Check   func() bool
	Failure Failure
}

// Apply evaluates rules in order and returns the failures of those that do not hold.
func Apply(rules ...Rule) []Failure {
	var failures []Failure
	for _, r := range rules {
		if r.Check == nil || r.Check() {
			continue
		}
		failures = append(failures, r.Failure)
	}
	return failures
}

// Must reports message for field when ok is false.
func Must(field string, ok bool, message string) Rule {
	return Rule{
		Check:   func() bool { return ok },
		Failure: Failure{Field: field, Message: message, Key: "validation.custom"},
	}
}

// Required checks that value is not blank.
func Required(field, value string) Rule {
	return Rule{
		Check:   func() bool { return strings.TrimSpace(value) != "" },
		Failure: Failure{Field: field, Message: "field is required", Key: "validation.required"},
	}
}

// RequiredID checks that id is not the nil UUID.
func RequiredID(field string, id uuid.UUID) Rule {
	return Rule{
		Check:   func() bool { return id != uuid.Nil },
		Failure: Failure{Field: field, Message: "field is required", Key: "validation.required"},
	}
}

// MinLen checks that value has at least min characters.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check:   func() bool { return utf8.RuneCountInString(value) >= min },
		Failure: Failure{Field: field, Message: fmt.Sprintf("must be at least %d characters long", min), Key: "validation.min_length"},
	}
}

// MaxLen checks that value has at most max characters.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check:   func() bool { return utf8.RuneCountInString(value) <= max },
		Failure: Failure{Field: field, Message: fmt.Sprintf("must be at most %d characters long", max), Key: "validation.max_length"},
	}
}

// Email checks that value is a bare e-mail address. Empty values pass; combine with Required.
func Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Address == value
		},
		Failure: Failure{Field: field, Message: "must be a valid email address", Key: "validation.email"},
	}
}

// OneOf checks that value is one of allowed. Empty values pass; combine with Required.
func OneOf(field, value string, allowed ...string) Rule {
	return Rule{
		Check: func() bool { return value == "" || slices.Contains(allowed, value) },
		Failure: Failure{
			Field:   field,
			Message: "must be one of: " + strings.Join(allowed, ", "),
			Key:     "validation.in",
		},
	}
}

// NotEqualIDs checks that two ids differ.
func NotEqualIDs(field string, a, b uuid.UUID, message string) Rule {
	return Rule{
		Check:   func() bool { return a != b },
		Failure: Failure{Field: field, Message: message, Key: "validation.different"},
	}
}
