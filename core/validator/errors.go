package validator

import (
	"errors"
	"strings"
)

// ValidationError aggregates the failures of every validator that ran for one input.
type ValidationError struct {
	Request  string    // Input type name
	Failures []Failure // In validator registration order
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	if e.Request != "" {
		b.WriteString(" for ")
		b.WriteString(e.Request)
	}
	for i, f := range e.Failures {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(f.Field)
		b.WriteString(": ")
		b.WriteString(f.Message)
	}
	return b.String()
}

// Fields groups the failure messages by field. No message is dropped or merged.
func (e *ValidationError) Fields() map[string][]string {
	fields := make(map[string][]string, len(e.Failures))
	for _, f := range e.Failures {
		fields[f.Field] = append(fields[f.Field], f.Message)
	}
	return fields
}

// Has reports whether field has at least one failure.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Failures {
		if f.Field == field {
			return true
		}
	}
	return false
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExtractValidationError returns the *ValidationError in err's chain, or nil.
func ExtractValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
