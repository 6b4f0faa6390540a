package result

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidResult is the panic value used when a result is built in a state that
	// violates the success/error invariant.
	ErrInvalidResult = errors.New("invalid result")

	// ErrNoValue is the panic value used when the value of a failed result is accessed.
	ErrNoValue = errors.New("result has no value")
)

// Error describes why an operation failed. Code is machine-readable and dot-namespaced
// ("NotFound.AccessRequest"), Description is meant for humans.
// Errors compare by value.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Predefined errors shared by all handlers.
var (
	// ErrNone marks the absence of an error. It is only valid on successful results.
	ErrNone = Error{}

	// ErrNotFound is the generic "entity does not exist" error.
	ErrNotFound = Error{Code: "Error.NotFound", Description: "The requested resource was not found."}

	// ErrNullValue signals that a required value was missing.
	ErrNullValue = Error{Code: "Error.NullValue", Description: "A required value was not provided."}
)

const notFoundPrefix = "NotFound"

// NewError creates an Error with the given code and description.
func NewError(code, description string) Error {
	return Error{Code: code, Description: description}
}

// Error implements the error interface so an Error can be wrapped and matched with errors.Is.
func (e Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return e.Code + ": " + e.Description
}

// IsNone reports whether e is ErrNone.
func (e Error) IsNone() bool {
	return e == ErrNone
}

// IsNotFound reports whether e is ErrNotFound or carries a "NotFound" prefixed code.
func (e Error) IsNotFound() bool {
	return e == ErrNotFound || strings.HasPrefix(e.Code, notFoundPrefix)
}

// ToResult turns e into a failed Result. It panics when e is ErrNone.
func (e Error) ToResult() Result {
	return Failure(e)
}
