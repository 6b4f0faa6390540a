package mediator

import "errors"

var (
	// ErrNoHandler is returned when no handler is registered for an input/output pair.
	ErrNoHandler = errors.New("no handler registered for request")

	// ErrHandlerAlreadyRegistered is returned when a second handler is registered for the same pair.
	ErrHandlerAlreadyRegistered = errors.New("handler already registered for request")

	// ErrRegistrySealed is returned when registering into a sealed registry.
	ErrRegistrySealed = errors.New("registry is sealed")

	// ErrNilHandler is returned when a nil handler or factory is registered.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrNilBehavior is returned when a nil behavior or factory is registered.
	ErrNilBehavior = errors.New("behavior cannot be nil")

	// ErrUnexpectedOutput is returned when an open behavior returns a value of the wrong type.
	ErrUnexpectedOutput = errors.New("behavior returned unexpected output type")

	// ErrWrongDispatcherKind is returned when a command is sent to a query dispatcher or vice versa.
	ErrWrongDispatcherKind = errors.New("wrong dispatcher kind")
)
