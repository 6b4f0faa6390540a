package mediator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Kind tells commands and queries apart. Both kinds dispatch the same way; the kind is
// visible to behaviors and guards Send and Ask against mixing the two up.
type Kind uint8

const (
	KindCommand Kind = iota + 1
	KindQuery
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Dispatcher routes inputs to the handlers of its registry through the registry's behaviors.
// It holds no per-request state and is safe for concurrent use.
//
// Example:
//
//	commands := mediator.NewCommandDispatcher(commandRegistry, mediator.WithLogger(log))
//	res, err := mediator.Send[CreateUser, result.Of[User]](ctx, commands, CreateUser{UserName: "jdoe"})
type Dispatcher struct {
	kind     Kind
	registry *Registry
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger for the dispatcher. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewCommandDispatcher creates a dispatcher for commands backed by reg.
func NewCommandDispatcher(reg *Registry, opts ...Option) *Dispatcher {
	return newDispatcher(KindCommand, reg, opts...)
}

// NewQueryDispatcher creates a dispatcher for queries backed by reg.
func NewQueryDispatcher(reg *Registry, opts ...Option) *Dispatcher {
	return newDispatcher(KindQuery, reg, opts...)
}

func newDispatcher(kind Kind, reg *Registry, opts ...Option) *Dispatcher {
	if reg == nil {
		reg = NewRegistry()
	}
	d := &Dispatcher{
		kind:     kind,
		registry: reg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Kind returns the dispatcher kind.
func (d *Dispatcher) Kind() Kind {
	return d.kind
}

// Registry returns the registry the dispatcher resolves from.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch runs in through the behaviors registered for (In, Out) and its handler, and
// returns the handler's output unchanged.
//
// Behaviors run in registration order, the first registered one is the outermost.
// A missing handler is a configuration error reported as ErrNoHandler.
// Errors and panics raised by behaviors or the handler are not converted.
func Dispatch[In, Out any](ctx context.Context, d *Dispatcher, in In) (Out, error) {
	key := pairOf[In, Out]()

	factory, entries, ok := d.registry.resolve(key)
	if !ok {
		var zero Out
		d.logger.ErrorContext(ctx, "no handler registered",
			slog.String("kind", d.kind.String()),
			slog.String("request", key.String()))
		return zero, fmt.Errorf("%w: %s %s", ErrNoHandler, d.kind, key)
	}
	handler := factory.(func() Handler[In, Out])()

	req := Request{Kind: d.kind, Name: typeName(key.in), Input: in}
	behaviors := make([]Behavior[In, Out], 0, len(entries))
	for _, e := range entries {
		switch {
		case e.open != nil:
			behaviors = append(behaviors, typedOpen[In, Out](e.open(), req))
		case e.key == key:
			behaviors = append(behaviors, e.typed.(func() Behavior[In, Out])())
		}
	}

	next := Next[Out](func(ctx context.Context) (Out, error) {
		return handler.Handle(ctx, in)
	})
	// Reverse order required: wrapping innermost first makes the first behavior outermost
	for i := len(behaviors) - 1; i >= 0; i-- {
		b, inner := behaviors[i], next
		next = func(ctx context.Context) (Out, error) {
			return b.Handle(ctx, in, inner)
		}
	}

	return next(ctx)
}

// Send dispatches a command. It fails with ErrWrongDispatcherKind on a query dispatcher.
func Send[In, Out any](ctx context.Context, d *Dispatcher, cmd In) (Out, error) {
	if d.kind != KindCommand {
		var zero Out
		return zero, fmt.Errorf("%w: %s sent to %s dispatcher", ErrWrongDispatcherKind, typeNameOf[In](), d.kind)
	}
	return Dispatch[In, Out](ctx, d, cmd)
}

// Ask dispatches a query. It fails with ErrWrongDispatcherKind on a command dispatcher.
func Ask[In, Out any](ctx context.Context, d *Dispatcher, query In) (Out, error) {
	if d.kind != KindQuery {
		var zero Out
		return zero, fmt.Errorf("%w: %s sent to %s dispatcher", ErrWrongDispatcherKind, typeNameOf[In](), d.kind)
	}
	return Dispatch[In, Out](ctx, d, query)
}
