package mediator

import (
	"context"
	"fmt"
)

// Next continues the pipeline with the next behavior or, at the end, the handler.
type Next[Out any] func(ctx context.Context) (Out, error)

// Behavior wraps handler execution for one input/output pair.
// A behavior may act before and after calling next, or skip next to short-circuit.
// It must not mutate the input seen by the rest of the chain.
type Behavior[In, Out any] interface {
	Handle(ctx context.Context, in In, next Next[Out]) (Out, error)
}

// BehaviorFunc adapts a plain function to Behavior.
type BehaviorFunc[In, Out any] func(ctx context.Context, in In, next Next[Out]) (Out, error)

// Handle implements Behavior.
func (f BehaviorFunc[In, Out]) Handle(ctx context.Context, in In, next Next[Out]) (Out, error) {
	return f(ctx, in, next)
}

// Request describes the dispatched input to an OpenBehavior.
type Request struct {
	Kind  Kind   // Dispatcher kind, command or query
	Name  string // Input type name, e.g. "CreateUser"
	Input any    // Input value as passed to Dispatch
}

// NextAny is the untyped continuation handed to an OpenBehavior.
type NextAny func(ctx context.Context) (any, error)

// OpenBehavior applies to every input/output pair of the registry it is added to.
// It sees the input as a Request and the output as any. Whatever it returns must be either
// the value produced by next or a value of the pair's output type.
type OpenBehavior interface {
	Handle(ctx context.Context, req Request, next NextAny) (any, error)
}

// OpenBehaviorFunc adapts a plain function to OpenBehavior.
type OpenBehaviorFunc func(ctx context.Context, req Request, next NextAny) (any, error)

// Handle implements OpenBehavior.
func (f OpenBehaviorFunc) Handle(ctx context.Context, req Request, next NextAny) (any, error) {
	return f(ctx, req, next)
}

// typedOpen adapts an OpenBehavior to the Behavior of a concrete pair.
func typedOpen[In, Out any](b OpenBehavior, req Request) Behavior[In, Out] {
	return BehaviorFunc[In, Out](func(ctx context.Context, _ In, next Next[Out]) (Out, error) {
		res, err := b.Handle(ctx, req, func(ctx context.Context) (any, error) {
			return next(ctx)
		})

		var zero Out
		if res == nil {
			return zero, err
		}
		out, ok := res.(Out)
		if !ok {
			if err != nil {
				return zero, err
			}
			return zero, fmt.Errorf("%w: %s returned %T for %s", ErrUnexpectedOutput, req.Name, res, typeNameOf[Out]())
		}
		return out, err
	})
}
