package mediator

import "context"

// Handler fulfils one command or query. In is the request type, Out is what the caller gets
// back, conventionally result.Result or result.Of[T].
//
// Expected outcomes (not found, broken business rule) belong in Out. The error return is
// for unexpected failures and is propagated to the caller untouched.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// HandlerFunc adapts a plain function to Handler.
//
// Example:
//
//	mediator.Register(reg, mediator.HandlerFunc[GetUser, result.Of[User]](
//	    func(ctx context.Context, q GetUser) (result.Of[User], error) {
//	        ...
//	    },
//	))
type HandlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// Handle implements Handler.
func (f HandlerFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}
