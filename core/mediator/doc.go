// Package mediator dispatches commands and queries to their handlers through an ordered
// chain of pipeline behaviors.
//
// Every handler is keyed by its input and output types. A Registry is filled once at
// startup with handlers and behaviors; a Dispatcher resolves from it on each call.
// There are two dispatcher kinds, commands and queries, which work the same way but are
// given separate registries so each can carry its own behaviors and settings.
//
// # Quick Start
//
//	type CreateUser struct {
//	    UserName string
//	    Email    string
//	}
//
//	func createUser(ctx context.Context, cmd CreateUser) (result.Of[User], error) {
//	    ...
//	}
//
//	reg := mediator.NewRegistry()
//	mediator.MustRegisterFunc(reg, createUser)
//	reg.Seal()
//
//	commands := mediator.NewCommandDispatcher(reg)
//	res, err := mediator.Send[CreateUser, result.Of[User]](ctx, commands, CreateUser{UserName: "jdoe"})
//
// # Behaviors
//
// Behaviors wrap handler execution for cross-cutting concerns: validation, timing,
// logging, tracing. A typed Behavior[In, Out] applies to one pair, an OpenBehavior applies
// to every pair in the registry. Both kinds share one ordered list:
//
//	reg.Use(logging, validation)              // open, every pair
//	mediator.AddBehaviorFunc(reg, auditUsers) // typed, only its pair
//	reg.Use(performance)                      // open, every pair
//
// For each dispatch the chain is logging(validation(auditUsers(performance(handler)))).
// A behavior that returns without calling next short-circuits everything inside it.
//
// # Errors
//
// Handlers return expected outcomes inside their output (see package result). Errors
// returned by handlers or behaviors, and panics, reach the caller of Dispatch unchanged.
// A dispatch without a registered handler fails with ErrNoHandler; registering a second
// handler for a pair fails with ErrHandlerAlreadyRegistered.
package mediator
