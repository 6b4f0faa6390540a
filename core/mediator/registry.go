package mediator

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// pair identifies a handler by its input and output types.
type pair struct {
	in  reflect.Type
	out reflect.Type
}

func pairOf[In, Out any]() pair {
	return pair{in: reflect.TypeFor[In](), out: reflect.TypeFor[Out]()}
}

func (p pair) String() string {
	return typeName(p.in) + " -> " + typeName(p.out)
}

// Pair describes a registered handler for introspection.
type Pair struct {
	Input  string
	Output string
}

// behaviorEntry is one registered behavior. Exactly one of typed and open is set.
// typed holds a func() Behavior[In, Out] for the pair key.
type behaviorEntry struct {
	key   pair
	typed any
	open  func() OpenBehavior
}

// Registry maps input/output pairs to handler factories and keeps the ordered list of
// behaviors. It is populated once at startup and then shared by a Dispatcher.
//
// Example:
//
//	reg := mediator.NewRegistry()
//	reg.Use(behavior.Validation(validators), behavior.Performance(log, 5*time.Second))
//	mediator.MustRegisterFunc(reg, CreateUserHandler{users: repo}.Handle)
//	reg.Seal()
type Registry struct {
	mu        sync.RWMutex
	handlers  map[pair]any
	behaviors []behaviorEntry
	sealed    bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[pair]any)}
}

// Register registers h as the handler for (In, Out). The same instance serves every dispatch.
func Register[In, Out any](r *Registry, h Handler[In, Out]) error {
	if h == nil {
		return ErrNilHandler
	}
	return RegisterFactory(r, func() Handler[In, Out] { return h })
}

// RegisterFactory registers a factory invoked on every dispatch of (In, Out).
// Only one handler may be registered per pair.
func RegisterFactory[In, Out any](r *Registry, factory func() Handler[In, Out]) error {
	if factory == nil {
		return ErrNilHandler
	}
	key := pairOf[In, Out]()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot register %s", ErrRegistrySealed, key)
	}
	if _, exists := r.handlers[key]; exists {
		return fmt.Errorf("%w: %s", ErrHandlerAlreadyRegistered, key)
	}

	r.handlers[key] = factory
	return nil
}

// MustRegister is like Register but panics on error. Intended for startup code.
func MustRegister[In, Out any](r *Registry, h Handler[In, Out]) {
	if err := Register(r, h); err != nil {
		panic(err)
	}
}

// RegisterFunc registers fn as the handler for (In, Out). Passing a method value lets the
// compiler infer both types: mediator.RegisterFunc(reg, h.Handle).
func RegisterFunc[In, Out any](r *Registry, fn func(context.Context, In) (Out, error)) error {
	if fn == nil {
		return ErrNilHandler
	}
	return Register[In, Out](r, HandlerFunc[In, Out](fn))
}

// MustRegisterFunc is like RegisterFunc but panics on error.
func MustRegisterFunc[In, Out any](r *Registry, fn func(context.Context, In) (Out, error)) {
	if err := RegisterFunc(r, fn); err != nil {
		panic(err)
	}
}

// AddBehavior appends a behavior that only wraps the (In, Out) handler.
func AddBehavior[In, Out any](r *Registry, b Behavior[In, Out]) error {
	if b == nil {
		return ErrNilBehavior
	}
	return AddBehaviorFactory(r, func() Behavior[In, Out] { return b })
}

// AddBehaviorFunc is AddBehavior for a plain function, letting the compiler infer the pair.
func AddBehaviorFunc[In, Out any](r *Registry, fn func(context.Context, In, Next[Out]) (Out, error)) error {
	if fn == nil {
		return ErrNilBehavior
	}
	return AddBehavior[In, Out](r, BehaviorFunc[In, Out](fn))
}

// AddBehaviorFactory appends a typed behavior factory invoked on every dispatch of (In, Out).
func AddBehaviorFactory[In, Out any](r *Registry, factory func() Behavior[In, Out]) error {
	if factory == nil {
		return ErrNilBehavior
	}
	return r.appendBehavior(behaviorEntry{key: pairOf[In, Out](), typed: factory})
}

// Use appends open behaviors that wrap every handler of the registry.
// Behaviors run in registration order: the first one added is the outermost.
func (r *Registry) Use(behaviors ...OpenBehavior) error {
	for _, b := range behaviors {
		if b == nil {
			return ErrNilBehavior
		}
		if err := r.UseFactory(func() OpenBehavior { return b }); err != nil {
			return err
		}
	}
	return nil
}

// UseFactory appends an open behavior factory invoked on every dispatch.
func (r *Registry) UseFactory(factory func() OpenBehavior) error {
	if factory == nil {
		return ErrNilBehavior
	}
	return r.appendBehavior(behaviorEntry{open: factory})
}

func (r *Registry) appendBehavior(e behaviorEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot add behavior", ErrRegistrySealed)
	}
	r.behaviors = append(r.behaviors, e)
	return nil
}

// Seal freezes the registry. Later registrations fail with ErrRegistrySealed.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Pairs lists the registered handlers sorted by input name.
func (r *Registry) Pairs() []Pair {
	r.mu.RLock()
	pairs := make([]Pair, 0, len(r.handlers))
	for key := range r.handlers {
		pairs = append(pairs, Pair{Input: typeName(key.in), Output: typeName(key.out)})
	}
	r.mu.RUnlock()

	slices.SortFunc(pairs, func(a, b Pair) int {
		return cmp.Compare(a.Input, b.Input)
	})
	return pairs
}

// resolve returns the handler factory and a capped view of the behavior entries.
// Entries are never modified once appended, so the view stays valid after the lock is released.
func (r *Registry) resolve(key pair) (any, []behaviorEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.handlers[key]
	return factory, r.behaviors[:len(r.behaviors):len(r.behaviors)], ok
}
