package validator

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Failure is a single field-level validation failure.
type Failure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Key     string `json:"key,omitempty"` // Translation key, e.g. "validation.required"
}

// IsZero reports whether f carries nothing to report.
func (f Failure) IsZero() bool {
	return f == Failure{}
}

// Validator checks one input type.
type Validator[T any] interface {
	Validate(ctx context.Context, in T) ([]Failure, error)
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc[T any] func(ctx context.Context, in T) ([]Failure, error)

// Validate implements Validator.
func (f ValidatorFunc[T]) Validate(ctx context.Context, in T) ([]Failure, error) {
	return f(ctx, in)
}

// Func is a type-erased validator as stored in a Registry.
type Func func(ctx context.Context, in any) ([]Failure, error)

// Registry holds the validators of every input type.
// Populate it at startup; lookups are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	validators map[reflect.Type][]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[reflect.Type][]Func)}
}

// Add registers v for inputs of exactly type T.
func Add[T any](r *Registry, v Validator[T]) {
	if v == nil {
		panic("validator: nil validator")
	}
	t := reflect.TypeFor[T]()
	fn := func(ctx context.Context, in any) ([]Failure, error) {
		typed, ok := in.(T)
		if !ok {
			return nil, fmt.Errorf("validator: expected %s, got %T", t, in)
		}
		return v.Validate(ctx, typed)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[t] = append(r.validators[t], fn)
}

// AddFunc registers fn for inputs of exactly type T.
func AddFunc[T any](r *Registry, fn func(ctx context.Context, in T) ([]Failure, error)) {
	Add[T](r, ValidatorFunc[T](fn))
}

// For returns the validators registered for the dynamic type of in.
func (r *Registry) For(in any) []Func {
	if in == nil {
		return nil
	}
	t := reflect.TypeOf(in)

	r.mu.RLock()
	defer r.mu.RUnlock()
	fns := r.validators[t]
	return fns[:len(fns):len(fns)]
}

// Len returns the number of validators registered for type T.
func Len[T any](r *Registry) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.validators[reflect.TypeFor[T]()])
}
