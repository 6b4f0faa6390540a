package result

import "fmt"

// Of is a Result that carries a value of type T on success.
type Of[T any] struct {
	Result
	value T
}

// NewOf builds an Of[T] and enforces the same invariant as New.
func NewOf[T any](value T, success bool, err Error) Of[T] {
	return Of[T]{Result: New(success, err), value: value}
}

// SuccessOf returns a successful result holding value.
func SuccessOf[T any](value T) Of[T] {
	return Of[T]{value: value}
}

// FailureOf returns a failed result carrying err. It panics when err is ErrNone.
func FailureOf[T any](err Error) Of[T] {
	return Of[T]{Result: Failure(err)}
}

// NotFoundOf returns a failed result carrying ErrNotFound.
func NotFoundOf[T any]() Of[T] {
	return Of[T]{Result: NotFound()}
}

// FromPointer converts a repository lookup into a result.
// A nil pointer becomes a failure carrying missing, otherwise the pointed value is returned.
func FromPointer[T any](v *T, missing Error) Of[T] {
	if v == nil {
		return FailureOf[T](missing)
	}
	return SuccessOf(*v)
}

// Value returns the payload. It panics with ErrNoValue when the result is a failure.
func (r Of[T]) Value() T {
	if r.failed {
		panic(fmt.Errorf("%w: %s", ErrNoValue, r.err.Error()))
	}
	return r.value
}

// Get returns the payload and true on success, or the zero value and false on failure.
func (r Of[T]) Get() (T, bool) {
	if r.failed {
		var zero T
		return zero, false
	}
	return r.value, true
}

// ValueOr returns the payload on success and fallback otherwise.
func (r Of[T]) ValueOr(fallback T) T {
	if r.failed {
		return fallback
	}
	return r.value
}

// Untyped drops the payload.
func (r Of[T]) Untyped() Result {
	return r.Result
}

// Map transforms the payload of a successful result. Failures pass through unchanged.
func Map[T, U any](r Of[T], fn func(T) U) Of[U] {
	if r.failed {
		return Of[U]{Result: r.Result}
	}
	return SuccessOf(fn(r.value))
}

// Bind chains an operation that itself returns a result. Failures pass through unchanged.
func Bind[T, U any](r Of[T], fn func(T) Of[U]) Of[U] {
	if r.failed {
		return Of[U]{Result: r.Result}
	}
	return fn(r.value)
}

// Match calls onSuccess or onFailure depending on the state of r.
func Match[T, U any](r Of[T], onSuccess func(T) U, onFailure func(Error) U) U {
	if r.failed {
		return onFailure(r.err)
	}
	return onSuccess(r.value)
}
