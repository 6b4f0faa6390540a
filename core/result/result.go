package result

import "fmt"

// Result is the outcome of an operation without a payload.
type Result struct {
	err    Error
	failed bool
}

// Outcome is implemented by Result and every Of[T].
type Outcome interface {
	IsSuccess() bool
	IsNotFound() bool
	Error() Error
}

// New builds a Result and enforces the invariant between success and err.
// It panics when success is true and err is set, or success is false and err is ErrNone.
func New(success bool, err Error) Result {
	if success && !err.IsNone() {
		panic(fmt.Errorf("%w: successful result with error %q", ErrInvalidResult, err.Code))
	}
	if !success && err.IsNone() {
		panic(fmt.Errorf("%w: failed result without error", ErrInvalidResult))
	}
	return Result{err: err, failed: !success}
}

// Success returns a successful Result.
func Success() Result {
	return Result{}
}

// Failure returns a failed Result carrying err. It panics when err is ErrNone.
func Failure(err Error) Result {
	return New(false, err)
}

// NotFound returns a failed Result carrying ErrNotFound.
func NotFound() Result {
	return Result{err: ErrNotFound, failed: true}
}

// IsSuccess reports whether the operation succeeded.
func (r Result) IsSuccess() bool {
	return !r.failed
}

// IsFailure reports whether the operation failed.
func (r Result) IsFailure() bool {
	return r.failed
}

// Error returns the failure reason, or ErrNone for a successful result.
func (r Result) Error() Error {
	return r.err
}

// IsNotFound reports whether the result failed because something does not exist.
func (r Result) IsNotFound() bool {
	return r.failed && r.err.IsNotFound()
}

// String implements fmt.Stringer.
func (r Result) String() string {
	if !r.failed {
		return "success"
	}
	return "failure(" + r.err.Error() + ")"
}
