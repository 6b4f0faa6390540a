// Package result provides the outcome values returned by command and query handlers.
//
// Handlers report expected outcomes (success, a broken business rule, a missing entity)
// through Result and Of[T] instead of Go errors. A Go error returned next to a result
// is reserved for unexpected failures such as a lost database connection.
//
// # Basic Usage
//
//	var ErrUserNotFound = result.NewError("NotFound.User", "The user was not found.")
//
//	func (h GetUserHandler) Handle(ctx context.Context, q GetUser) (result.Of[User], error) {
//		u, err := h.users.GetByID(ctx, q.ID)
//		if err != nil {
//			return result.Of[User]{}, err
//		}
//		return result.FromPointer(u, ErrUserNotFound), nil
//	}
//
// Callers branch on IsSuccess and unwrap the payload with Value or Get:
//
//	res, err := mediator.Ask[GetUser, result.Of[User]](ctx, queries, GetUser{ID: id})
//	if err != nil {
//		return err
//	}
//	if res.IsNotFound() {
//		// render 404
//	}
//	user := res.Value()
//
// # Invariants
//
// A successful result never carries an error and a failed result always carries one.
// Constructing the inverse panics with ErrInvalidResult. Calling Value on a failed result
// panics with ErrNoValue. The zero Result is a success, the zero Of[T] is a success
// holding the zero T.
//
// # Not Found
//
// IsNotFound reports true for ErrNotFound and for any error whose code starts with
// "NotFound", so entity specific codes such as "NotFound.AccessRequest" are treated the
// same way as the generic value. The check is a plain prefix match: a code like
// "NotFoundation.X" also matches.
package result
