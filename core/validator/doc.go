// Package validator validates command and query inputs before they reach their handlers.
//
// Validators are registered per input type in a Registry. Any number of validators can
// be registered for one type; the validation pipeline behavior runs all of them and
// aggregates their failures into a single *ValidationError.
//
// # Writing Validators
//
// A validator returns zero or more field-level failures. Most validators are built from
// the rule helpers and Apply:
//
//	validator.AddFunc(reg, func(ctx context.Context, cmd CreateUser) ([]validator.Failure, error) {
//		return validator.Apply(
//			validator.Required("UserName", cmd.UserName),
//			validator.MaxLen("UserName", cmd.UserName, 64),
//			validator.Email("Email", cmd.Email),
//		), nil
//	})
//
// Validators may consult collaborators (for example to check that a user name is not
// taken). A returned error is an infrastructure failure, not a validation failure, and
// aborts the pipeline as is.
//
// # Handling Failures
//
// The HTTP boundary turns a *ValidationError into a field keyed problem response:
//
//	if validator.IsValidationError(err) {
//		fields := validator.ExtractValidationError(err).Fields()
//		// fields["UserName"] == []string{"field is required"}
//	}
//
// Fields keeps every message, including several messages for the same field reported by
// different validators.
package validator
