// Package domain holds the entities of the access-request backend and the expected
// failures of operations on them.
//
// Entities reference each other by id only. Expected failures are result.Error values;
// a handler returns them inside a failed result rather than as a Go error.
package domain
