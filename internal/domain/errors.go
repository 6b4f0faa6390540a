package domain

import "github.com/dmitrymomot/accessgate/core/result"

// Expected failures. Codes starting with "NotFound" map to 404 at the HTTP boundary.
var (
	ErrUserNotFound          = result.NewError("NotFound.User", "The user was not found.")
	ErrActivityNotFound      = result.NewError("NotFound.Activity", "The activity was not found.")
	ErrAccessRequestNotFound = result.NewError("NotFound.AccessRequest", "The access request was not found.")

	ErrUserNameTaken            = result.NewError("Conflict.UserName", "The user name is already taken.")
	ErrActivityNameTaken        = result.NewError("Conflict.ActivityName", "The activity name is already taken.")
	ErrAccessRequestDuplicate   = result.NewError("Conflict.AccessRequest", "An open access request already exists for this user and activity.")
	ErrAccessRequestNotPending  = result.NewError("AccessRequest.NotPending", "Only pending access requests can be decided.")
	ErrAccessRequestNotApproved = result.NewError("AccessRequest.NotApproved", "Only approved access requests can be revoked.")
)
