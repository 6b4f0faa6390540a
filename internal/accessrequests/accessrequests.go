// Package accessrequests implements the access-request lifecycle: requesting access to an
// activity, deciding and revoking requests, and answering whether a user currently holds
// access.
//
// Every successful state change publishes an event. A failed publish is logged and does
// not fail the command; the stored state is the source of truth.
package accessrequests

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/accessgate/internal/domain"
)

// CreateAccessRequest asks for UserID to be allowed to perform ActivityID.
type CreateAccessRequest struct {
	UserID     uuid.UUID `json:"userId"`
	ActivityID uuid.UUID `json:"activityId"`
	Reason     string    `json:"reason"`
}

// DecideAccessRequest approves or rejects a pending request.
type DecideAccessRequest struct {
	ID        uuid.UUID       `json:"-"`
	Decision  domain.Decision `json:"decision"`
	DecidedBy uuid.UUID       `json:"decidedBy"`
}

// RevokeAccessRequest withdraws previously approved access.
type RevokeAccessRequest struct {
	ID        uuid.UUID `json:"-"`
	RevokedBy uuid.UUID `json:"revokedBy"`
}

// DeleteAccessRequest removes a request regardless of its status.
type DeleteAccessRequest struct {
	ID uuid.UUID
}

// GetAccessRequest reads one request.
type GetAccessRequest struct {
	ID uuid.UUID
}

// ListAccessRequests reads the requests matching the optional filters.
type ListAccessRequests struct {
	UserID     uuid.UUID
	ActivityID uuid.UUID
	Status     domain.Status
}

// VerifyAccess asks whether UserID may currently perform ActivityID.
type VerifyAccess struct {
	UserID     uuid.UUID
	ActivityID uuid.UUID
}
