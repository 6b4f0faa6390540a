package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an access request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusRevoked  Status = "revoked"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusRevoked}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusRevoked:
		return true
	}
	return false
}

// Decision is the outcome chosen by an approver.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Status returns the request status a decision leads to.
func (d Decision) Status() Status {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusRejected
}

// AccessRequest asks for a user to be allowed to perform an activity.
type AccessRequest struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	ActivityID  uuid.UUID  `json:"activityId"`
	Reason      string     `json:"reason"`
	Status      Status     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	DecidedAt   *time.Time `json:"decidedAt,omitempty"`
	DecidedBy   *uuid.UUID `json:"decidedBy,omitempty"`
}

// EntityID implements repository.Entity.
func (r AccessRequest) EntityID() uuid.UUID { return r.ID }

// IsOpen reports whether the request still blocks a new request for the same pair.
func (r AccessRequest) IsOpen() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// Decide moves a pending request to approved or rejected.
func (r *AccessRequest) Decide(d Decision, by uuid.UUID, at time.Time) {
	r.Status = d.Status()
	r.DecidedAt = &at
	r.DecidedBy = &by
}

// AccessDecision answers whether a user may perform an activity.
type AccessDecision struct {
	UserID     uuid.UUID  `json:"userId"`
	ActivityID uuid.UUID  `json:"activityId"`
	Granted    bool       `json:"granted"`
	RequestID  *uuid.UUID `json:"requestId,omitempty"` // Approved request granting access
}
