package accessrequests

import (
	"context"

	"github.com/dmitrymomot/accessgate/core/validator"
	"github.com/dmitrymomot/accessgate/internal/domain"
)

const reasonMaxLen = 500

func statusNames() []string {
	names := make([]string, len(domain.Statuses))
	for i, s := range domain.Statuses {
		names[i] = string(s)
	}
	return names
}

// RegisterValidators adds the validators of every access-request command and query.
func RegisterValidators(reg *validator.Registry) {
	validator.AddFunc(reg, func(_ context.Context, cmd CreateAccessRequest) ([]validator.Failure, error) {
		return validator.Apply(
			validator.RequiredID("UserID", cmd.UserID),
			validator.RequiredID("ActivityID", cmd.ActivityID),
			validator.MaxLen("Reason", cmd.Reason, reasonMaxLen),
		), nil
	})
	validator.AddFunc(reg, func(_ context.Context, cmd DecideAccessRequest) ([]validator.Failure, error) {
		return validator.Apply(
			validator.RequiredID("ID", cmd.ID),
			validator.Required("Decision", string(cmd.Decision)),
			validator.OneOf("Decision", string(cmd.Decision), string(domain.DecisionApprove), string(domain.DecisionReject)),
			validator.RequiredID("DecidedBy", cmd.DecidedBy),
		), nil
	})
	validator.AddFunc(reg, func(_ context.Context, cmd RevokeAccessRequest) ([]validator.Failure, error) {
		return validator.Apply(
			validator.RequiredID("ID", cmd.ID),
			validator.RequiredID("RevokedBy", cmd.RevokedBy),
		), nil
	})
	validator.AddFunc(reg, func(_ context.Context, cmd DeleteAccessRequest) ([]validator.Failure, error) {
		return validator.Apply(validator.RequiredID("ID", cmd.ID)), nil
	})
	validator.AddFunc(reg, func(_ context.Context, q GetAccessRequest) ([]validator.Failure, error) {
		return validator.Apply(validator.RequiredID("ID", q.ID)), nil
	})
	validator.AddFunc(reg, func(_ context.Context, q ListAccessRequests) ([]validator.Failure, error) {
		return validator.Apply(validator.OneOf("Status", string(q.Status), statusNames()...)), nil
	})
	validator.AddFunc(reg, func(_ context.Context, q VerifyAccess) ([]validator.Failure, error) {
		return validator.Apply(
			validator.RequiredID("UserID", q.UserID),
			validator.RequiredID("ActivityID", q.ActivityID),
		), nil
	})
}
