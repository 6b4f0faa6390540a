package accessrequests

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/accessgate/core/logger"
	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/internal/domain"
	"github.com/dmitrymomot/accessgate/internal/events"
	"github.com/dmitrymomot/accessgate/internal/repository"
)

// Handlers serves the access-request commands and queries.
type Handlers struct {
	users      repository.Users
	activities repository.Activities
	requests   repository.AccessRequests
	publisher  events.Publisher
	log        *slog.Logger
	now        func() time.Time
}

// Option configures Handlers.
type Option func(*Handlers)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) { h.now = now }
}

// WithPublisher sets the lifecycle event publisher. Events are dropped by default.
func WithPublisher(p events.Publisher) Option {
	return func(h *Handlers) { h.publisher = p }
}

// WithLogger sets the logger used to report publish failures.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handlers) { h.log = log }
}

// NewHandlers creates the access-request handlers.
func NewHandlers(users repository.Users, activities repository.Activities, requests repository.AccessRequests, opts ...Option) *Handlers {
	h := &Handlers{
		users:      users,
		activities: activities,
		requests:   requests,
		publisher:  events.Noop{},
		log:        logger.Discard(),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Create opens a pending request when no open request exists for the pair.
func (h *Handlers) Create(ctx context.Context, cmd CreateAccessRequest) (result.Of[domain.AccessRequest], error) {
	if missing, err := h.checkReferences(ctx, cmd.UserID, cmd.ActivityID); err != nil || !missing.IsNone() {
		return failed[domain.AccessRequest](missing, err)
	}

	existing, err := h.requests.Find(ctx, repository.AccessRequestFilter{UserID: cmd.UserID, ActivityID: cmd.ActivityID})
	if err != nil {
		return result.Of[domain.AccessRequest]{}, err
	}
	if slices.ContainsFunc(existing, domain.AccessRequest.IsOpen) {
		return result.FailureOf[domain.AccessRequest](domain.ErrAccessRequestDuplicate), nil
	}

	r, err := h.requests.Add(ctx, domain.AccessRequest{
		ID:          uuid.New(),
		UserID:      cmd.UserID,
		ActivityID:  cmd.ActivityID,
		Reason:      cmd.Reason,
		Status:      domain.StatusPending,
		RequestedAt: h.now(),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return result.FailureOf[domain.AccessRequest](domain.ErrAccessRequestDuplicate), nil
	}
	if err != nil {
		return result.Of[domain.AccessRequest]{}, err
	}

	h.publish(ctx, events.SubjectAccessRequestCreated, r)
	return result.SuccessOf(r), nil
}

// Decide approves or rejects a pending request.
func (h *Handlers) Decide(ctx context.Context, cmd DecideAccessRequest) (result.Of[domain.AccessRequest], error) {
	r, err := h.requests.GetByID(ctx, cmd.ID)
	if err != nil {
		return result.Of[domain.AccessRequest]{}, err
	}
	if r == nil {
		return result.FailureOf[domain.AccessRequest](domain.ErrAccessRequestNotFound), nil
	}
	if r.Status != domain.StatusPending {
		return result.FailureOf[domain.AccessRequest](domain.ErrAccessRequestNotPending), nil
	}
	ok, err := h.users.Exists(ctx, cmd.DecidedBy)
	if err != nil {
		return result.Of[domain.AccessRequest]{}, err
	}
	if !ok {
		return result.FailureOf[domain.AccessRequest](domain.ErrUserNotFound), nil
	}

	r.Decide(cmd.Decision, cmd.DecidedBy, h.now())
	return h.transition(ctx, *r, domain.StatusPending, domain.ErrAccessRequestNotPending, events.SubjectAccessRequestDecided)
}

// Revoke withdraws an approved request.
func (h *Handlers) Revoke(ctx context.Context, cmd RevokeAccessRequest) (result.Of[domain.AccessRequest], error) {
	r, err := h.requests.GetByID(ctx, cmd.ID)
	if err != nil {
		return result.Of[domain.AccessRequest]{}, err
	}
	if r == nil {
		return result.FailureOf[domain.AccessRequest](domain.ErrAccessRequestNotFound), nil
	}
	if r.Status != domain.StatusApproved {
		return result.FailureOf[domain.AccessRequest](domain.ErrAccessRequestNotApproved), nil
	}
	ok, err := h.users.Exists(ctx, cmd.RevokedBy)
	if err != nil {
		return result.Of[domain.AccessRequest]{}, err
	}
	if !ok {
		return result.FailureOf[domain.AccessRequest](domain.ErrUserNotFound), nil
	}

	at := h.now()
	r.Status = domain.StatusRevoked
	r.DecidedAt = &at
	r.DecidedBy = &cmd.RevokedBy
	return h.transition(ctx, *r, domain.StatusApproved, domain.ErrAccessRequestNotApproved, events.SubjectAccessRequestRevoked)
}

// Delete removes a request in any status.
func (h *Handlers) Delete(ctx context.Context, cmd DeleteAccessRequest) (result.Result, error) {
	n, err := h.requests.Delete(ctx, cmd.ID)
	if err != nil {
		return result.Result{}, err
	}
	if n == 0 {
		return result.Failure(domain.ErrAccessRequestNotFound), nil
	}
	return result.Success(), nil
}

// Get returns a request by id.
func (h *Handlers) Get(ctx context.Context, q GetAccessRequest) (result.Of[domain.AccessRequest], error) {
	r, err := h.requests.GetByID(ctx, q.ID)
	if err != nil {
		return result.Of[domain.AccessRequest]{}, err
	}
	return result.FromPointer(r, domain.ErrAccessRequestNotFound), nil
}

// List returns the requests matching the filter, oldest first.
func (h *Handlers) List(ctx context.Context, q ListAccessRequests) (result.Of[[]domain.AccessRequest], error) {
	found, err := h.requests.Find(ctx, repository.AccessRequestFilter{
		UserID:     q.UserID,
		ActivityID: q.ActivityID,
		Status:     q.Status,
	})
	if err != nil {
		return result.Of[[]domain.AccessRequest]{}, err
	}
	return result.SuccessOf(found), nil
}

// Verify grants access when an approved request exists for the pair.
func (h *Handlers) Verify(ctx context.Context, q VerifyAccess) (result.Of[domain.AccessDecision], error) {
	if missing, err := h.checkReferences(ctx, q.UserID, q.ActivityID); err != nil || !missing.IsNone() {
		return failed[domain.AccessDecision](missing, err)
	}

	approved, err := h.requests.Find(ctx, repository.AccessRequestFilter{
		UserID:     q.UserID,
		ActivityID: q.ActivityID,
		Status:     domain.StatusApproved,
	})
	if err != nil {
		return result.Of[domain.AccessDecision]{}, err
	}

	decision := domain.AccessDecision{UserID: q.UserID, ActivityID: q.ActivityID}
	if len(approved) > 0 {
		id := approved[0].ID
		decision.Granted = true
		decision.RequestID = &id
	}
	return result.SuccessOf(decision), nil
}

// checkReferences returns the not-found error of the first missing entity, or ErrNone.
func (h *Handlers) checkReferences(ctx context.Context, userID, activityID uuid.UUID) (result.Error, error) {
	ok, err := h.users.Exists(ctx, userID)
	if err != nil {
		return result.ErrNone, err
	}
	if !ok {
		return domain.ErrUserNotFound, nil
	}
	ok, err = h.activities.Exists(ctx, activityID)
	if err != nil {
		return result.ErrNone, err
	}
	if !ok {
		return domain.ErrActivityNotFound, nil
	}
	return result.ErrNone, nil
}

// transition stores r if it is still in status from. A request that moved on or
// disappeared since it was read fails with stale or not-found respectively.
func (h *Handlers) transition(ctx context.Context, r domain.AccessRequest, from domain.Status, stale result.Error, subject string) (result.Of[domain.AccessRequest], error) {
	updated, err := h.requests.Transition(ctx, r, from)
	if errors.Is(err, repository.ErrNotFound) {
		ok, err := h.requests.Exists(ctx, r.ID)
		if err != nil {
			return result.Of[domain.AccessRequest]{}, err
		}
		if !ok {
			return result.FailureOf[domain.AccessRequest](domain.ErrAccessRequestNotFound), nil
		}
		return result.FailureOf[domain.AccessRequest](stale), nil
	}
	if err != nil {
		return result.Of[domain.AccessRequest]{}, err
	}
	h.publish(ctx, subject, updated)
	return result.SuccessOf(updated), nil
}

func (h *Handlers) publish(ctx context.Context, subject string, r domain.AccessRequest) {
	e := events.NewEvent(subject, r, h.now())
	if err := h.publisher.Publish(ctx, e); err != nil {
		h.log.ErrorContext(ctx, "event publish failed",
			logger.Component("events"),
			logger.Event(subject),
			logger.ID("access_request_id", r.ID),
			logger.Error(err),
		)
	}
}

func failed[T any](missing result.Error, err error) (result.Of[T], error) {
	if err != nil {
		return result.Of[T]{}, err
	}
	return result.FailureOf[T](missing), nil
}
