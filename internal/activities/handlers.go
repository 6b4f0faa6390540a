package activities

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/internal/domain"
	"github.com/dmitrymomot/accessgate/internal/repository"
)

// Handlers serves the activity commands and queries.
type Handlers struct {
	activities repository.Activities
	requests   repository.AccessRequests
	tx         repository.Transactor
	now        func() time.Time
}

// Option configures Handlers.
type Option func(*Handlers)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) { h.now = now }
}

// NewHandlers creates the activity handlers.
func NewHandlers(activities repository.Activities, requests repository.AccessRequests, tx repository.Transactor, opts ...Option) *Handlers {
	h := &Handlers{
		activities: activities,
		requests:   requests,
		tx:         tx,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Create stores a new activity.
func (h *Handlers) Create(ctx context.Context, cmd CreateActivity) (result.Of[domain.Activity], error) {
	if cmd.Name == "" {
		return result.FailureOf[domain.Activity](result.ErrNullValue), nil
	}

	a, err := h.activities.Add(ctx, domain.Activity{
		ID:          uuid.New(),
		Name:        cmd.Name,
		Description: cmd.Description,
		CreatedAt:   h.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return result.FailureOf[domain.Activity](domain.ErrActivityNameTaken), nil
		}
		return result.Of[domain.Activity]{}, err
	}
	return result.SuccessOf(a), nil
}

// Update changes the name and description of an existing activity.
func (h *Handlers) Update(ctx context.Context, cmd UpdateActivity) (result.Of[domain.Activity], error) {
	a, err := h.activities.GetByID(ctx, cmd.ID)
	if err != nil {
		return result.Of[domain.Activity]{}, err
	}
	if a == nil {
		return result.FailureOf[domain.Activity](domain.ErrActivityNotFound), nil
	}

	a.Name = cmd.Name
	a.Description = cmd.Description

	updated, err := h.activities.Update(ctx, *a)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return result.FailureOf[domain.Activity](domain.ErrActivityNotFound), nil
	case errors.Is(err, repository.ErrDuplicate):
		return result.FailureOf[domain.Activity](domain.ErrActivityNameTaken), nil
	case err != nil:
		return result.Of[domain.Activity]{}, err
	}
	return result.SuccessOf(updated), nil
}

// Delete removes an activity together with its access requests.
func (h *Handlers) Delete(ctx context.Context, cmd DeleteActivity) (result.Result, error) {
	var deleted int64
	err := h.tx.InTx(ctx, func(ctx context.Context) error {
		requests, err := h.requests.Find(ctx, repository.AccessRequestFilter{ActivityID: cmd.ID})
		if err != nil {
			return err
		}
		for _, r := range requests {
			if _, err := h.requests.Delete(ctx, r.ID); err != nil {
				return err
			}
		}
		deleted, err = h.activities.Delete(ctx, cmd.ID)
		return err
	})
	if err != nil {
		return result.Result{}, err
	}
	if deleted == 0 {
		return result.Failure(domain.ErrActivityNotFound), nil
	}
	return result.Success(), nil
}

// Get returns an activity by id.
func (h *Handlers) Get(ctx context.Context, q GetActivity) (result.Of[domain.Activity], error) {
	a, err := h.activities.GetByID(ctx, q.ID)
	if err != nil {
		return result.Of[domain.Activity]{}, err
	}
	return result.FromPointer(a, domain.ErrActivityNotFound), nil
}

// List returns every activity.
func (h *Handlers) List(ctx context.Context, _ ListActivities) (result.Of[[]domain.Activity], error) {
	all, err := h.activities.GetAll(ctx)
	if err != nil {
		return result.Of[[]domain.Activity]{}, err
	}
	return result.SuccessOf(all), nil
}
