package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/internal/domain"
	"github.com/dmitrymomot/accessgate/internal/repository"
)

// Handlers serves the user commands and queries.
type Handlers struct {
	users    repository.Users
	requests repository.AccessRequests
	tx       repository.Transactor
	now      func() time.Time
}

// Option configures Handlers.
type Option func(*Handlers)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) { h.now = now }
}

// NewHandlers creates the user handlers.
func NewHandlers(users repository.Users, requests repository.AccessRequests, tx repository.Transactor, opts ...Option) *Handlers {
	h := &Handlers{
		users:    users,
		requests: requests,
		tx:       tx,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Create stores a new user.
func (h *Handlers) Create(ctx context.Context, cmd CreateUser) (result.Of[domain.User], error) {
	if cmd.UserName == "" || cmd.Email == "" {
		return result.FailureOf[domain.User](result.ErrNullValue), nil
	}

	u, err := h.users.Add(ctx, domain.User{
		ID:        uuid.New(),
		UserName:  cmd.UserName,
		Email:     cmd.Email,
		FullName:  cmd.FullName,
		CreatedAt: h.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return result.FailureOf[domain.User](domain.ErrUserNameTaken), nil
		}
		return result.Of[domain.User]{}, err
	}
	return result.SuccessOf(u), nil
}

// Update changes the profile of an existing user.
func (h *Handlers) Update(ctx context.Context, cmd UpdateUser) (result.Of[domain.User], error) {
	u, err := h.users.GetByID(ctx, cmd.ID)
	if err != nil {
		return result.Of[domain.User]{}, err
	}
	if u == nil {
		return result.FailureOf[domain.User](domain.ErrUserNotFound), nil
	}

	u.UserName = cmd.UserName
	u.Email = cmd.Email
	u.FullName = cmd.FullName

	updated, err := h.users.Update(ctx, *u)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return result.FailureOf[domain.User](domain.ErrUserNotFound), nil
	case errors.Is(err, repository.ErrDuplicate):
		return result.FailureOf[domain.User](domain.ErrUserNameTaken), nil
	case err != nil:
		return result.Of[domain.User]{}, err
	}
	return result.SuccessOf(updated), nil
}

// Delete removes a user together with their access requests.
func (h *Handlers) Delete(ctx context.Context, cmd DeleteUser) (result.Result, error) {
	var deleted int64
	err := h.tx.InTx(ctx, func(ctx context.Context) error {
		requests, err := h.requests.Find(ctx, repository.AccessRequestFilter{UserID: cmd.ID})
		if err != nil {
			return err
		}
		for _, r := range requests {
			if _, err := h.requests.Delete(ctx, r.ID); err != nil {
				return err
			}
		}
		deleted, err = h.users.Delete(ctx, cmd.ID)
		return err
	})
	if err != nil {
		return result.Result{}, err
	}
	if deleted == 0 {
		return result.Failure(domain.ErrUserNotFound), nil
	}
	return result.Success(), nil
}

// Get returns a user by id.
func (h *Handlers) Get(ctx context.Context, q GetUser) (result.Of[domain.User], error) {
	u, err := h.users.GetByID(ctx, q.ID)
	if err != nil {
		return result.Of[domain.User]{}, err
	}
	return result.FromPointer(u, domain.ErrUserNotFound), nil
}

// List returns every user.
func (h *Handlers) List(ctx context.Context, _ ListUsers) (result.Of[[]domain.User], error) {
	all, err := h.users.GetAll(ctx)
	if err != nil {
		return result.Of[[]domain.User]{}, err
	}
	return result.SuccessOf(all), nil
}
