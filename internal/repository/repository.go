// Package repository declares the persistence contracts used by command and query handlers.
//
// GetByID returns (nil, nil) when the entity does not exist; handlers translate that into
// a not-found result. Errors are reserved for infrastructure failures.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/accessgate/internal/domain"
)

// ErrNotFound is returned by Update for an entity that does not exist.
var ErrNotFound = errors.New("repository: entity not found")

// ErrDuplicate is returned by Add for an entity whose id or unique key already exists.
var ErrDuplicate = errors.New("repository: duplicate entity")

// Entity is anything stored by id.
type Entity interface {
	EntityID() uuid.UUID
}

// Repository is the generic per-entity persistence contract.
type Repository[T Entity] interface {
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Add(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, entity T) (T, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Users stores users.
type Users interface {
	Repository[domain.User]
	// GetByUserName matches case-insensitively.
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
}

// Activities stores activities.
type Activities interface {
	Repository[domain.Activity]
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (*domain.Activity, error)
}

// AccessRequestFilter narrows Find. Zero fields match anything.
type AccessRequestFilter struct {
	UserID     uuid.UUID
	ActivityID uuid.UUID
	Status     domain.Status
}

// Match reports whether r satisfies f.
func (f AccessRequestFilter) Match(r domain.AccessRequest) bool {
	return (f.UserID == uuid.Nil || r.UserID == f.UserID) &&
		(f.ActivityID == uuid.Nil || r.ActivityID == f.ActivityID) &&
		(f.Status == "" || r.Status == f.Status)
}

// AccessRequests stores access requests.
//
// Add returns ErrDuplicate when the request is open and another open request
// exists for the same user and activity.
type AccessRequests interface {
	Repository[domain.AccessRequest]
	// Find returns the requests matching f, oldest first.
	Find(ctx context.Context, f AccessRequestFilter) ([]domain.AccessRequest, error)
	// Transition stores r only while the stored request is still in status from.
	// It returns ErrNotFound when no request with r's id is in that status.
	Transition(ctx context.Context, r domain.AccessRequest, from domain.Status) (domain.AccessRequest, error)
}

// Transactor runs fn atomically. Repositories called with the context passed to fn
// take part in the same transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
