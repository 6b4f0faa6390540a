package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/accessgate/internal/domain"
	"github.com/dmitrymomot/accessgate/internal/repository"
)

// Users is an in-memory repository.Users.
type Users struct {
	*Store[domain.User]
}

// NewUsers creates an empty user repository.
func NewUsers() *Users {
	return &Users{Store: NewStore[domain.User]()}
}

func (r *Users) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return r.first(ctx, func(u domain.User) bool { return strings.EqualFold(u.UserName, userName) })
}

// Activities is an in-memory repository.Activities.
type Activities struct {
	*Store[domain.Activity]
}

// NewActivities creates an empty activity repository.
func NewActivities() *Activities {
	return &Activities{Store: NewStore[domain.Activity]()}
}

func (r *Activities) GetByName(ctx context.Context, name string) (*domain.Activity, error) {
	return r.first(ctx, func(a domain.Activity) bool { return strings.EqualFold(a.Name, name) })
}

// AccessRequests is an in-memory repository.AccessRequests.
type AccessRequests struct {
	*Store[domain.AccessRequest]
}

// NewAccessRequests creates an empty access request repository.
func NewAccessRequests() *AccessRequests {
	return &AccessRequests{Store: NewStore[domain.AccessRequest]()}
}

func (r *AccessRequests) Find(ctx context.Context, f repository.AccessRequestFilter) ([]domain.AccessRequest, error) {
	return r.filter(ctx, f.Match)
}

// Add rejects an open request while another one is open for the same pair.
func (r *AccessRequests) Add(ctx context.Context, ar domain.AccessRequest) (domain.AccessRequest, error) {
	if err := ctx.Err(); err != nil {
		return ar, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if ar.IsOpen() {
		for _, other := range r.items {
			if other.IsOpen() && other.UserID == ar.UserID && other.ActivityID == ar.ActivityID {
				return ar, fmt.Errorf("%w: open request %s", repository.ErrDuplicate, other.ID)
			}
		}
	}
	return ar, r.insert(ar)
}

func (r *AccessRequests) Transition(ctx context.Context, ar domain.AccessRequest, from domain.Status) (domain.AccessRequest, error) {
	if err := ctx.Err(); err != nil {
		return ar, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[ar.ID]
	if !ok || stored.Status != from {
		return ar, fmt.Errorf("%w: %s in status %s", repository.ErrNotFound, ar.ID, from)
	}
	r.items[ar.ID] = ar
	return ar, nil
}

var (
	_ repository.Users          = (*Users)(nil)
	_ repository.Activities     = (*Activities)(nil)
	_ repository.AccessRequests = (*AccessRequests)(nil)
)
