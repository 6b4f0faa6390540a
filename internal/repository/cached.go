package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/accessgate/core/logger"
	"github.com/dmitrymomot/accessgate/internal/cache"
	"github.com/dmitrymomot/accessgate/internal/domain"
)

// CachedActivities is a read-through cache in front of an Activities repository.
// Single activities are cached by id; writes invalidate the entry.
// Cache failures are logged and fall back to the repository.
type CachedActivities struct {
	Activities
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

var _ Activities = (*CachedActivities)(nil)

// NewCachedActivities wraps next with c.
func NewCachedActivities(next Activities, c cache.Cache, ttl time.Duration, log *slog.Logger) *CachedActivities {
	if log == nil {
		log = logger.Discard()
	}
	return &CachedActivities{Activities: next, cache: c, ttl: ttl, log: log}
}

func activityKey(id uuid.UUID) string {
	return "activity:" + id.String()
}

func (r *CachedActivities) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	key := activityKey(id)
	cached, ok, err := cache.GetJSON[domain.Activity](ctx, r.cache, key)
	if err != nil {
		r.log.WarnContext(ctx, "activity cache read failed", logger.Component("cache"), logger.Key("key", key), logger.Error(err))
	}
	if ok {
		return &cached, nil
	}

	a, err := r.Activities.GetByID(ctx, id)
	if err != nil || a == nil {
		return a, err
	}
	if err := cache.SetJSON(ctx, r.cache, key, *a, r.ttl); err != nil {
		r.log.WarnContext(ctx, "activity cache write failed", logger.Component("cache"), logger.Key("key", key), logger.Error(err))
	}
	return a, nil
}

func (r *CachedActivities) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	a, err := r.GetByID(ctx, id)
	return a != nil, err
}

func (r *CachedActivities) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	updated, err := r.Activities.Update(ctx, a)
	r.invalidate(ctx, a.ID)
	return updated, err
}

func (r *CachedActivities) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	n, err := r.Activities.Delete(ctx, id)
	r.invalidate(ctx, id)
	return n, err
}

func (r *CachedActivities) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, activityKey(id)); err != nil {
		r.log.WarnContext(ctx, "activity cache invalidation failed", logger.Component("cache"), logger.ID("activity_id", id), logger.Error(err))
	}
}
