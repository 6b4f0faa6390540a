package cache

import (
	"context"
	"time"
)

// Tiered combines an L1 (in-process) and L2 (remote) cache.
// Get checks L1 first, then L2, backfilling L1 on an L2 hit.
// Set and Delete operate on both levels.
type Tiered struct {
	l1       Cache
	l2       Cache
	l1Expire time.Duration
}

// NewTiered creates a tiered cache. l1Expire controls how long L2 backfill entries
// live in L1.
func NewTiered(l1, l2 Cache, l1Expire time.Duration) *Tiered {
	return &Tiered{l1: l1, l2: l2, l1Expire: l1Expire}
}

// Get checks L1, then L2.
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found, err := t.l1.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if found {
		return val, true, nil
	}

	val, found, err = t.l2.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	_ = t.l1.Set(ctx, key, val, t.l1Expire)
	return val, true, nil
}

// Set writes to both levels. L1 never keeps an entry longer than l1Expire.
func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	l1TTL := ttl
	if t.l1Expire > 0 && (l1TTL <= 0 || l1TTL > t.l1Expire) {
		l1TTL = t.l1Expire
	}
	if err := t.l1.Set(ctx, key, value, l1TTL); err != nil {
		return err
	}
	return t.l2.Set(ctx, key, value, ttl)
}

// Delete removes from both levels.
func (t *Tiered) Delete(ctx context.Context, key string) error {
	if err := t.l1.Delete(ctx, key); err != nil {
		return err
	}
	return t.l2.Delete(ctx, key)
}
