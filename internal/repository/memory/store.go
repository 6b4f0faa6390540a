// Package memory provides in-process repositories for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/accessgate/internal/repository"
)

// Store is a generic map-backed repository keeping insertion order.
// It is safe for concurrent use.
type Store[T repository.Entity] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
	order []uuid.UUID
}

// NewStore creates an empty store.
func NewStore[T repository.Entity]() *Store[T] {
	return &Store[T]{items: make(map[uuid.UUID]T)}
}

// GetByID returns nil when id is unknown.
func (s *Store[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *Store[T]) GetAll(ctx context.Context) ([]T, error) {
	return s.filter(ctx, func(T) bool { return true })
}

func (s *Store[T]) Add(ctx context.Context, entity T) (T, error) {
	if err := ctx.Err(); err != nil {
		return entity, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return entity, s.insert(entity)
}

// insert requires s.mu to be held for writing.
func (s *Store[T]) insert(entity T) error {
	id := entity.EntityID()
	if _, ok := s.items[id]; ok {
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, id)
	}
	s.items[id] = entity
	s.order = append(s.order, id)
	return nil
}

func (s *Store[T]) Update(ctx context.Context, entity T) (T, error) {
	if err := ctx.Err(); err != nil {
		return entity, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.EntityID()
	if _, ok := s.items[id]; !ok {
		return entity, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	s.items[id] = entity
	return entity, nil
}

func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return 0, nil
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(v uuid.UUID) bool { return v == id })
	return 1, nil
}

func (s *Store[T]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[id]
	return ok, nil
}

// first returns the first item, in insertion order, matching fn.
func (s *Store[T]) first(ctx context.Context, fn func(T) bool) (*T, error) {
	items, err := s.filter(ctx, fn)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func (s *Store[T]) filter(ctx context.Context, fn func(T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		if item := s.items[id]; fn(item) {
			out = append(out, item)
		}
	}
	return out, nil
}
