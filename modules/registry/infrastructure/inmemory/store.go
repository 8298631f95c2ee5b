// Package inmemory provides map-backed registry repositories with the same
// contracts as the pgx implementations. They back the engine's unit tests
// and the CLI's dry-run mode.
package inmemory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/civicore-hq/civicore/pkg/composables"
)

// store is a tenant-scoped collection of entities keyed by id. Insertion
// order is preserved so GetAll is deterministic.
type store[T any] struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]T
	order  []uuid.UUID
	tenant func(T) uuid.UUID
}

func newStore[T any](tenant func(T) uuid.UUID) *store[T] {
	return &store[T]{
		byID:   make(map[uuid.UUID]T),
		tenant: tenant,
	}
}

func (s *store[T]) put(id uuid.UUID, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[id]; !exists {
		s.order = append(s.order, id)
	}
	s.byID[id] = v
}

func (s *store[T]) all(ctx context.Context) ([]T, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, id := range s.order {
		v := s.byID[id]
		if s.tenant(v) == tenantID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *store[T]) find(ctx context.Context, match func(T) bool) (T, bool, error) {
	var zero T
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return zero, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		v := s.byID[id]
		if s.tenant(v) == tenantID && match(v) {
			return v, true, nil
		}
	}
	return zero, false, nil
}
