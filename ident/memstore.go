package ident

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/zero-day-ai/obsgraph"
)

// MemStore is an in-process identifier store backed by a map.
// It is safe for concurrent use.
type MemStore struct {
	mu            sync.RWMutex
	values        map[string]any
	conflictCheck bool
}

// MemOption configures a MemStore.
type MemOption func(*MemStore)

// WithConflictCheck makes Put reject rebinding an identifier to a
// different value with obsgraph.ErrConflict. Rebinding to an equal
// value stays a no-op. The default policy is last-writer-wins.
func WithConflictCheck() MemOption {
	return func(s *MemStore) {
		s.conflictCheck = true
	}
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{values: make(map[string]any)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put binds an identifier to a value.
func (s *MemStore) Put(ctx context.Context, id string, value any) error {
	if id == "" {
		return obsgraph.NewStorageError("MemStore.Put", errors.New("empty identifier"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflictCheck {
		if existing, ok := s.values[id]; ok && !reflect.DeepEqual(existing, value) {
			return obsgraph.NewConflictError("MemStore.Put", id)
		}
	}
	s.values[id] = value
	return nil
}

// Get returns the value bound to an identifier.
func (s *MemStore) Get(ctx context.Context, id string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[id]
	if !ok {
		return nil, obsgraph.NewCacheMissError("MemStore.Get", id)
	}
	return v, nil
}

// Reset drops all entries.
func (s *MemStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]any)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error {
	return nil
}

// Len returns the number of bound identifiers.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
