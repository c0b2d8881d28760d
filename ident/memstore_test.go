package ident

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/zero-day-ai/obsgraph"
)

func TestMemStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	defer s.Close()

	if err := s.Put(ctx, "X-1", "payload"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	v, err := s.Get(ctx, "X-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if v != "payload" {
		t.Errorf("Get() = %v, want payload", v)
	}
}

func TestMemStoreMiss(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	_, err := s.Get(ctx, "X-404")
	if err == nil {
		t.Fatal("Get() on empty store error = nil, want cache miss")
	}
	if !errors.Is(err, obsgraph.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}

	var structured *obsgraph.Error
	if !errors.As(err, &structured) {
		t.Fatal("error is not *obsgraph.Error")
	}
	if structured.Value != "X-404" {
		t.Errorf("error names id %q, want X-404", structured.Value)
	}
}

func TestMemStoreReset(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	if err := s.Put(ctx, "X-1", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if _, err := s.Get(ctx, "X-1"); !errors.Is(err, obsgraph.ErrCacheMiss) {
		t.Errorf("Get() after Reset error = %v, want ErrCacheMiss", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", s.Len())
	}
}

func TestMemStoreOverwriteByDefault(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	if err := s.Put(ctx, "X-1", "old"); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "X-1", "new"); err != nil {
		t.Fatalf("rebinding Put() error = %v, want last-writer-wins", err)
	}
	if v, _ := s.Get(ctx, "X-1"); v != "new" {
		t.Errorf("Get() = %v, want new", v)
	}
}

func TestMemStoreConflictCheck(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(WithConflictCheck())

	if err := s.Put(ctx, "X-1", "value"); err != nil {
		t.Fatal(err)
	}

	// Rebinding to an equal value stays a no-op.
	if err := s.Put(ctx, "X-1", "value"); err != nil {
		t.Errorf("Put() same value error = %v, want nil", err)
	}

	err := s.Put(ctx, "X-1", "other")
	if !errors.Is(err, obsgraph.ErrConflict) {
		t.Errorf("Put() different value error = %v, want ErrConflict", err)
	}
	if v, _ := s.Get(ctx, "X-1"); v != "value" {
		t.Errorf("Get() after rejected rebind = %v, want original value", v)
	}
}

func TestMemStoreEmptyID(t *testing.T) {
	err := NewMemStore().Put(context.Background(), "", 1)
	if err == nil {
		t.Error("Put(\"\") error = nil, want storage error")
	}
}

func TestMemStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := NewID("X")
			if err := s.Put(ctx, id, n); err != nil {
				t.Errorf("Put() error = %v", err)
				return
			}
			if _, err := s.Get(ctx, id); err != nil {
				t.Errorf("Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 16 {
		t.Errorf("Len() = %d, want 16", s.Len())
	}
}
