package ident

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// DefaultPrefix is used when a caller supplies no identifier prefix.
const DefaultPrefix = "Object"

// Generator produces fresh identifiers. Implementations must be safe
// for concurrent use.
type Generator interface {
	// NewID returns a fresh identifier with the given prefix. An empty
	// prefix falls back to DefaultPrefix.
	NewID(prefix string) string
}

// UUIDGenerator produces identifiers of the form {prefix}-{uuid4}.
// It is the production generator: identifiers are unique without
// coordination.
type UUIDGenerator struct{}

// NewID returns prefix + "-" + a random UUID.
func (UUIDGenerator) NewID(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "-" + uuid.NewString()
}

// SequentialGenerator produces identifiers of the form {prefix}-{n}
// with n counting up from 1. Intended for tests that need stable
// identifiers.
type SequentialGenerator struct {
	mu   sync.Mutex
	next int
}

// NewSequentialGenerator returns a generator counting from {prefix}-1.
func NewSequentialGenerator() *SequentialGenerator {
	return &SequentialGenerator{}
}

// NewID returns the next identifier in sequence.
func (g *SequentialGenerator) NewID(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", prefix, g.next)
}

var defaultGenerator Generator = UUIDGenerator{}

// NewID returns a fresh identifier from the default UUID generator.
func NewID(prefix string) string {
	return defaultGenerator.NewID(prefix)
}
