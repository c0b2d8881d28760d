package ident

import (
	"context"
	"encoding/json"
)

// Store maps live identifiers to their objects.
//
// Implementations must be safe for concurrent use. A Get for an
// identifier the store does not hold returns an error matching
// obsgraph.ErrCacheMiss; callers decide whether that is fatal. Entries
// are never evicted automatically. Reset drops every entry.
type Store interface {
	// Put binds an identifier to a value. The default policy is
	// last-writer-wins; MemStore can be configured to reject rebinding
	// instead (obsgraph.ErrConflict).
	Put(ctx context.Context, id string, value any) error

	// Get returns the value bound to an identifier, or an error matching
	// obsgraph.ErrCacheMiss when the identifier is unknown.
	Get(ctx context.Context, id string) (any, error)

	// Reset drops all entries.
	Reset(ctx context.Context) error

	// Close releases any backend resources.
	Close() error
}

// Codec serializes store values for backends that persist bytes.
// MemStore holds live values and never uses a codec; the Redis and etcd
// stores pass every value through one.
type Codec interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// JSONCodec is the default codec. Decoded values come back in generic
// JSON shapes (map[string]any, []any, float64, string, bool).
type JSONCodec struct{}

// Encode marshals the value as JSON.
func (JSONCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode unmarshals JSON into a generic value.
func (JSONCodec) Decode(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
