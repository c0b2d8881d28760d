// Package ident provides identifier generation and resolution for
// observable object graphs.
//
// Identifiers are opaque strings of the form {prefix}-{uuid}, where the
// prefix is conventionally the type name of the object the identifier
// names. A Store maps live identifiers to their objects so references
// (idref) made in one part of a document can be resolved against objects
// defined in another.
//
// # Generators
//
// UUIDGenerator produces random identifiers and is the production
// default. SequentialGenerator produces predictable identifiers for
// tests. The package-level NewID uses the default generator:
//
//	id := ident.NewID("FileObjectType")
//	// FileObjectType-9f54dbb8-...
//
// # Stores
//
// MemStore keeps the id-to-object map in process memory and is the
// default. RedisStore and EtcdStore resolve identifiers across
// processes; values pass through a pluggable Codec (JSON by default).
// All stores are safe for concurrent use, report unresolved identifiers
// with obsgraph.ErrCacheMiss, and never evict: the map only shrinks via
// an explicit Reset.
//
// NewStore builds a store from a Config, typically loaded from YAML
// with LoadConfig. InstrumentedStore optionally wraps any store with
// OpenTelemetry spans and counters.
package ident
